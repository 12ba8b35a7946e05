package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-harness/harness/internal/config"
)

func writeFile(t *testing.T, root, relative, content string) {
	t.Helper()
	path := filepath.Join(root, relative)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverCollectsSignals(t *testing.T) {
	root := t.TempDir()
	now := time.Now()

	writeFile(t, root, "AGENTS.md", "# Agents\nmap")
	writeFile(t, root, "README.md", "See architecture in ARCHITECTURE.md")
	writeFile(t, root, "ARCHITECTURE.md", "# Architecture")
	writeFile(t, root, "docs/context/INDEX.md", "index")
	writeFile(t, root, ".harness/initializer.prompt.md", "initializer")
	writeFile(t, root, ".harness/coding.prompt.md", "coding")
	writeFile(t, root, ".harness/progress.md", "Summary: checkpoint")
	writeFile(t, root, ".github/workflows/ci.yml", "name: ci")
	writeFile(t, root, "pkg/thing_test.go", "package thing")
	writeFile(t, root, ".golangci.yml", "run:")

	model := Discover(root, nil, now)

	assert.True(t, model.Docs.HasAgentsMD)
	assert.True(t, model.Docs.AgentsHasSectionHeader)
	assert.True(t, model.Docs.HasContextIndex)
	assert.True(t, model.Docs.HasArchitectureDoc)
	assert.True(t, model.Docs.ReadmeLinksArchitecture)
	require.NotNil(t, model.Docs.DocsAgeDays)
	assert.Equal(t, 0, *model.Docs.DocsAgeDays)

	assert.True(t, model.Continuity.HasInitializerPrompt)
	assert.True(t, model.Continuity.HasCodingPrompt)
	assert.True(t, model.Continuity.HasProgressFile)
	assert.True(t, model.Continuity.HasProgressSummary)
	assert.False(t, model.Continuity.HasFeatureStateFile)

	assert.True(t, model.Quality.HasCIWorkflow)
	assert.True(t, model.Quality.HasTests)
	assert.True(t, model.Quality.HasLintConfig)
	assert.Greater(t, model.FileCount, 0)
}

func TestDetectDocsEmptyRepo(t *testing.T) {
	model := Discover(t.TempDir(), nil, time.Now())

	assert.False(t, model.Docs.HasAgentsMD)
	assert.Nil(t, model.Docs.DocsAgeDays)
	assert.False(t, model.Quality.HasTests)
}

func TestListFilesHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\n*.log\n")
	writeFile(t, root, "kept.go", "package kept")
	writeFile(t, root, "noise.log", "noise")
	writeFile(t, root, "generated/out.go", "package out")

	files := ListFiles(root)

	assert.Contains(t, files, "kept.go")
	assert.NotContains(t, files, "noise.log")
	assert.NotContains(t, files, "generated/out.go")
}

func TestDetectToolsDefaultsWithoutConfig(t *testing.T) {
	signals := DetectTools(nil)

	assert.Contains(t, signals.ToolNames, "bash")
	assert.NotEmpty(t, signals.ToolNames)
	assert.False(t, signals.HasAmbiguousDuplicates)
}

func TestDetectToolsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Tools: &config.ToolsConfig{
			Baseline: &config.ToolBaseline{
				Read:        []string{"rg", "grep", "cat"},
				Write:       []string{"git", "rm"},
				Destructive: []string{"rm"},
			},
			Specialized: &config.ToolSpecialized{
				Extra: []string{"cat"},
			},
		},
	}

	signals := DetectTools(cfg)

	assert.Equal(t, 1, signals.RiskyOverlapClusters)
	assert.Equal(t, 1, signals.UnrestrictedDestructive)
	assert.True(t, signals.HasAmbiguousDuplicates)
}

func TestDetectToolsForbiddenRestrictsDestructive(t *testing.T) {
	cfg := &config.Config{
		Tools: &config.ToolsConfig{
			Baseline: &config.ToolBaseline{
				Write:       []string{"rm"},
				Destructive: []string{"rm"},
				Forbidden:   []string{"rm -rf"},
			},
		},
	}

	signals := DetectTools(cfg)

	assert.Equal(t, 0, signals.UnrestrictedDestructive)
}

func TestDetectContinuityHonorsConfiguredPaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes/progress.md", "running summary of work")

	cfg := &config.Config{
		Continuity: &config.ContinuityConfig{
			ProgressFile: "notes/progress.md",
		},
	}

	signals := DetectContinuity(root, cfg)

	assert.True(t, signals.HasProgressFile)
	assert.True(t, signals.HasProgressSummary)
	assert.False(t, signals.HasInitializerPrompt)
}
