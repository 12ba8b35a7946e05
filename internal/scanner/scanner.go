package scanner

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/config"
)

// Discover scans a repository root into the signal model the analyzers
// consume. The model is a snapshot; nothing mutates it after return.
func Discover(root string, cfg *config.Config, now time.Time) *domain.RepoModel {
	files := ListFiles(root)
	return &domain.RepoModel{
		Root:       root,
		FileCount:  len(files),
		Docs:       DetectDocs(root, now),
		Tools:      DetectTools(cfg),
		Continuity: DetectContinuity(root, cfg),
		Quality:    DetectQuality(root, files),
	}
}

// DetectContinuity checks for the continuity artifacts at their
// configured paths, falling back to the conventional .harness layout.
func DetectContinuity(root string, cfg *config.Config) domain.ContinuitySignals {
	initializer := ".harness/initializer.prompt.md"
	codingPrompt := ".harness/coding.prompt.md"
	progressFile := ".harness/progress.md"
	featureState := ".harness/feature_list.json"
	if cfg != nil && cfg.Continuity != nil {
		continuity := cfg.Continuity
		if continuity.Initializer != "" {
			initializer = continuity.Initializer
		}
		if continuity.CodingPrompt != "" {
			codingPrompt = continuity.CodingPrompt
		}
		if continuity.ProgressFile != "" {
			progressFile = continuity.ProgressFile
		}
		if continuity.FeatureStateFile != "" {
			featureState = continuity.FeatureStateFile
		}
	}

	progressContent := readFileIfExists(filepath.Join(root, progressFile))

	return domain.ContinuitySignals{
		HasInitializerPrompt: fileExists(filepath.Join(root, initializer)),
		HasCodingPrompt:      fileExists(filepath.Join(root, codingPrompt)),
		HasProgressFile:      fileExists(filepath.Join(root, progressFile)),
		HasFeatureStateFile:  fileExists(filepath.Join(root, featureState)),
		HasProgressSummary:   strings.Contains(strings.ToLower(progressContent), "summary"),
	}
}

// lintConfigFiles are recognized linter or formatter configurations
var lintConfigFiles = []string{
	".golangci.yml",
	".golangci.yaml",
	"rustfmt.toml",
	".clippy.toml",
	"clippy.toml",
	".eslintrc.json",
	".eslintrc.js",
	"ruff.toml",
	".ruff.toml",
}

// DetectQuality derives general hygiene signals from the file listing
func DetectQuality(root string, files []string) domain.QualitySignals {
	hasCIWorkflow := false
	hasTests := false
	for _, path := range files {
		if strings.HasPrefix(path, ".github/workflows/") {
			hasCIWorkflow = true
		}
		base := filepath.Base(path)
		if isTestFile(base) || strings.Contains(path, "tests/") || strings.Contains(path, "test/") {
			hasTests = true
		}
	}

	hasLintConfig := false
	for _, name := range lintConfigFiles {
		if fileExists(filepath.Join(root, name)) {
			hasLintConfig = true
			break
		}
	}

	return domain.QualitySignals{
		HasCIWorkflow: hasCIWorkflow,
		HasTests:      hasTests,
		HasLintConfig: hasLintConfig,
	}
}

func isTestFile(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.HasSuffix(stem, "_test") ||
		strings.HasSuffix(stem, "_spec") ||
		strings.HasSuffix(stem, ".test") ||
		strings.HasSuffix(stem, ".spec")
}
