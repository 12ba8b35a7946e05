package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-harness/harness/domain"
)

func TestValidatePlanPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain relative", ".harness/plans/plan-1.json", false},
		{"nested relative", "plans/sub/plan.json", false},
		{"absolute", "/etc/passwd", true},
		{"parent traversal", "../outside/plan.json", true},
		{"embedded traversal", "plans/../../plan.json", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlanPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				var domainErr domain.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, domain.ErrCodeInvalidInput, domainErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildChangesCreatesIndexAndAgentsLink(t *testing.T) {
	root := t.TempDir()

	changes, err := buildChanges(root, []string{"rec.context.index"})
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, filepath.Join(root, "docs", "context", "INDEX.md"), changes[0].path)
	assert.Equal(t, changeActionCreate, changes[0].action)
	assert.Equal(t, filepath.Join(root, "AGENTS.md"), changes[1].path)
	assert.Equal(t, changeActionCreate, changes[1].action)
	assert.Contains(t, changes[1].content, "- Context index: docs/context/INDEX.md")
}

func TestBuildChangesAppendsLinkToExistingAgentsFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "AGENTS.md"), []byte("# Agents\n\nExisting body"), 0o644))

	changes, err := buildChanges(root, []string{"rec.context.index"})
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, changeActionModify, changes[1].action)
	assert.True(t, strings.HasPrefix(changes[1].content, "# Agents\n"))
	assert.True(t, strings.HasSuffix(changes[1].content, "- Context index: docs/context/INDEX.md\n"))
}

func TestBuildChangesNoOpWhenTargetsExist(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "context"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "context", "INDEX.md"), []byte("# Index\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "AGENTS.md"),
		[]byte("# Agents\n\n- Context index: docs/context/INDEX.md\n"), 0o644))

	changes, err := buildChanges(root, []string{"rec.context.index"})
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestBuildChangesDeduplicatesIDs(t *testing.T) {
	root := t.TempDir()

	changes, err := buildChanges(root, []string{"rec.repo.scale", "rec.repo.scale"})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, filepath.Join(root, "ARCHITECTURE.md"), changes[0].path)
}

func TestArchitectureDocChangesSkipsExistingFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "ARCHITECTURE.md"), []byte("# Architecture\n"), 0o644))

	assert.Empty(t, architectureDocChanges(root))
}

func TestPrintScopeSummaryCountsActions(t *testing.T) {
	root := t.TempDir()
	changes := []plannedChange{
		{path: filepath.Join(root, "AGENTS.md"), action: changeActionModify},
		{path: filepath.Join(root, "docs", "context", "INDEX.md"), action: changeActionCreate},
	}

	var buf bytes.Buffer
	printScopeSummary(&buf, root, changes)

	out := buf.String()
	assert.Contains(t, out, "scope: create=1 modify=1 delete=0")
	assert.Contains(t, out, "modify: AGENTS.md")
	assert.Contains(t, out, "create: "+filepath.Join("docs", "context", "INDEX.md"))
}

func TestConfirmApply(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase y", "y\n", true},
		{"yes", "yes\n", true},
		{"uppercase Y", "Y\n", true},
		{"n", "n\n", false},
		{"default empty line", "\n", false},
		{"eof without input", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			confirmed, err := confirmApply(strings.NewReader(tt.input), &buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, confirmed)
			assert.Contains(t, buf.String(), "[y/N]")
		})
	}
}

func TestEnsureRepo(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	err := EnsureRepo(missing)
	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeFileNotFound, domainErr.Code)

	plain := t.TempDir()
	err = EnsureRepo(plain)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeNotGitRepo, domainErr.Code)

	repo := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(repo, ".git"), 0o755))
	assert.NoError(t, EnsureRepo(repo))
}
