package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeWithoutTracesReportsInsufficientData(t *testing.T) {
	root := scaffoldRepo(t)
	var buf bytes.Buffer

	exit, err := NewOptimizeUseCase().Execute(OptimizeRequest{Path: root, OutputWriter: &buf})
	require.NoError(t, err)
	assert.Equal(t, 0, exit)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "optimize report: "))
	reportPath := strings.TrimSpace(strings.TrimPrefix(out, "optimize report: "))
	assert.True(t, strings.HasPrefix(reportPath, filepath.Join(root, ".harness", "optimize")))

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Harness Optimize Report")
	assert.Contains(t, string(content), "Status: insufficient data for optimization recommendations.")
}

func TestOptimizeWithRecentTracesRendersDelta(t *testing.T) {
	root := scaffoldRepo(t)
	writeRepoFile(t, root, "harness.toml", `
[optimization]
min_traces = 2
`)

	traceDir := filepath.Join(root, ".harness", "traces")
	require.NoError(t, os.MkdirAll(traceDir, 0o755))
	var lines []string
	now := time.Now().UTC()
	stamps := map[string]string{
		"rev-old": now.Add(-time.Hour).Format(time.RFC3339),
		"rev-new": now.Format(time.RFC3339),
	}
	for _, revision := range []string{"rev-old", "rev-new"} {
		for task := 0; task < 3; task++ {
			outcome := "partial"
			if revision == "rev-new" {
				outcome = "success"
			}
			lines = append(lines, fmt.Sprintf(
				`{"timestamp":%q,"task_id":"task-%d","revision":%q,"outcome":%q}`,
				stamps[revision], task, revision, outcome))
		}
	}
	require.NoError(t, os.WriteFile(filepath.Join(traceDir, "runs.jsonl"),
		[]byte(strings.Join(lines, "\n")+"\n"), 0o644))

	var buf bytes.Buffer
	exit, err := NewOptimizeUseCase().Execute(OptimizeRequest{Path: root, OutputWriter: &buf})
	require.NoError(t, err)
	assert.Equal(t, 0, exit)

	reportPath := strings.TrimSpace(strings.TrimPrefix(buf.String(), "optimize report: "))
	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "## Optimization Delta")
	assert.Contains(t, string(content), "- revisions compared: baseline=`rev-old`, current=`rev-new`")
	assert.Contains(t, string(content), "## Top Recommendations")
}
