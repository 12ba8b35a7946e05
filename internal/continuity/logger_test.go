package continuity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-harness/harness/internal/config"
)

func readProgress(t *testing.T, root string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(root, ".harness", "progress.md"))
	require.NoError(t, err)
	return string(content)
}

func samplingConfig(mode string) *config.Config {
	return &config.Config{
		Continuity: &config.ContinuityConfig{LogSampling: mode},
	}
}

func TestMilestoneLogsEvenWhenSamplingNone(t *testing.T) {
	root := t.TempDir()
	logger := NewLogger(root, samplingConfig("none"))
	defer logger.Close()

	require.NoError(t, logger.RecordMilestone("analyze", "start", []string{"path=repo"}, "running"))

	content := readProgress(t, root)
	assert.Contains(t, content, "feature: analyze")
	assert.Contains(t, content, "action: start")
	assert.Contains(t, content, "evidence: path=repo")
	assert.Contains(t, content, "next_state: running")
}

func TestProgressSkippedWhenSamplingMilestones(t *testing.T) {
	root := t.TempDir()
	logger := NewLogger(root, nil)
	defer logger.Close()

	require.NoError(t, logger.RecordProgress("analyze", "scan", []string{"signals=ok"}, "running"))
	require.NoError(t, logger.Flush())

	_, err := os.Stat(filepath.Join(root, ".harness", "progress.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestProgressLoggedWhenSamplingAll(t *testing.T) {
	root := t.TempDir()
	logger := NewLogger(root, samplingConfig("all"))
	defer logger.Close()

	require.NoError(t, logger.RecordProgress("analyze", "scan", []string{"signals=ok"}, "running"))
	require.NoError(t, logger.Flush())

	content := readProgress(t, root)
	assert.Contains(t, content, "action: scan")
}

func TestProgressBatchesUntilIntervalElapses(t *testing.T) {
	root := t.TempDir()
	cfg := samplingConfig("all")
	cfg.Continuity.BatchIntervalSecs = 60
	logger := NewLogger(root, cfg)
	defer logger.Close()

	clock := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	logger.now = func() time.Time { return clock }
	logger.lastFlush = clock

	require.NoError(t, logger.RecordProgress("bench", "run", nil, "running"))
	_, err := os.Stat(filepath.Join(root, ".harness", "progress.md"))
	assert.True(t, os.IsNotExist(err), "entry should still be batched")

	clock = clock.Add(61 * time.Second)
	require.NoError(t, logger.RecordProgress("bench", "run", nil, "running"))

	content := readProgress(t, root)
	assert.Contains(t, content, "feature: bench")
}

func TestEmptyEvidenceRendersDash(t *testing.T) {
	root := t.TempDir()
	logger := NewLogger(root, nil)
	defer logger.Close()

	require.NoError(t, logger.RecordMilestone("init", "complete", nil, "done"))

	assert.Contains(t, readProgress(t, root), "evidence: - |")
}

func TestConfiguredProgressFilePath(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{
		Continuity: &config.ContinuityConfig{ProgressFile: "notes/log.md"},
	}
	logger := NewLogger(root, cfg)
	defer logger.Close()

	require.NoError(t, logger.RecordMilestone("analyze", "start", nil, "running"))

	content, err := os.ReadFile(filepath.Join(root, "notes", "log.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "feature: analyze")
}
