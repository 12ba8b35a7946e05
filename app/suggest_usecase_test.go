package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-harness/harness/internal/version"
)

func TestNewSuggestPlanStampsVersion(t *testing.T) {
	plan := NewSuggestPlan([]string{"rec.context.index", "rec.repo.scale"})

	assert.Equal(t, version.GetVersion(), plan.Version)
	assert.NotEmpty(t, plan.GeneratedAt)
	assert.Equal(t, []string{"rec.context.index", "rec.repo.scale"}, plan.Recommendations)
}

func TestWritePlanProducesParsableFile(t *testing.T) {
	root := t.TempDir()
	plan := NewSuggestPlan([]string{"rec.context.index"})

	path, err := WritePlan(root, plan)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, filepath.Join(root, ".harness", "plans")))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "plan-"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded SuggestPlan
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, plan.Version, decoded.Version)
	assert.Equal(t, plan.Recommendations, decoded.Recommendations)
}
