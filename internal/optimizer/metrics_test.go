package optimizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-harness/harness/domain"
)

func TestTaskOverlap(t *testing.T) {
	tests := []struct {
		name string
		a    map[string]bool
		b    map[string]bool
		want float64
	}{
		{"identical sets", map[string]bool{"x": true, "y": true}, map[string]bool{"x": true, "y": true}, 1.0},
		{"disjoint sets", map[string]bool{"x": true}, map[string]bool{"y": true}, 0.0},
		{"half overlap", map[string]bool{"x": true, "y": true}, map[string]bool{"y": true, "z": true}, 1.0 / 3.0},
		{"both empty", map[string]bool{}, map[string]bool{}, 0.0},
		{"one empty", map[string]bool{"x": true}, map[string]bool{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TaskOverlap(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRelativeDelta(t *testing.T) {
	assert.InDelta(t, 0.5, RelativeDelta(1000, 1500), 1e-9)
	assert.InDelta(t, -0.25, RelativeDelta(1000, 750), 1e-9)
	assert.Equal(t, 0.0, RelativeDelta(0, 500))
}

func TestRevisionAccumulatorMeansSkipAbsentFields(t *testing.T) {
	accumulator := newRevisionAccumulator()
	ts := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	steps := 10
	tokens := int64(2000)
	accumulator.add(domain.RecentTrace{
		Timestamp: ts, TaskID: "t1", Revision: "rev-a", Outcome: "success",
		Steps: &steps, TokenEst: &tokens,
	})
	// This record carries no steps or token estimate
	accumulator.add(domain.RecentTrace{
		Timestamp: ts.Add(time.Hour), TaskID: "t2", Revision: "rev-a", Outcome: "failure",
	})

	metrics, ok := accumulator.metrics("rev-a")
	require.True(t, ok)
	assert.Equal(t, 2, metrics.Total)
	assert.InDelta(t, 0.5, metrics.CompletionRate, 1e-9)
	assert.InDelta(t, 10.0, metrics.AvgSteps, 1e-9)
	assert.InDelta(t, 2000.0, metrics.AvgTokens, 1e-9)
	assert.Equal(t, ts.Add(time.Hour), metrics.LatestTS)
}

func TestRevisionAccumulatorEmpty(t *testing.T) {
	accumulator := newRevisionAccumulator()
	_, ok := accumulator.metrics("rev-a")
	assert.False(t, ok)
}
