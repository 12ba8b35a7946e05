package optimizer

import (
	"time"

	"github.com/agent-harness/harness/domain"
)

// RevisionMetrics is the per-revision aggregate folded from trace
// records sharing a revision tag. It exists only for the duration of
// one classification call.
type RevisionMetrics struct {
	Revision       string
	Total          int
	CompletionRate float64
	AvgSteps       float64
	AvgTokens      float64
	Tasks          map[string]bool
	LatestTS       time.Time
}

// revisionAccumulator folds traces for one revision. Optional fields
// that are absent in a record simply do not contribute to that mean.
type revisionAccumulator struct {
	total       int
	success     int
	stepsSum    float64
	stepsCount  int
	tokensSum   float64
	tokensCount int
	tasks       map[string]bool
	latestTS    time.Time
	hasLatest   bool
}

func newRevisionAccumulator() *revisionAccumulator {
	return &revisionAccumulator{tasks: map[string]bool{}}
}

func (a *revisionAccumulator) add(trace domain.RecentTrace) {
	a.total++
	if trace.Outcome == "success" {
		a.success++
	}
	if trace.Steps != nil {
		a.stepsSum += float64(*trace.Steps)
		a.stepsCount++
	}
	if trace.TokenEst != nil {
		a.tokensSum += float64(*trace.TokenEst)
		a.tokensCount++
	}
	a.tasks[trace.TaskID] = true
	if !a.hasLatest || trace.Timestamp.After(a.latestTS) {
		a.latestTS = trace.Timestamp
		a.hasLatest = true
	}
}

// metrics finalizes the accumulator. Returns false when no record
// contributed a timestamp, meaning the revision has no aggregated data.
func (a *revisionAccumulator) metrics(revision string) (RevisionMetrics, bool) {
	if !a.hasLatest {
		return RevisionMetrics{}, false
	}
	completionRate := 0.0
	if a.total > 0 {
		completionRate = float64(a.success) / float64(a.total)
	}
	avgSteps := 0.0
	if a.stepsCount > 0 {
		avgSteps = a.stepsSum / float64(a.stepsCount)
	}
	avgTokens := 0.0
	if a.tokensCount > 0 {
		avgTokens = a.tokensSum / float64(a.tokensCount)
	}
	return RevisionMetrics{
		Revision:       revision,
		Total:          a.total,
		CompletionRate: completionRate,
		AvgSteps:       avgSteps,
		AvgTokens:      avgTokens,
		Tasks:          a.tasks,
		LatestTS:       a.latestTS,
	}, true
}

// TaskOverlap computes the Jaccard similarity of two task sets. Two
// empty sets overlap 0.0, not 1.0: no shared evidence blocks the
// comparison rather than trivially passing it.
func TaskOverlap(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	intersection := 0
	for task := range a {
		if b[task] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// RelativeDelta computes (current-baseline)/baseline, returning 0.0
// when the baseline is effectively zero
func RelativeDelta(baseline, current float64) float64 {
	const epsilon = 1e-9
	if baseline < epsilon && baseline > -epsilon {
		return 0.0
	}
	return (current - baseline) / baseline
}
