package optimizer

import (
	"fmt"
	"sort"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/config"
)

// ComputeDelta aggregates trace records per revision and classifies the
// change between the two most recent revisions. Every gating failure
// short-circuits with InsufficientData and a reason stating the actual
// values and the configured threshold; only a fully-passed gate
// sequence reaches the signal vote.
func ComputeDelta(traces []domain.RecentTrace, thresholds config.OptimizationThresholds) domain.OptimizeDelta {
	perRevision := map[string]*revisionAccumulator{}
	for _, trace := range traces {
		accumulator, ok := perRevision[trace.Revision]
		if !ok {
			accumulator = newRevisionAccumulator()
			perRevision[trace.Revision] = accumulator
		}
		accumulator.add(trace)
	}

	revisions := make([]RevisionMetrics, 0, len(perRevision))
	for revision, accumulator := range perRevision {
		if metrics, ok := accumulator.metrics(revision); ok {
			revisions = append(revisions, metrics)
		}
	}

	if len(revisions) < 2 {
		return domain.OptimizeDelta{
			Status: domain.OptimizeInsufficientData,
			Reason: "need traces from at least two revisions",
		}
	}

	// The two most recent distinct revisions by recency, not by name
	// or first-seen order. Revision name breaks latest_ts ties so the
	// choice stays deterministic.
	sort.Slice(revisions, func(i, j int) bool {
		if !revisions[i].LatestTS.Equal(revisions[j].LatestTS) {
			return revisions[i].LatestTS.Before(revisions[j].LatestTS)
		}
		return revisions[i].Revision < revisions[j].Revision
	})
	baseline := revisions[len(revisions)-2]
	current := revisions[len(revisions)-1]

	if baseline.Total < thresholds.MinTraces || current.Total < thresholds.MinTraces {
		return domain.OptimizeDelta{
			Status:           domain.OptimizeInsufficientData,
			BaselineRevision: baseline.Revision,
			CurrentRevision:  current.Revision,
			Reason: fmt.Sprintf("need at least %d traces per revision (baseline=%d, current=%d)",
				thresholds.MinTraces, baseline.Total, current.Total),
		}
	}

	overlap := TaskOverlap(baseline.Tasks, current.Tasks)
	if overlap < thresholds.TaskOverlapThreshold {
		return domain.OptimizeDelta{
			Status:           domain.OptimizeInsufficientData,
			BaselineRevision: baseline.Revision,
			CurrentRevision:  current.Revision,
			TaskOverlap:      overlap,
			Reason: fmt.Sprintf("task overlap %.2f is below threshold %.2f",
				overlap, thresholds.TaskOverlapThreshold),
		}
	}

	completionDelta := current.CompletionRate - baseline.CompletionRate
	tokenDeltaRel := RelativeDelta(baseline.AvgTokens, current.AvgTokens)
	stepDeltaRel := RelativeDelta(baseline.AvgSteps, current.AvgSteps)

	// Unweighted majority vote across three independent directional
	// signals; fewer tokens/steps count as improvement.
	completionSignal := directionalSignal(completionDelta, thresholds.MinUpliftAbs)
	tokenSignal := -directionalSignal(tokenDeltaRel, thresholds.MinUpliftRel)
	stepSignal := -directionalSignal(stepDeltaRel, thresholds.MinUpliftRel)
	totalSignal := completionSignal + tokenSignal + stepSignal

	status := domain.OptimizeNeutral
	reason := ""
	switch {
	case totalSignal > 0:
		status = domain.OptimizeImprovement
	case totalSignal < 0:
		status = domain.OptimizeRegression
	default:
		reason = "changes are below configured uplift thresholds"
	}

	return domain.OptimizeDelta{
		Status:           status,
		BaselineRevision: baseline.Revision,
		CurrentRevision:  current.Revision,
		CompletionDelta:  completionDelta,
		TokenDeltaRel:    tokenDeltaRel,
		StepDeltaRel:     stepDeltaRel,
		TaskOverlap:      overlap,
		Reason:           reason,
	}
}

// directionalSignal maps a delta to {-1, 0, +1} against a symmetric
// threshold: +1 at or above +threshold, -1 at or below -threshold.
func directionalSignal(delta, threshold float64) int {
	if delta >= threshold {
		return 1
	}
	if delta <= -threshold {
		return -1
	}
	return 0
}
