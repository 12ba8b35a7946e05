package service

import (
	"fmt"
	"strings"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/config"
)

// RenderOptimizeReport builds the markdown optimize report from the
// analysis report, the raw trace scan stats, and the classified delta.
// When the recent trace count or the delta gates fail, later sections
// are withheld so the report never shows recommendations it cannot
// back with data.
func RenderOptimizeReport(
	report *domain.HarnessReport,
	stats domain.TraceScanStats,
	thresholds config.OptimizationThresholds,
	traceDir string,
	delta *domain.OptimizeDelta,
) string {
	ordered := *report
	ordered.Recommendations = append([]domain.Recommendation(nil), report.Recommendations...)
	ordered.SortRecommendations()

	var lines []string
	lines = append(lines,
		"# Harness Optimize Report",
		"",
		fmt.Sprintf("Overall score: %.3f", ordered.OverallScore),
		fmt.Sprintf("Trace directory: %s", traceDir),
		fmt.Sprintf("Trace records: recent=%d, stale=%d, malformed=%d",
			stats.Recent, stats.Stale, stats.Malformed),
		fmt.Sprintf("Recent traces required for optimization: %d", thresholds.MinTraces),
		"",
	)

	if stats.Malformed > 0 {
		lines = append(lines, fmt.Sprintf("Warning: ignored malformed trace records: %d", stats.Malformed))
	}

	if stats.Recent < thresholds.MinTraces {
		lines = append(lines,
			"Status: insufficient data for optimization recommendations.",
			fmt.Sprintf("Need at least %d recent traces before computing optimize deltas.", thresholds.MinTraces),
			"",
		)
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "## Optimization Delta")
	if delta.BaselineRevision != "" && delta.CurrentRevision != "" {
		lines = append(lines, fmt.Sprintf("- revisions compared: baseline=`%s`, current=`%s`",
			delta.BaselineRevision, delta.CurrentRevision))
	}
	lines = append(lines,
		fmt.Sprintf("- task overlap: %.2f", delta.TaskOverlap),
		fmt.Sprintf("- completion delta: %+.3f, token delta (rel): %+.3f, step delta (rel): %+.3f",
			delta.CompletionDelta, delta.TokenDeltaRel, delta.StepDeltaRel),
	)
	switch delta.Status {
	case domain.OptimizeImprovement:
		lines = append(lines, "Status: improvement detected.")
	case domain.OptimizeRegression:
		lines = append(lines, "Status: regression warning.")
	case domain.OptimizeNeutral:
		lines = append(lines, "Status: stable; changes are below uplift thresholds.")
	case domain.OptimizeInsufficientData:
		lines = append(lines, "Status: insufficient comparative data for optimize deltas.")
	}
	if delta.Reason != "" {
		lines = append(lines, fmt.Sprintf("Reason: %s", delta.Reason))
	}
	lines = append(lines, "")

	if delta.Status == domain.OptimizeInsufficientData {
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "## Top Recommendations")
	if len(ordered.Recommendations) == 0 {
		lines = append(lines, "- No recommendations available.")
	} else {
		top := ordered.Recommendations
		if len(top) > 10 {
			top = top[:10]
		}
		for _, recommendation := range top {
			lines = append(lines, fmt.Sprintf(
				"- `%s`: %s (impact: %s, effort: %s, risk: %s, confidence: %.2f)",
				recommendation.ID, recommendation.Summary, recommendation.Impact,
				recommendation.Effort, recommendation.Risk, recommendation.Confidence))
		}
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
