package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScoreCardClampsCategories(t *testing.T) {
	card := NewScoreCard(-0.5, 1.5, 0.5, 0.0, 1.0)

	assert.Equal(t, 0.0, card.Context)
	assert.Equal(t, 1.0, card.Tools)
	assert.Equal(t, 0.5, card.Continuity)
}

func TestFinalizeComputesWeightedOverall(t *testing.T) {
	card := NewScoreCard(1.0, 1.0, 1.0, 1.0, 1.0).Finalize(DefaultWeights())
	assert.InDelta(t, 1.0, card.Overall, 1e-9)

	card = NewScoreCard(1.0, 0.0, 0.0, 0.0, 0.0).Finalize(DefaultWeights())
	assert.InDelta(t, 0.30, card.Overall, 1e-9)
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"below range", -0.1, 0.0},
		{"above range", 1.1, 1.0},
		{"in range", 0.42, 0.42},
		{"at lower bound", 0.0, 0.0},
		{"at upper bound", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp01(tt.input))
		})
	}
}

func TestNewRecommendationClampsConfidence(t *testing.T) {
	recommendation := NewRecommendation("id", "title", "summary", ImpactHigh, EffortS, RiskSafe, 1.4)
	assert.Equal(t, 1.0, recommendation.Confidence)
}

func TestSortRecommendationsOrder(t *testing.T) {
	report := HarnessReport{
		Recommendations: []Recommendation{
			{ID: "c", Impact: ImpactLow, Effort: EffortXS},
			{ID: "b", Impact: ImpactHigh, Effort: EffortM},
			{ID: "a", Impact: ImpactHigh, Effort: EffortS},
			{ID: "d", Impact: ImpactMedium, Effort: EffortS},
		},
	}

	report.SortRecommendations()

	var ids []string
	for _, recommendation := range report.Recommendations {
		ids = append(ids, recommendation.ID)
	}
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids)
}

func TestSortRecommendationsTieBreaksByID(t *testing.T) {
	report := HarnessReport{
		Recommendations: []Recommendation{
			{ID: "z", Impact: ImpactHigh, Effort: EffortS},
			{ID: "a", Impact: ImpactHigh, Effort: EffortS},
		},
	}

	report.SortRecommendations()

	assert.Equal(t, "a", report.Recommendations[0].ID)
	assert.Equal(t, "z", report.Recommendations[1].ID)
}

func TestSortRecommendationsIsIdempotent(t *testing.T) {
	report := HarnessReport{
		Recommendations: []Recommendation{
			{ID: "b", Impact: ImpactMedium, Effort: EffortM},
			{ID: "a", Impact: ImpactHigh, Effort: EffortXS},
			{ID: "c", Impact: ImpactLow, Effort: EffortL},
		},
	}

	report.SortRecommendations()
	first := append([]Recommendation(nil), report.Recommendations...)
	report.SortRecommendations()

	assert.Equal(t, first, report.Recommendations)
}

func TestHasBlockingFindings(t *testing.T) {
	report := HarnessReport{Findings: []Finding{{ID: "a", Blocking: false}}}
	assert.False(t, report.HasBlockingFindings())

	report.Findings = append(report.Findings, Finding{ID: "b", Blocking: true})
	assert.True(t, report.HasBlockingFindings())
}
