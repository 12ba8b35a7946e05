package domain

import (
	"io"
	"sort"
)

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatMarkdown OutputFormat = "md"
	OutputFormatSARIF    OutputFormat = "sarif"
)

// Impact represents the expected payoff of a recommendation
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Effort represents the expected cost of a recommendation
type Effort string

const (
	EffortXS Effort = "xs"
	EffortS  Effort = "s"
	EffortM  Effort = "m"
	EffortL  Effort = "l"
)

// Risk represents how safe a recommendation is to apply automatically
type Risk string

const (
	RiskSafe   Risk = "safe"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// impactRank orders impact descending: higher rank sorts first.
var impactRank = map[Impact]int{
	ImpactHigh:   2,
	ImpactMedium: 1,
	ImpactLow:    0,
}

// effortRank orders effort ascending: lower rank sorts first.
var effortRank = map[Effort]int{
	EffortXS: 0,
	EffortS:  1,
	EffortM:  2,
	EffortL:  3,
}

// ScoreCard holds the five category scores plus the weighted overall.
// Every field is clamped to [0,1]; Overall is derived, never set directly.
type ScoreCard struct {
	Context           float64 `json:"context" yaml:"context"`
	Tools             float64 `json:"tools" yaml:"tools"`
	Continuity        float64 `json:"continuity" yaml:"continuity"`
	Verification      float64 `json:"verification" yaml:"verification"`
	RepositoryQuality float64 `json:"repository_quality" yaml:"repository_quality"`
	Overall           float64 `json:"overall" yaml:"overall"`
}

// Weights holds the per-category weight vector. Validation happens at
// configuration load time, not here.
type Weights struct {
	Context           float64
	Tools             float64
	Continuity        float64
	Verification      float64
	RepositoryQuality float64
}

// DefaultWeights returns the built-in category weight vector
func DefaultWeights() Weights {
	return Weights{
		Context:           0.30,
		Tools:             0.25,
		Continuity:        0.20,
		Verification:      0.15,
		RepositoryQuality: 0.10,
	}
}

// NewScoreCard builds a score card with each category clamped to [0,1]
func NewScoreCard(context, tools, continuity, verification, repositoryQuality float64) ScoreCard {
	return ScoreCard{
		Context:           Clamp01(context),
		Tools:             Clamp01(tools),
		Continuity:        Clamp01(continuity),
		Verification:      Clamp01(verification),
		RepositoryQuality: Clamp01(repositoryQuality),
	}
}

// Finalize computes the weighted overall score. Categories are clamped
// again before weighting so a malformed weight vector can never push the
// overall outside [0,1] through unclamped inputs.
func (s ScoreCard) Finalize(weights Weights) ScoreCard {
	s.Context = Clamp01(s.Context)
	s.Tools = Clamp01(s.Tools)
	s.Continuity = Clamp01(s.Continuity)
	s.Verification = Clamp01(s.Verification)
	s.RepositoryQuality = Clamp01(s.RepositoryQuality)
	s.Overall = s.Context*weights.Context +
		s.Tools*weights.Tools +
		s.Continuity*weights.Continuity +
		s.Verification*weights.Verification +
		s.RepositoryQuality*weights.RepositoryQuality
	return s
}

// Clamp01 clamps a score to the [0,1] range
func Clamp01(value float64) float64 {
	if value < 0.0 {
		return 0.0
	}
	if value > 1.0 {
		return 1.0
	}
	return value
}

// Finding represents a concrete issue surfaced by rule evaluation
type Finding struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Body     string `json:"body" yaml:"body"`
	Blocking bool   `json:"blocking" yaml:"blocking"`
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Recommendation represents a ranked, actionable suggestion
type Recommendation struct {
	ID         string  `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	Summary    string  `json:"summary" yaml:"summary"`
	Impact     Impact  `json:"impact" yaml:"impact"`
	Effort     Effort  `json:"effort" yaml:"effort"`
	Risk       Risk    `json:"risk" yaml:"risk"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// NewRecommendation builds a recommendation with confidence clamped to [0,1]
func NewRecommendation(id, title, summary string, impact Impact, effort Effort, risk Risk, confidence float64) Recommendation {
	return Recommendation{
		ID:         id,
		Title:      title,
		Summary:    summary,
		Impact:     impact,
		Effort:     effort,
		Risk:       risk,
		Confidence: Clamp01(confidence),
	}
}

// HarnessReport is the complete analysis result
type HarnessReport struct {
	OverallScore    float64          `json:"overall_score" yaml:"overall_score"`
	CategoryScores  ScoreCard        `json:"category_scores" yaml:"category_scores"`
	Findings        []Finding        `json:"findings" yaml:"findings"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// HasBlockingFindings reports whether any finding is blocking
func (r *HarnessReport) HasBlockingFindings() bool {
	for _, finding := range r.Findings {
		if finding.Blocking {
			return true
		}
	}
	return false
}

// SortRecommendations imposes the strict recommendation priority order:
// impact descending, then effort ascending, then id ascending. The id
// tie-break keeps the order total as long as ids are unique, so sorting
// an already-sorted list is a no-op.
func (r *HarnessReport) SortRecommendations() {
	sort.SliceStable(r.Recommendations, func(i, j int) bool {
		a, b := r.Recommendations[i], r.Recommendations[j]
		if impactRank[a.Impact] != impactRank[b.Impact] {
			return impactRank[a.Impact] > impactRank[b.Impact]
		}
		if effortRank[a.Effort] != effortRank[b.Effort] {
			return effortRank[a.Effort] < effortRank[b.Effort]
		}
		return a.ID < b.ID
	})
}

// OutputFormatter defines the interface for rendering harness reports
type OutputFormatter interface {
	// Write renders the report in the given format to the writer
	Write(report *HarnessReport, format OutputFormat, writer io.Writer) error
}

// ProgressManager abstracts progress reporting so command paths can run
// with or without an interactive terminal
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks a single progress task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
