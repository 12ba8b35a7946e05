package domain

import "time"

// OptimizeDeltaStatus classifies the change between two revisions
type OptimizeDeltaStatus string

const (
	OptimizeImprovement      OptimizeDeltaStatus = "improvement"
	OptimizeRegression       OptimizeDeltaStatus = "regression"
	OptimizeNeutral          OptimizeDeltaStatus = "neutral"
	OptimizeInsufficientData OptimizeDeltaStatus = "insufficient_data"
)

// TraceRecord is one logged execution attempt as parsed from a trace
// line. Optional fields stay nil when the line omits them.
type TraceRecord struct {
	Timestamp string  `json:"timestamp"`
	TaskID    *string `json:"task_id,omitempty"`
	Revision  *string `json:"revision,omitempty"`
	Outcome   *string `json:"outcome,omitempty"`
	Steps     *int    `json:"steps,omitempty"`
	ToolCalls *int    `json:"tool_calls,omitempty"`
	TokenEst  *int64  `json:"token_est,omitempty"`
	WallMS    *int64  `json:"wall_ms,omitempty"`
}

// RecentTrace is a trace record that passed the staleness filter and
// carries the fields required for revision aggregation.
type RecentTrace struct {
	Timestamp time.Time
	TaskID    string
	Revision  string
	Outcome   string
	Steps     *int
	TokenEst  *int64
}

// TraceScanStats counts raw trace scan outcomes. Malformed lines are
// counted and skipped, never fatal to the scan.
type TraceScanStats struct {
	Recent    int `json:"recent" yaml:"recent"`
	Stale     int `json:"stale" yaml:"stale"`
	Malformed int `json:"malformed" yaml:"malformed"`
}

// OptimizeDelta is the classified comparison between the two most recent
// revisions found in the trace set. InsufficientData is a normal terminal
// classification, not an error; Reason explains which gate failed.
type OptimizeDelta struct {
	Status           OptimizeDeltaStatus `json:"status" yaml:"status"`
	BaselineRevision string              `json:"baseline_revision,omitempty" yaml:"baseline_revision,omitempty"`
	CurrentRevision  string              `json:"current_revision,omitempty" yaml:"current_revision,omitempty"`
	CompletionDelta  float64             `json:"completion_delta" yaml:"completion_delta"`
	TokenDeltaRel    float64             `json:"token_delta_rel" yaml:"token_delta_rel"`
	StepDeltaRel     float64             `json:"step_delta_rel" yaml:"step_delta_rel"`
	TaskOverlap      float64             `json:"task_overlap" yaml:"task_overlap"`
	Reason           string              `json:"reason,omitempty" yaml:"reason,omitempty"`
}
