package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/constants"
)

// Default optimization thresholds
const (
	// DefaultMinTraces is the minimum number of recent traces required
	// per revision before optimize deltas are computed
	DefaultMinTraces = 30

	// DefaultMinUpliftAbs is the minimum absolute completion-rate change
	// counted as a directional signal
	DefaultMinUpliftAbs = 0.05

	// DefaultMinUpliftRel is the minimum relative token/step change
	// counted as a directional signal
	DefaultMinUpliftRel = 0.10

	// DefaultTraceStalenessDays is the age beyond which trace records
	// are ignored
	DefaultTraceStalenessDays = 90

	// DefaultTaskOverlapThreshold is the minimum Jaccard similarity of
	// task sets required for a revision comparison
	DefaultTaskOverlapThreshold = 0.50
)

// DefaultMaxPenaltyPerBucket caps scoring penalties per category
const DefaultMaxPenaltyPerBucket = 0.40

// Config represents the merged harness configuration
type Config struct {
	Project      ProjectConfig       `mapstructure:"project"`
	Context      *ContextConfig      `mapstructure:"context"`
	Tools        *ToolsConfig        `mapstructure:"tools"`
	Verification *VerificationConfig `mapstructure:"verification"`
	Continuity   *ContinuityConfig   `mapstructure:"continuity"`
	Metrics      *MetricsConfig      `mapstructure:"metrics"`
	Workflow     *WorkflowConfig     `mapstructure:"workflow"`
	Optimization *OptimizationConfig `mapstructure:"optimization"`
}

// ProjectConfig identifies the project under evaluation
type ProjectConfig struct {
	Name       string `mapstructure:"name"`
	Profile    string `mapstructure:"profile"`
	Language   string `mapstructure:"language"`
	MainBranch string `mapstructure:"main_branch"`
}

// ContextConfig points at agent-facing documentation
type ContextConfig struct {
	AgentsMap      string `mapstructure:"agents_map"`
	ContextIndex   string `mapstructure:"context_index"`
	DocMapRequired bool   `mapstructure:"doc_map_required"`
}

// ToolsConfig describes the tool surface exposed to agents
type ToolsConfig struct {
	Baseline    *ToolBaseline     `mapstructure:"baseline"`
	Specialized *ToolSpecialized  `mapstructure:"specialized"`
	Deprecated  *ToolDeprecated   `mapstructure:"deprecated"`
	Aliases     map[string]string `mapstructure:"aliases"`
}

// ToolBaseline lists the baseline tool inventory
type ToolBaseline struct {
	Commands        []string   `mapstructure:"commands"`
	Read            []string   `mapstructure:"read"`
	Write           []string   `mapstructure:"write"`
	OverlapClusters [][]string `mapstructure:"overlap_clusters"`
	Destructive     []string   `mapstructure:"destructive"`
	Forbidden       []string   `mapstructure:"forbidden"`
}

// ToolSpecialized lists extra, task-specific tools
type ToolSpecialized struct {
	Extra []string `mapstructure:"extra"`
}

// ToolDeprecated holds the three-stage tool deprecation lifecycle.
// A tool name may legally appear in only one of the three lists.
type ToolDeprecated struct {
	Observe    []string `mapstructure:"observe"`
	Deprecated []string `mapstructure:"deprecated"`
	Disabled   []string `mapstructure:"disabled"`
}

// VerificationConfig describes required verification commands
type VerificationConfig struct {
	Required              []string `mapstructure:"required"`
	PreCompletionRequired bool     `mapstructure:"pre_completion_required"`
	LoopGuardEnabled      bool     `mapstructure:"loop_guard_enabled"`
}

// ContinuityConfig configures continuity artifacts and logging
type ContinuityConfig struct {
	Initializer       string `mapstructure:"initializer"`
	CodingPrompt      string `mapstructure:"coding_prompt"`
	ProgressFile      string `mapstructure:"progress_file"`
	FeatureStateFile  string `mapstructure:"feature_state_file"`
	LogSampling       string `mapstructure:"log_sampling"`
	BatchIntervalSecs int    `mapstructure:"batch_interval_secs"`
	MaxLogSizeKB      int    `mapstructure:"max_log_size_kb"`
	RetainedLogs      int    `mapstructure:"retained_logs"`
}

// MetricsConfig configures scoring weights and tolerances
type MetricsConfig struct {
	Weights             map[string]float64 `mapstructure:"weights"`
	MaxRiskTolerance    *float64           `mapstructure:"max_risk_tolerance"`
	MaxPenaltyPerBucket *float64           `mapstructure:"max_penalty_per_bucket"`
}

// WorkflowConfig configures agent workflow limits
type WorkflowConfig struct {
	MaxConsecutiveFailures int  `mapstructure:"max_consecutive_failures"`
	MaxIdleSteps           int  `mapstructure:"max_idle_steps"`
	ReplanOnLoop           bool `mapstructure:"replan_on_loop"`
}

// OptimizationConfig configures the optimize delta thresholds
type OptimizationConfig struct {
	MinTraces            *int     `mapstructure:"min_traces"`
	MinUpliftAbs         *float64 `mapstructure:"min_uplift_abs"`
	MinUpliftRel         *float64 `mapstructure:"min_uplift_rel"`
	TraceStalenessDays   *int     `mapstructure:"trace_staleness_days"`
	TaskOverlapThreshold *float64 `mapstructure:"task_overlap_threshold"`
}

// OptimizationThresholds is the resolved threshold set passed into the
// optimize delta classifier
type OptimizationThresholds struct {
	MinTraces            int
	MinUpliftAbs         float64
	MinUpliftRel         float64
	TraceStalenessDays   int
	TaskOverlapThreshold float64
}

// DefaultThresholds returns the documented default thresholds
func DefaultThresholds() OptimizationThresholds {
	return OptimizationThresholds{
		MinTraces:            DefaultMinTraces,
		MinUpliftAbs:         DefaultMinUpliftAbs,
		MinUpliftRel:         DefaultMinUpliftRel,
		TraceStalenessDays:   DefaultTraceStalenessDays,
		TaskOverlapThreshold: DefaultTaskOverlapThreshold,
	}
}

// OptimizationThresholds resolves configured thresholds over the defaults
func (c *Config) OptimizationThresholds() OptimizationThresholds {
	thresholds := DefaultThresholds()
	if c == nil || c.Optimization == nil {
		return thresholds
	}
	opt := c.Optimization
	if opt.MinTraces != nil {
		thresholds.MinTraces = *opt.MinTraces
	}
	if opt.MinUpliftAbs != nil {
		thresholds.MinUpliftAbs = *opt.MinUpliftAbs
	}
	if opt.MinUpliftRel != nil {
		thresholds.MinUpliftRel = *opt.MinUpliftRel
	}
	if opt.TraceStalenessDays != nil {
		thresholds.TraceStalenessDays = *opt.TraceStalenessDays
	}
	if opt.TaskOverlapThreshold != nil {
		thresholds.TaskOverlapThreshold = *opt.TaskOverlapThreshold
	}
	return thresholds
}

// Weights resolves the category weight vector, falling back to the
// per-category default for any key the config omits
func (c *Config) Weights() domain.Weights {
	weights := domain.DefaultWeights()
	if c == nil || c.Metrics == nil || c.Metrics.Weights == nil {
		return weights
	}
	configured := c.Metrics.Weights
	if value, ok := configured["context"]; ok {
		weights.Context = value
	}
	if value, ok := configured["tools"]; ok {
		weights.Tools = value
	}
	if value, ok := configured["continuity"]; ok {
		weights.Continuity = value
	}
	if value, ok := configured["verification"]; ok {
		weights.Verification = value
	}
	if value, ok := configured["repository_quality"]; ok {
		weights.RepositoryQuality = value
	}
	return weights
}

// MaxPenaltyPerBucket resolves the per-category penalty cap
func (c *Config) MaxPenaltyPerBucket() float64 {
	if c == nil || c.Metrics == nil || c.Metrics.MaxPenaltyPerBucket == nil {
		return DefaultMaxPenaltyPerBucket
	}
	return *c.Metrics.MaxPenaltyPerBucket
}

// CommandPolicy builds the guardrail policy from the configured tool
// surface, falling back to the built-in policy when nothing is configured
func (c *Config) CommandPolicy() domain.CommandPolicy {
	policy := domain.DefaultCommandPolicy()
	if c == nil || c.Tools == nil {
		return policy
	}
	if c.Tools.Baseline != nil && len(c.Tools.Baseline.Forbidden) > 0 {
		policy.Forbidden = append([]string(nil), c.Tools.Baseline.Forbidden...)
	}
	if len(c.Tools.Aliases) > 0 {
		policy.Aliases = c.Tools.Aliases
	}
	return policy
}

// Validate checks configuration invariants that the scoring and
// classification engines rely on being enforced upstream
func (c *Config) Validate() error {
	if c.Project.Profile != "" && c.Project.Profile != "general" && c.Project.Profile != "agent" {
		return domain.NewConfigError(
			fmt.Sprintf("unsupported project.profile: %s", c.Project.Profile), nil)
	}

	weights := c.Weights()
	values := []float64{
		weights.Context, weights.Tools, weights.Continuity,
		weights.Verification, weights.RepositoryQuality,
	}
	sum := 0.0
	for _, value := range values {
		if value < 0.0 || value > 1.0 {
			return domain.NewConfigError("metrics.weights values must be between 0.0 and 1.0", nil)
		}
		sum += value
	}
	if math.Abs(sum-1.0) > 0.001 {
		return domain.NewConfigError(
			fmt.Sprintf("metrics.weights must sum to 1.0 (found %.3f)", sum), nil)
	}

	if c.Metrics != nil {
		if tolerance := c.Metrics.MaxRiskTolerance; tolerance != nil && (*tolerance < 0.0 || *tolerance > 1.0) {
			return domain.NewConfigError("metrics.max_risk_tolerance must be between 0.0 and 1.0", nil)
		}
		if penalty := c.Metrics.MaxPenaltyPerBucket; penalty != nil && (*penalty < 0.0 || *penalty > 1.0) {
			return domain.NewConfigError("metrics.max_penalty_per_bucket must be between 0.0 and 1.0", nil)
		}
	}

	if c.Verification != nil && c.Verification.PreCompletionRequired && len(c.Verification.Required) == 0 {
		return domain.NewConfigError(
			"verification.required cannot be empty when pre_completion_required = true", nil)
	}

	return nil
}

// Load loads the layered configuration for a repository root. A missing
// repository config file yields (nil, nil): absence is a signal the
// analyzers consume, not an error.
func Load(root string) (*Config, error) {
	globalPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		globalPath = filepath.Join(home, constants.GlobalConfigFile)
	}
	return LoadWithGlobal(root, globalPath)
}

// LoadWithGlobal loads configuration with an explicit global config
// path. Merge order is global, then repository, then local override,
// with later layers winning key by key.
func LoadWithGlobal(root, globalPath string) (*Config, error) {
	repoPath := filepath.Join(root, constants.ConfigFileName)
	if _, err := os.Stat(repoPath); err != nil {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigType("toml")

	layers := []string{}
	if globalPath != "" {
		layers = append(layers, globalPath)
	}
	layers = append(layers, repoPath, filepath.Join(root, constants.LocalConfigFile))

	for _, layer := range layers {
		if _, err := os.Stat(layer); err != nil {
			continue
		}
		v.SetConfigFile(layer)
		if err := v.MergeInConfig(); err != nil {
			return nil, domain.NewConfigError(fmt.Sprintf("failed to read %s", layer), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal configuration", err)
	}
	if cfg.Project.Profile == "" {
		cfg.Project.Profile = "general"
	}
	if cfg.Project.MainBranch == "" {
		cfg.Project.MainBranch = "main"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
