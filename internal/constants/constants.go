package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "harness"

	// ConfigFileName is the repository config file name
	ConfigFileName = "harness.toml"

	// LocalConfigFile is the per-checkout override, merged over the
	// repository config
	LocalConfigFile = ".harness/local.toml"

	// GlobalConfigFile is the user-level config, relative to $HOME
	GlobalConfigFile = ".config/harness/config.toml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "HARNESS"
)

// Well-known paths under the repository root
const (
	HarnessDir   = ".harness"
	TraceDir     = ".harness/traces"
	OptimizeDir  = ".harness/optimize"
	BenchDir     = ".harness/bench"
	PlanDir      = ".harness/plans"
	RollbackDir  = ".harness/rollback"
	ProgressFile = ".harness/progress.md"
)

// Exit codes shared by all commands
const (
	ExitSuccess        = 0
	ExitWarnings       = 1
	ExitBlocking       = 2
	ExitRuntimeFailure = 3
)
