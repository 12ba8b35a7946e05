package domain

// DocSignals describes observed documentation facts
type DocSignals struct {
	HasAgentsMD             bool
	AgentsHasSectionHeader  bool
	HasContextIndex         bool
	HasArchitectureDoc      bool
	ReadmeLinksArchitecture bool

	// DocsAgeDays is the age of the newest agent-facing doc in days,
	// nil when no dated doc was found.
	DocsAgeDays *int
}

// ToolSignals describes the observed tool inventory
type ToolSignals struct {
	ToolNames               []string
	RiskyOverlapClusters    int
	UnrestrictedDestructive int
	HasAmbiguousDuplicates  bool
}

// ContinuitySignals describes observed continuity artifacts
type ContinuitySignals struct {
	HasInitializerPrompt bool
	HasCodingPrompt      bool
	HasProgressFile      bool
	HasFeatureStateFile  bool
	HasProgressSummary   bool
}

// QualitySignals describes general repository hygiene facts
type QualitySignals struct {
	HasCIWorkflow bool
	HasTests      bool
	HasLintConfig bool
}

// RepoModel is the full signal model for one scanned repository.
// It is produced fresh per run and never mutated after creation.
type RepoModel struct {
	Root       string
	FileCount  int
	Docs       DocSignals
	Tools      ToolSignals
	Continuity ContinuitySignals
	Quality    QualitySignals
}
