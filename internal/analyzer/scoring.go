package analyzer

import (
	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/config"
)

// ContextScore scores documentation discoverability. Base 0.0, fixed
// bonuses per signal, clamped to [0,1].
func ContextScore(model *domain.RepoModel) float64 {
	score := 0.0
	if model.Docs.HasAgentsMD && model.Docs.AgentsHasSectionHeader {
		score += 0.35
	}
	if model.Docs.HasContextIndex {
		score += 0.20
	}
	if model.Docs.HasArchitectureDoc {
		score += 0.15
	}
	if model.Docs.ReadmeLinksArchitecture {
		score += 0.10
	}
	if model.Docs.DocsAgeDays != nil && *model.Docs.DocsAgeDays < 90 {
		score += 0.20
	}
	return domain.Clamp01(score)
}

// ToolsScore scores tool-surface safety. Base 1.0, fixed penalties per
// signal, clamped to [0,1].
func ToolsScore(model *domain.RepoModel) float64 {
	score := 1.0
	if len(model.Tools.ToolNames) > 12 {
		score -= 0.10
	}
	score -= float64(model.Tools.RiskyOverlapClusters) * 0.05
	score -= float64(model.Tools.UnrestrictedDestructive) * 0.20
	if model.Tools.HasAmbiguousDuplicates {
		score -= 0.15
	}
	return domain.Clamp01(score)
}

// ContinuityScore scores continuity-artifact presence
func ContinuityScore(model *domain.RepoModel) float64 {
	score := 0.0
	if model.Continuity.HasInitializerPrompt && model.Continuity.HasCodingPrompt {
		score += 0.40
	}
	if model.Continuity.HasProgressFile {
		score += 0.25
	}
	if model.Continuity.HasFeatureStateFile {
		score += 0.20
	}
	if model.Continuity.HasProgressSummary {
		score += 0.15
	}
	return domain.Clamp01(score)
}

// VerificationScore scores verification rigor from configuration alone.
// An absent config scores 0.0.
func VerificationScore(cfg *config.Config) float64 {
	score := 0.0
	if cfg == nil || cfg.Verification == nil {
		return score
	}
	if len(cfg.Verification.Required) > 0 {
		score += 0.50
	}
	if cfg.Verification.PreCompletionRequired {
		score += 0.30
	}
	if cfg.Verification.LoopGuardEnabled {
		score += 0.20
	}
	return domain.Clamp01(score)
}

// RepositoryQualityScore scores general repository hygiene
func RepositoryQualityScore(model *domain.RepoModel) float64 {
	score := 0.0
	if model.Quality.HasCIWorkflow {
		score += 0.40
	}
	if model.Quality.HasTests {
		score += 0.30
	}
	if model.Quality.HasLintConfig {
		score += 0.30
	}
	return domain.Clamp01(score)
}
