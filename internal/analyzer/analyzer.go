package analyzer

import (
	"fmt"
	"strings"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/config"
)

// Analyze evaluates the repository signal model against the configured
// rubric and produces the full harness report: category scores, weighted
// overall, findings, and ranked recommendations. The configuration may
// be nil; its absence is itself a signal.
func Analyze(model *domain.RepoModel, cfg *config.Config) *domain.HarnessReport {
	context := ContextScore(model)
	tools := ToolsScore(model)
	continuity := ContinuityScore(model)
	verification := VerificationScore(cfg)
	repositoryQuality := RepositoryQualityScore(model)

	scores := domain.NewScoreCard(context, tools, continuity, verification, repositoryQuality).
		Finalize(cfg.Weights())

	report := &domain.HarnessReport{
		OverallScore:    scores.Overall,
		CategoryScores:  scores,
		Findings:        Findings(model, cfg, verification),
		Recommendations: Recommendations(model),
	}
	report.SortRecommendations()
	return report
}

// Findings evaluates the fixed finding predicates. Each predicate emits
// zero or one finding; findings are never deduplicated or ordered here.
func Findings(model *domain.RepoModel, cfg *config.Config, verificationScore float64) []domain.Finding {
	findings := []domain.Finding{}

	if !model.Docs.HasAgentsMD {
		findings = append(findings, domain.Finding{
			ID:       "context.missing_agents",
			Title:    "Missing AGENTS.md",
			Body:     "Repository is missing AGENTS.md; agent legibility is reduced.",
			Blocking: false,
			File:     "AGENTS.md",
		})
	}
	if !model.Docs.HasContextIndex {
		findings = append(findings, domain.Finding{
			ID:       "context.missing_index",
			Title:    "Missing docs context index",
			Body:     "docs/context/INDEX.md is missing, reducing navigability for agents.",
			Blocking: false,
			File:     "docs/context/INDEX.md",
		})
	}

	// Destructive exposure is blocking regardless of configuration.
	if model.Tools.UnrestrictedDestructive > 0 {
		findings = append(findings, domain.Finding{
			ID:       "tools.destructive_exposed",
			Title:    "Potentially destructive tools exposed",
			Body:     "Detected unrestricted destructive commands in tool inventory.",
			Blocking: true,
			File:     "harness.toml",
		})
	}

	if cfg != nil && cfg.Tools != nil && cfg.Tools.Deprecated != nil {
		deprecated := cfg.Tools.Deprecated
		if len(deprecated.Observe) > 0 {
			findings = append(findings, domain.Finding{
				ID:    "tools.observe",
				Title: "Observed tools scheduled for deprecation",
				Body: fmt.Sprintf("Observed tools are still allowed but tracked: %s.",
					strings.Join(deprecated.Observe, ", ")),
				Blocking: false,
				File:     "harness.toml",
			})
		}
		if len(deprecated.Deprecated) > 0 {
			findings = append(findings, domain.Finding{
				ID:    "tools.deprecated",
				Title: "Deprecated tools still enabled",
				Body: fmt.Sprintf("Deprecated tools should be migrated off active workflows: %s.",
					strings.Join(deprecated.Deprecated, ", ")),
				Blocking: true,
				File:     "harness.toml",
			})
		}
		if len(deprecated.Disabled) > 0 {
			findings = append(findings, domain.Finding{
				ID:    "tools.disabled",
				Title: "Disabled tools are configured",
				Body: fmt.Sprintf("Disabled tools are forbidden on apply and must not be used: %s.",
					strings.Join(deprecated.Disabled, ", ")),
				Blocking: true,
				File:     "harness.toml",
			})
		}
	}

	// The two verification findings are mutually exclusive: an absent
	// config warns, a present config with a weak score blocks.
	if cfg != nil && verificationScore < 0.5 {
		findings = append(findings, domain.Finding{
			ID:       "verification.incomplete",
			Title:    "Verification policy incomplete",
			Body:     "Verification requirements are incomplete or missing pre-completion checks.",
			Blocking: true,
			File:     "harness.toml",
		})
	} else if cfg == nil {
		findings = append(findings, domain.Finding{
			ID:       "verification.missing_config",
			Title:    "Verification policy unavailable",
			Body:     "Verification checks cannot be evaluated because harness.toml is missing.",
			Blocking: false,
			File:     "harness.toml",
		})
	}

	return findings
}

// Recommendations returns the built-in recommendation candidates for a
// scanned repository. Ranking is applied by the caller via the report.
func Recommendations(model *domain.RepoModel) []domain.Recommendation {
	recommendations := []domain.Recommendation{
		domain.NewRecommendation(
			"rec.context.index",
			"Add Context Index",
			"Create docs/context/INDEX.md and link it from AGENTS.md.",
			domain.ImpactHigh, domain.EffortS, domain.RiskSafe, 0.92,
		),
		domain.NewRecommendation(
			"rec.verification.gate",
			"Enable Verification Gate",
			"Set pre_completion_required and provide required verification commands.",
			domain.ImpactHigh, domain.EffortS, domain.RiskMedium, 0.88,
		),
		domain.NewRecommendation(
			"rec.tools.prune",
			"Prune Redundant Tools",
			"Reduce overlap in grep/find-style tool clusters and remove risky commands.",
			domain.ImpactMedium, domain.EffortM, domain.RiskMedium, 0.84,
		),
	}

	if model.FileCount < 20 {
		recommendations = append(recommendations, domain.NewRecommendation(
			"rec.repo.scale",
			"Document Repository Scale",
			"Add lightweight architecture notes to support agent understanding in small repos.",
			domain.ImpactLow, domain.EffortXS, domain.RiskSafe, 0.60,
		))
	}

	return recommendations
}

// LintFindings returns only the findings for a model, for the lint command
func LintFindings(model *domain.RepoModel, cfg *config.Config) []domain.Finding {
	return Findings(model, cfg, VerificationScore(cfg))
}
