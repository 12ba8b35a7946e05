package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/analyzer"
	"github.com/agent-harness/harness/internal/config"
	"github.com/agent-harness/harness/internal/constants"
	"github.com/agent-harness/harness/internal/continuity"
	"github.com/agent-harness/harness/internal/scanner"
	"github.com/agent-harness/harness/internal/version"
	"github.com/agent-harness/harness/service"
)

// SuggestPlan is the exported plan of safely applicable recommendations
type SuggestPlan struct {
	Version         string   `json:"version"`
	GeneratedAt     string   `json:"generated_at"`
	Recommendations []string `json:"recommendations"`
}

// NewSuggestPlan builds a plan stamped with the current tool version
func NewSuggestPlan(recommendations []string) SuggestPlan {
	return SuggestPlan{
		Version:         version.GetVersion(),
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Recommendations: recommendations,
	}
}

// WritePlan writes a plan file under the repository plans directory and
// returns its path
func WritePlan(root string, plan SuggestPlan) (string, error) {
	dir := filepath.Join(root, constants.PlanDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.NewOutputError("failed to create plans directory", err)
	}
	stamp := time.Now().UTC().Format("20060102T150405Z")
	outPath := filepath.Join(dir, fmt.Sprintf("plan-%s.json", stamp))
	file, err := os.Create(outPath)
	if err != nil {
		return "", domain.NewOutputError("failed to write plan file", err)
	}
	defer file.Close()
	if err := service.WriteJSON(file, plan); err != nil {
		return "", domain.NewOutputError("failed to encode plan file", err)
	}
	return outPath, nil
}

// SuggestRequest holds the suggest command inputs
type SuggestRequest struct {
	Path         string
	ExportDiff   bool
	OutputWriter io.Writer
}

// SuggestUseCase lists recommendations and optionally exports a plan of
// the Safe-risk subset
type SuggestUseCase struct{}

// NewSuggestUseCase creates a new suggest use case
func NewSuggestUseCase() *SuggestUseCase {
	return &SuggestUseCase{}
}

// Execute prints ranked recommendations for the repository
func (uc *SuggestUseCase) Execute(request SuggestRequest) (int, error) {
	if err := EnsureRepo(request.Path); err != nil {
		return constants.ExitRuntimeFailure, err
	}

	cfg, err := config.Load(request.Path)
	if err != nil {
		return constants.ExitRuntimeFailure, err
	}

	logger := continuity.NewLogger(request.Path, cfg)
	defer logger.Close()
	logMilestone(logger, "suggest", "start", []string{fmt.Sprintf("path=%s", request.Path)}, "running")

	model := scanner.Discover(request.Path, cfg, time.Now())
	report := analyzer.Analyze(model, cfg)

	if len(report.Recommendations) == 0 {
		fmt.Fprintln(request.OutputWriter, "suggest: no recommendations")
		logMilestone(logger, "suggest", "complete",
			[]string{fmt.Sprintf("exit_code=%d", constants.ExitSuccess)}, "done")
		return constants.ExitSuccess, nil
	}

	fmt.Fprintln(request.OutputWriter, "suggestions:")
	for _, recommendation := range report.Recommendations {
		fmt.Fprintf(request.OutputWriter, "- %s [%s %s/%s]\n",
			recommendation.ID, recommendation.Title, recommendation.Impact, recommendation.Risk)
	}

	if request.ExportDiff {
		var ids []string
		for _, recommendation := range report.Recommendations {
			if recommendation.Risk == domain.RiskSafe {
				ids = append(ids, recommendation.ID)
			}
		}
		planPath, err := WritePlan(request.Path, NewSuggestPlan(ids))
		if err != nil {
			return constants.ExitRuntimeFailure, err
		}
		fmt.Fprintf(request.OutputWriter, "plan file: %s\n", planPath)
		logProgress(logger, "suggest", "plan_exported",
			[]string{fmt.Sprintf("plan=%s", planPath)}, "running")
	}

	logMilestone(logger, "suggest", "complete", []string{
		fmt.Sprintf("recommendations=%d", len(report.Recommendations)),
		fmt.Sprintf("exit_code=%d", constants.ExitSuccess),
	}, "done")
	return constants.ExitSuccess, nil
}
