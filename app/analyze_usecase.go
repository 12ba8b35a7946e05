package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/analyzer"
	"github.com/agent-harness/harness/internal/config"
	"github.com/agent-harness/harness/internal/constants"
	"github.com/agent-harness/harness/internal/continuity"
	"github.com/agent-harness/harness/internal/scanner"
)

// AnalyzeRequest holds the analyze command inputs
type AnalyzeRequest struct {
	Path          string
	Format        domain.OutputFormat
	MinImpactSafe bool
	OutputWriter  io.Writer
}

// AnalyzeUseCase runs the full analysis pipeline and renders the report
type AnalyzeUseCase struct {
	formatter domain.OutputFormatter
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(formatter domain.OutputFormatter) *AnalyzeUseCase {
	return &AnalyzeUseCase{formatter: formatter}
}

// Execute scans the repository, evaluates it, and writes the rendered
// report. The returned exit code follows the blocking/warnings contract.
func (uc *AnalyzeUseCase) Execute(request AnalyzeRequest) (int, error) {
	if err := EnsureRepo(request.Path); err != nil {
		return constants.ExitRuntimeFailure, err
	}

	cfg, err := config.Load(request.Path)
	if err != nil {
		return constants.ExitRuntimeFailure, err
	}

	logger := continuity.NewLogger(request.Path, cfg)
	defer logger.Close()
	logMilestone(logger, "analyze", "start", []string{fmt.Sprintf("path=%s", request.Path)}, "running")

	model := scanner.Discover(request.Path, cfg, time.Now())
	report := analyzer.Analyze(model, cfg)

	if request.MinImpactSafe {
		filtered := report.Recommendations[:0]
		for _, recommendation := range report.Recommendations {
			if recommendation.Risk == domain.RiskSafe {
				filtered = append(filtered, recommendation)
			}
		}
		report.Recommendations = filtered
	}

	if err := uc.formatter.Write(report, request.Format, request.OutputWriter); err != nil {
		return constants.ExitRuntimeFailure, err
	}
	logProgress(logger, "analyze", "report_rendered", []string{
		fmt.Sprintf("findings=%d", len(report.Findings)),
		fmt.Sprintf("recommendations=%d", len(report.Recommendations)),
	}, "running")

	missingConfig := cfg == nil
	if missingConfig {
		fmt.Fprintf(os.Stderr, "warning: no %s found in %s\n", constants.ConfigFileName, request.Path)
	}

	exit := constants.ExitSuccess
	switch {
	case report.HasBlockingFindings():
		exit = constants.ExitBlocking
	case missingConfig || len(report.Findings) > 0:
		exit = constants.ExitWarnings
	}

	logMilestone(logger, "analyze", "complete", []string{fmt.Sprintf("exit_code=%d", exit)}, "done")
	return exit, nil
}
