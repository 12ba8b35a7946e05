package app

import (
	"fmt"
	"io"
	"time"

	"github.com/agent-harness/harness/internal/analyzer"
	"github.com/agent-harness/harness/internal/config"
	"github.com/agent-harness/harness/internal/constants"
	"github.com/agent-harness/harness/internal/continuity"
	"github.com/agent-harness/harness/internal/scanner"
)

// LintRequest holds the lint command inputs
type LintRequest struct {
	Path         string
	OutputWriter io.Writer
}

// LintUseCase evaluates findings only, without scores or recommendations
type LintUseCase struct{}

// NewLintUseCase creates a new lint use case
func NewLintUseCase() *LintUseCase {
	return &LintUseCase{}
}

// Execute prints findings and exits blocking/warning accordingly
func (uc *LintUseCase) Execute(request LintRequest) (int, error) {
	if err := EnsureRepo(request.Path); err != nil {
		return constants.ExitRuntimeFailure, err
	}

	cfg, err := config.Load(request.Path)
	if err != nil {
		return constants.ExitRuntimeFailure, err
	}

	logger := continuity.NewLogger(request.Path, cfg)
	defer logger.Close()
	logMilestone(logger, "lint", "start", []string{fmt.Sprintf("path=%s", request.Path)}, "running")

	model := scanner.Discover(request.Path, cfg, time.Now())
	findings := analyzer.LintFindings(model, cfg)

	if len(findings) == 0 {
		fmt.Fprintln(request.OutputWriter, "lint: no findings")
		logMilestone(logger, "lint", "complete",
			[]string{fmt.Sprintf("exit_code=%d", constants.ExitSuccess)}, "done")
		return constants.ExitSuccess, nil
	}

	blocking := false
	for _, finding := range findings {
		level := "WARN"
		if finding.Blocking {
			level = "BLOCKING"
			blocking = true
		}
		fmt.Fprintf(request.OutputWriter, "[%s] %s: %s\n", level, finding.ID, finding.Title)
		fmt.Fprintf(request.OutputWriter, "  %s\n", finding.Body)
	}

	exit := constants.ExitWarnings
	if blocking {
		exit = constants.ExitBlocking
	}
	logProgress(logger, "lint", "findings_emitted",
		[]string{fmt.Sprintf("findings=%d", len(findings))}, "running")
	logMilestone(logger, "lint", "complete", []string{fmt.Sprintf("exit_code=%d", exit)}, "done")
	return exit, nil
}
