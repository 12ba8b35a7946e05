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
	"github.com/agent-harness/harness/internal/optimizer"
	"github.com/agent-harness/harness/internal/scanner"
	"github.com/agent-harness/harness/service"
)

// OptimizeRequest holds the optimize command inputs
type OptimizeRequest struct {
	Path         string
	TraceDir     string
	OutputWriter io.Writer
}

// OptimizeUseCase scans execution traces, classifies the revision
// delta, and writes the optimize report
type OptimizeUseCase struct{}

// NewOptimizeUseCase creates a new optimize use case
func NewOptimizeUseCase() *OptimizeUseCase {
	return &OptimizeUseCase{}
}

// Execute writes an optimize report under .harness/optimize
func (uc *OptimizeUseCase) Execute(request OptimizeRequest) (int, error) {
	if err := EnsureRepo(request.Path); err != nil {
		return constants.ExitRuntimeFailure, err
	}

	cfg, err := config.Load(request.Path)
	if err != nil {
		return constants.ExitRuntimeFailure, err
	}

	logger := continuity.NewLogger(request.Path, cfg)
	defer logger.Close()
	logMilestone(logger, "optimize", "start", []string{fmt.Sprintf("path=%s", request.Path)}, "running")

	thresholds := cfg.OptimizationThresholds()
	traceDir := request.TraceDir
	if traceDir == "" {
		traceDir = filepath.Join(request.Path, constants.TraceDir)
	}

	now := time.Now()
	traceData, err := optimizer.ScanTraces(traceDir, thresholds.TraceStalenessDays, now)
	if err != nil {
		return constants.ExitRuntimeFailure, err
	}
	logProgress(logger, "optimize", "trace_scanned", []string{
		fmt.Sprintf("recent=%d", traceData.Stats.Recent),
		fmt.Sprintf("stale=%d", traceData.Stats.Stale),
		fmt.Sprintf("malformed=%d", traceData.Stats.Malformed),
	}, "running")

	delta := optimizer.ComputeDelta(traceData.Recent, thresholds)

	model := scanner.Discover(request.Path, cfg, now)
	report := analyzer.Analyze(model, cfg)

	outDir := filepath.Join(request.Path, constants.OptimizeDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return constants.ExitRuntimeFailure,
			domain.NewOutputError("failed to create optimize directory", err)
	}
	stamp := now.UTC().Format("20060102T150405Z")
	outPath := filepath.Join(outDir, fmt.Sprintf("optimize-%s.md", stamp))
	content := service.RenderOptimizeReport(report, traceData.Stats, thresholds, traceDir, &delta)
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return constants.ExitRuntimeFailure,
			domain.NewOutputError("failed to write optimize report", err)
	}

	fmt.Fprintf(request.OutputWriter, "optimize report: %s\n", outPath)
	logMilestone(logger, "optimize", "complete", []string{
		fmt.Sprintf("status=%s", delta.Status),
		fmt.Sprintf("exit_code=%d", constants.ExitSuccess),
	}, "done")
	return constants.ExitSuccess, nil
}
