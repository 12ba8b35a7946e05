package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
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

// BenchContext captures the environment a bench run executed in.
// Comparisons across incompatible contexts are refused.
type BenchContext struct {
	OS             string `json:"os"`
	Toolchain      string `json:"toolchain"`
	RepoRef        string `json:"repo_ref"`
	RepoDirty      bool   `json:"repo_dirty"`
	HarnessVersion string `json:"harness_version"`
	Suite          string `json:"suite"`
	Timestamp      string `json:"timestamp"`
}

// BenchRunResult is one analysis run's score
type BenchRunResult struct {
	Run          int     `json:"run"`
	OverallScore float64 `json:"overall_score"`
}

// BenchReport is the persisted bench output
type BenchReport struct {
	BenchContext BenchContext     `json:"bench_context"`
	Runs         []BenchRunResult `json:"runs"`
}

// BenchRequest holds the bench command inputs
type BenchRequest struct {
	Path         string
	Runs         int
	Suite        string
	Compare      string
	ForceCompare bool
	Progress     domain.ProgressManager
	OutputWriter io.Writer
}

// BenchUseCase runs repeated analyses and records score stability
type BenchUseCase struct{}

// NewBenchUseCase creates a new bench use case
func NewBenchUseCase() *BenchUseCase {
	return &BenchUseCase{}
}

// Execute runs the bench suite and writes the report under .harness/bench
func (uc *BenchUseCase) Execute(request BenchRequest) (int, error) {
	if err := EnsureRepo(request.Path); err != nil {
		return constants.ExitRuntimeFailure, err
	}

	cfg, err := config.Load(request.Path)
	if err != nil {
		return constants.ExitRuntimeFailure, err
	}

	logger := continuity.NewLogger(request.Path, cfg)
	defer logger.Close()
	logMilestone(logger, "bench", "start", []string{fmt.Sprintf("path=%s", request.Path)}, "running")

	runs := request.Runs
	if runs < 1 {
		runs = 1
	}

	model := scanner.Discover(request.Path, cfg, time.Now())
	task := request.Progress.StartTask("bench runs", runs)
	results := make([]BenchRunResult, 0, runs)
	for index := 0; index < runs; index++ {
		report := analyzer.Analyze(model, cfg)
		results = append(results, BenchRunResult{
			Run:          index + 1,
			OverallScore: report.OverallScore,
		})
		task.Increment(1)
	}
	task.Complete()
	logProgress(logger, "bench", "runs_completed",
		[]string{fmt.Sprintf("runs=%d", len(results))}, "running")

	suite := request.Suite
	if suite == "" {
		suite = "default"
	}
	report := BenchReport{
		BenchContext: BenchContext{
			OS:             fmt.Sprintf("%s-%s", runtime.GOOS, runtime.GOARCH),
			Toolchain:      detectToolchain(),
			RepoRef:        detectRepoRef(request.Path),
			RepoDirty:      detectRepoDirty(request.Path),
			HarnessVersion: version.GetVersion(),
			Suite:          suite,
			Timestamp:      time.Now().UTC().Format(time.RFC3339),
		},
		Runs: results,
	}

	if request.Compare != "" {
		baseline, err := loadBenchReport(request.Compare)
		if err != nil {
			return constants.ExitRuntimeFailure, err
		}
		if err := validateCompareCompatibility(report.BenchContext, baseline.BenchContext, request.ForceCompare); err != nil {
			return constants.ExitRuntimeFailure, err
		}
		baselineAvg := averageOverallScore(baseline.Runs)
		currentAvg := averageOverallScore(report.Runs)
		fmt.Fprintf(request.OutputWriter, "bench compare: baseline=%.3f, current=%.3f, delta=%.3f\n",
			baselineAvg, currentAvg, currentAvg-baselineAvg)
	}

	reportPath, err := writeBenchReport(request.Path, report)
	if err != nil {
		return constants.ExitRuntimeFailure, err
	}
	fmt.Fprintf(request.OutputWriter, "bench report: %s\n", reportPath)
	logMilestone(logger, "bench", "complete", []string{
		fmt.Sprintf("report=%s", reportPath),
		fmt.Sprintf("exit_code=%d", constants.ExitSuccess),
	}, "done")
	return constants.ExitSuccess, nil
}

func detectToolchain() string {
	output, err := exec.Command("go", "version").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

func detectRepoRef(root string) string {
	command := exec.Command("git", "rev-parse", "HEAD")
	command.Dir = root
	output, err := command.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

// detectRepoDirty reports uncommitted changes; failures count as dirty
// so incomparable runs are never silently treated as clean
func detectRepoDirty(root string) bool {
	command := exec.Command("git", "status", "--porcelain")
	command.Dir = root
	output, err := command.Output()
	if err != nil {
		return true
	}
	return strings.TrimSpace(string(output)) != ""
}

func writeBenchReport(root string, report BenchReport) (string, error) {
	dir := filepath.Join(root, constants.BenchDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.NewOutputError("failed to create bench directory", err)
	}
	stamp := time.Now().UTC().Format("20060102T150405Z")
	outPath := filepath.Join(dir, fmt.Sprintf("bench-%s.json", stamp))
	file, err := os.Create(outPath)
	if err != nil {
		return "", domain.NewOutputError("failed to write bench report", err)
	}
	defer file.Close()
	if err := service.WriteJSON(file, report); err != nil {
		return "", domain.NewOutputError("failed to encode bench report", err)
	}
	return outPath, nil
}

func loadBenchReport(path string) (*BenchReport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	var report BenchReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, domain.NewInvalidInputError("malformed bench report", err)
	}
	return &report, nil
}

func averageOverallScore(runs []BenchRunResult) float64 {
	if len(runs) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, run := range runs {
		sum += run.OverallScore
	}
	return sum / float64(len(runs))
}

func validateCompareCompatibility(current, baseline BenchContext, force bool) error {
	var mismatches []string
	if current.OS != baseline.OS {
		mismatches = append(mismatches,
			fmt.Sprintf("os (baseline=%s, current=%s)", baseline.OS, current.OS))
	}
	if current.Toolchain != baseline.Toolchain {
		mismatches = append(mismatches,
			fmt.Sprintf("toolchain (baseline=%s, current=%s)", baseline.Toolchain, current.Toolchain))
	}
	if current.RepoDirty != baseline.RepoDirty {
		mismatches = append(mismatches,
			fmt.Sprintf("repo_dirty (baseline=%t, current=%t)", baseline.RepoDirty, current.RepoDirty))
	}
	if len(mismatches) > 0 && !force {
		return domain.NewInvalidInputError(fmt.Sprintf(
			"bench compare blocked due to incompatible context: %s. Re-run with --force-compare to override.",
			strings.Join(mismatches, ", ")), nil)
	}
	return nil
}
