package app

import (
	"bufio"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/analyzer"
	"github.com/agent-harness/harness/internal/config"
	"github.com/agent-harness/harness/internal/constants"
	"github.com/agent-harness/harness/internal/continuity"
	"github.com/agent-harness/harness/internal/guardrails"
	"github.com/agent-harness/harness/internal/scanner"
	"github.com/agent-harness/harness/internal/version"
	"github.com/agent-harness/harness/service"
)

// Change actions recorded in the rollback manifest
const (
	changeActionCreate = "create"
	changeActionModify = "modify"
)

// plannedChange is one file write derived from a recommendation
type plannedChange struct {
	path    string
	action  string
	content string
}

// applyPlanFile is the parsed plan produced by suggest --export-diff
type applyPlanFile struct {
	Version         string   `json:"version"`
	Recommendations []string `json:"recommendations"`
}

// rollbackManifest records pre-apply file state for manual rollback
type rollbackManifest struct {
	Timestamp      string         `json:"timestamp"`
	HarnessVersion string         `json:"harness_version"`
	Files          []rollbackFile `json:"files"`
}

type rollbackFile struct {
	Path   string  `json:"path"`
	Action string  `json:"action"`
	SHA256 *string `json:"sha256"`
}

// ApplyRequest holds the apply command inputs
type ApplyRequest struct {
	Path         string
	PlanFile     string
	PlanAll      bool
	Preview      bool
	AllowDirty   bool
	Yes          bool
	Input        io.Reader
	OutputWriter io.Writer
}

// ApplyUseCase materializes Safe recommendations into file changes,
// guarded by the command policy and the loop guard. All rejections are
// fail-closed: nothing is written once a guardrail trips.
type ApplyUseCase struct{}

// NewApplyUseCase creates a new apply use case
func NewApplyUseCase() *ApplyUseCase {
	return &ApplyUseCase{}
}

// Execute validates, previews, and applies the planned changes
func (uc *ApplyUseCase) Execute(request ApplyRequest) (int, error) {
	if err := EnsureRepo(request.Path); err != nil {
		return constants.ExitRuntimeFailure, err
	}

	cfg, err := config.Load(request.Path)
	if err != nil {
		return constants.ExitRuntimeFailure, err
	}

	logger := continuity.NewLogger(request.Path, cfg)
	defer logger.Close()

	if err := uc.execute(request, cfg); err != nil {
		logMilestone(logger, "apply", "failed", []string{fmt.Sprintf("error=%v", err)}, "blocked")
		return constants.ExitRuntimeFailure, err
	}
	logMilestone(logger, "apply", "complete",
		[]string{fmt.Sprintf("exit_code=%d", constants.ExitSuccess)}, "done")
	return constants.ExitSuccess, nil
}

func (uc *ApplyUseCase) execute(request ApplyRequest, cfg *config.Config) error {
	if !request.AllowDirty {
		if err := checkCleanTree(request.Path, cfg); err != nil {
			return err
		}
	}

	ids, err := resolvePlan(request, cfg)
	if err != nil {
		return err
	}
	changes, err := buildChanges(request.Path, ids)
	if err != nil {
		return err
	}
	if err := guardrails.Validate(nil, len(changes), cfg.CommandPolicy()); err != nil {
		return err
	}

	printScopeSummary(request.OutputWriter, request.Path, changes)
	if len(changes) == 0 {
		fmt.Fprintln(request.OutputWriter, "no-op: no changes required")
		return nil
	}

	if request.Preview {
		fmt.Fprintln(request.OutputWriter, "preview: no files were written")
		return nil
	}

	if !request.Yes {
		confirmed, err := confirmApply(request.Input, request.OutputWriter)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(request.OutputWriter, "apply cancelled")
			return nil
		}
	}

	rollbackPath, err := writeRollbackManifest(request.Path, changes)
	if err != nil {
		return err
	}
	fmt.Fprintf(request.OutputWriter, "rollback manifest: %s\n", rollbackPath)

	for _, change := range changes {
		if err := os.MkdirAll(filepath.Dir(change.path), 0o755); err != nil {
			return domain.NewOutputError("failed to create directory", err)
		}
		if err := os.WriteFile(change.path, []byte(change.content), 0o644); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to write %s", change.path), err)
		}
	}
	fmt.Fprintf(request.OutputWriter, "apply complete: wrote %d file(s)\n", len(changes))
	return nil
}

// checkCleanTree refuses to apply over uncommitted changes. The status
// command itself runs through the guardrails first.
func checkCleanTree(root string, cfg *config.Config) error {
	commandLine := "git status --porcelain"
	if err := guardrails.Validate([]string{commandLine}, 0, cfg.CommandPolicy()); err != nil {
		return err
	}

	command := exec.Command("git", "status", "--porcelain")
	command.Dir = root
	output, err := command.Output()
	if err != nil {
		return domain.NewNotGitRepoError(root)
	}
	if strings.TrimSpace(string(output)) != "" {
		return domain.NewInvalidInputError("working tree is dirty; use --allow-dirty to override", nil)
	}
	return nil
}

// ValidatePlanPath rejects absolute and traversing plan paths
func ValidatePlanPath(path string) error {
	if filepath.IsAbs(path) {
		return domain.NewInvalidInputError(fmt.Sprintf("absolute plan path rejected: %s", path), nil)
	}
	for _, component := range strings.Split(filepath.ToSlash(path), "/") {
		if component == ".." {
			return domain.NewInvalidInputError(fmt.Sprintf("path traversal rejected: %s", path), nil)
		}
	}
	return nil
}

func resolvePlan(request ApplyRequest, cfg *config.Config) ([]string, error) {
	if request.PlanAll {
		model := scanner.Discover(request.Path, cfg, time.Now())
		report := analyzer.Analyze(model, cfg)
		var ids []string
		for _, recommendation := range report.Recommendations {
			if recommendation.Risk == domain.RiskSafe {
				ids = append(ids, recommendation.ID)
			}
		}
		return ids, nil
	}

	if request.PlanFile == "" {
		return nil, domain.NewInvalidInputError("missing --plan-file value", nil)
	}
	if err := ValidatePlanPath(request.PlanFile); err != nil {
		return nil, err
	}
	fullPath := filepath.Join(request.Path, request.PlanFile)
	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(fullPath, err)
	}
	var parsed applyPlanFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, domain.NewInvalidInputError("malformed plan file", err)
	}
	if parsed.Version != version.GetVersion() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf(
			"plan version mismatch: expected %s, found %s", version.GetVersion(), parsed.Version), nil)
	}
	return parsed.Recommendations, nil
}

func buildChanges(root string, ids []string) ([]plannedChange, error) {
	var changes []plannedChange
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		switch id {
		case "rec.context.index":
			changes = append(changes, contextIndexChanges(root)...)
		case "rec.repo.scale":
			changes = append(changes, architectureDocChanges(root)...)
		}
	}
	return changes, nil
}

func contextIndexChanges(root string) []plannedChange {
	var changes []plannedChange
	indexPath := filepath.Join(root, "docs", "context", "INDEX.md")
	if _, err := os.Stat(indexPath); err != nil {
		changes = append(changes, plannedChange{
			path:    indexPath,
			action:  changeActionCreate,
			content: "# Generated by harness\n# Context Index\n\n- AGENTS.md\n",
		})
	}

	agentsPath := filepath.Join(root, "AGENTS.md")
	linkLine := "- Context index: docs/context/INDEX.md"
	existing, err := os.ReadFile(agentsPath)
	if err != nil {
		changes = append(changes, plannedChange{
			path:    agentsPath,
			action:  changeActionCreate,
			content: fmt.Sprintf("# Generated by harness\n# Agents\n\n%s\n", linkLine),
		})
		return changes
	}
	if !strings.Contains(string(existing), "docs/context/INDEX.md") {
		updated := string(existing)
		if !strings.HasSuffix(updated, "\n") {
			updated += "\n"
		}
		updated += linkLine + "\n"
		changes = append(changes, plannedChange{
			path:    agentsPath,
			action:  changeActionModify,
			content: updated,
		})
	}
	return changes
}

func architectureDocChanges(root string) []plannedChange {
	path := filepath.Join(root, "ARCHITECTURE.md")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return []plannedChange{{
		path:    path,
		action:  changeActionCreate,
		content: "# Generated by harness\n# Architecture\n\n## Overview\n\nTBD.\n",
	}}
}

func printScopeSummary(writer io.Writer, root string, changes []plannedChange) {
	createCount := 0
	modifyCount := 0
	for _, change := range changes {
		if change.action == changeActionCreate {
			createCount++
		} else {
			modifyCount++
		}
	}
	fmt.Fprintf(writer, "scope: create=%d modify=%d delete=0\n", createCount, modifyCount)
	for _, change := range changes {
		display := change.path
		if relative, err := filepath.Rel(root, change.path); err == nil {
			display = relative
		}
		fmt.Fprintf(writer, "%s: %s\n", change.action, display)
	}
}

func confirmApply(input io.Reader, writer io.Writer) (bool, error) {
	fmt.Fprint(writer, "Apply these changes? [y/N]: ")
	reader := bufio.NewReader(input)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(line))
	return normalized == "y" || normalized == "yes", nil
}

func writeRollbackManifest(root string, changes []plannedChange) (string, error) {
	now := time.Now().UTC()
	dir := filepath.Join(root, constants.RollbackDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.NewOutputError("failed to create rollback directory", err)
	}

	files := make([]rollbackFile, 0, len(changes))
	for _, change := range changes {
		relative := change.path
		if rel, err := filepath.Rel(root, change.path); err == nil {
			relative = filepath.ToSlash(rel)
		}
		var digest *string
		if bytes, err := os.ReadFile(change.path); err == nil {
			sum := fmt.Sprintf("%x", sha256.Sum256(bytes))
			digest = &sum
		}
		files = append(files, rollbackFile{
			Path:   relative,
			Action: change.action,
			SHA256: digest,
		})
	}

	manifest := rollbackManifest{
		Timestamp:      now.Format(time.RFC3339),
		HarnessVersion: version.GetVersion(),
		Files:          files,
	}
	outPath := filepath.Join(dir, fmt.Sprintf("%s.json", now.Format("20060102T150405Z")))
	file, err := os.Create(outPath)
	if err != nil {
		return "", domain.NewOutputError("failed to write rollback manifest", err)
	}
	defer file.Close()
	if err := service.WriteJSON(file, manifest); err != nil {
		return "", domain.NewOutputError("failed to encode rollback manifest", err)
	}
	return outPath, nil
}
