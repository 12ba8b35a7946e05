package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/config"
	"github.com/agent-harness/harness/internal/constants"
	"github.com/agent-harness/harness/internal/continuity"
)

// InitRequest holds the init command inputs
type InitRequest struct {
	Path         string
	Profile      config.Profile
	DryRun       bool
	NoOverwrite  bool
	Interactive  bool
	OutputWriter io.Writer
}

// InitUseCase scaffolds the harness configuration and context files
type InitUseCase struct{}

// NewInitUseCase creates a new init use case
func NewInitUseCase() *InitUseCase {
	return &InitUseCase{}
}

type scaffoldFile struct {
	path    string
	content string
}

// Execute writes the scaffold files for the selected profile
func (uc *InitUseCase) Execute(request InitRequest) (int, error) {
	profile := request.Profile
	if request.Interactive {
		selected, err := promptProfile()
		if err != nil {
			return constants.ExitRuntimeFailure, err
		}
		profile = selected
	}
	if profile != config.ProfileGeneral && profile != config.ProfileAgent {
		return constants.ExitRuntimeFailure,
			domain.NewInvalidInputError(fmt.Sprintf("unsupported profile: %s", profile), nil)
	}

	if _, err := os.Stat(request.Path); err != nil {
		if request.DryRun {
			fmt.Fprintf(request.OutputWriter, "init target would be created: %s\n", request.Path)
		} else if err := os.MkdirAll(request.Path, 0o755); err != nil {
			return constants.ExitRuntimeFailure,
				domain.NewOutputError("failed to create init target", err)
		}
	}

	logger := continuity.NewLogger(request.Path, nil)
	defer logger.Close()
	logMilestone(logger, "init", "start", []string{fmt.Sprintf("path=%s", request.Path)}, "running")

	files := []scaffoldFile{
		{filepath.Join(request.Path, constants.ConfigFileName), config.HarnessTOMLTemplate(profile)},
		{filepath.Join(request.Path, "AGENTS.md"), config.AgentsMDTemplate()},
		{filepath.Join(request.Path, "docs", "context", "INDEX.md"), config.ContextIndexTemplate()},
	}

	fmt.Fprintln(request.OutputWriter, "init plan:")
	for _, file := range files {
		fmt.Fprintf(request.OutputWriter, "- %s\n", file.path)
	}

	if request.DryRun {
		fmt.Fprintln(request.OutputWriter, "dry-run: no files were written")
		logMilestone(logger, "init", "complete", []string{
			"dry_run=true",
			fmt.Sprintf("exit_code=%d", constants.ExitSuccess),
		}, "done")
		return constants.ExitSuccess, nil
	}

	for _, file := range files {
		if _, err := os.Stat(file.path); err == nil && request.NoOverwrite {
			fmt.Fprintf(request.OutputWriter, "skip existing: %s\n", file.path)
			logProgress(logger, "init", "skip_existing",
				[]string{fmt.Sprintf("file=%s", file.path)}, "running")
			continue
		}
		if err := os.MkdirAll(filepath.Dir(file.path), 0o755); err != nil {
			return constants.ExitRuntimeFailure, domain.NewOutputError("failed to create directory", err)
		}
		if err := os.WriteFile(file.path, []byte(file.content), 0o644); err != nil {
			return constants.ExitRuntimeFailure,
				domain.NewOutputError(fmt.Sprintf("failed to write %s", file.path), err)
		}
		logProgress(logger, "init", "file_written",
			[]string{fmt.Sprintf("file=%s", file.path)}, "running")
	}

	fmt.Fprintln(request.OutputWriter, "init complete")
	logMilestone(logger, "init", "complete",
		[]string{fmt.Sprintf("exit_code=%d", constants.ExitSuccess)}, "done")
	return constants.ExitSuccess, nil
}

func promptProfile() (config.Profile, error) {
	prompt := promptui.Select{
		Label: "Select project profile",
		Items: []string{string(config.ProfileGeneral), string(config.ProfileAgent)},
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return "", domain.NewInvalidInputError("profile selection cancelled", err)
	}
	return config.Profile(selected), nil
}
