package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/continuity"
)

// EnsureRepo verifies the target exists and is under git version control
func EnsureRepo(path string) error {
	if _, err := os.Stat(path); err != nil {
		return domain.NewFileNotFoundError(path, nil)
	}
	if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
		return domain.NewNotGitRepoError(path)
	}
	return nil
}

// logMilestone records a continuity milestone. Logging failures are
// reported as warnings and never fail the command.
func logMilestone(logger *continuity.Logger, feature, action string, evidence []string, nextState string) {
	if err := logger.RecordMilestone(feature, action, evidence, nextState); err != nil {
		fmt.Fprintf(os.Stderr, "warning: continuity milestone logging failed: %v\n", err)
	}
}

// logProgress records a continuity progress event, warning on failure
func logProgress(logger *continuity.Logger, feature, action string, evidence []string, nextState string) {
	if err := logger.RecordProgress(feature, action, evidence, nextState); err != nil {
		fmt.Fprintf(os.Stderr, "warning: continuity progress logging failed: %v\n", err)
	}
}
