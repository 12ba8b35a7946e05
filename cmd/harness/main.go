package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-harness/harness/internal/constants"
	"github.com/agent-harness/harness/internal/version"
)

// ExitError carries a non-zero exit code out of a command. Codes 1 and
// 2 are verdicts with output already printed; only code 3 carries a
// message worth showing.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	rootCmd := &cobra.Command{
		Use:   constants.ToolName,
		Short: "harness - AI agent harness analysis and optimization CLI",
		Long: `harness evaluates how legible a repository is to AI coding agents.
It scores context, tooling, continuity, verification, and repository
quality, and suggests safe improvements.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(lintCmd())
	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(benchCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(constants.ExitRuntimeFailure)
	}
}

// finish converts a use-case result into cobra's error channel
func finish(exit int, err error) error {
	if err != nil {
		return &ExitError{Code: constants.ExitRuntimeFailure, Message: err.Error()}
	}
	if exit != constants.ExitSuccess {
		return &ExitError{Code: exit}
	}
	return nil
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("%s version %s\n", constants.ToolName, version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
