package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-harness/harness/app"
)

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <path>",
		Short: "List findings without scores or recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useCase := app.NewLintUseCase()
			exit, err := useCase.Execute(app.LintRequest{
				Path:         args[0],
				OutputWriter: os.Stdout,
			})
			return finish(exit, err)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}
