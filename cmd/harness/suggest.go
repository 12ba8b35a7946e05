package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-harness/harness/app"
)

var suggestExportDiff bool

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <path>",
		Short: "List ranked recommendations",
		Long: `List the repository's ranked recommendations. With --export-diff,
write a plan file of the Safe-risk recommendation ids for later apply.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runSuggest,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&suggestExportDiff, "export-diff", false,
		"Export a plan file of Safe-risk recommendations")
	return cmd
}

func runSuggest(cmd *cobra.Command, args []string) error {
	useCase := app.NewSuggestUseCase()
	exit, err := useCase.Execute(app.SuggestRequest{
		Path:         args[0],
		ExportDiff:   suggestExportDiff,
		OutputWriter: os.Stdout,
	})
	return finish(exit, err)
}
