package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-harness/harness/app"
)

var optimizeTraceDir string

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <path>",
		Short: "Compare recent revisions from execution traces",
		Long: `Scan execution traces, compare the two most recent revisions, and
write an optimize report. With too few comparable traces the report
states insufficient data instead of guessing.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runOptimize,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&optimizeTraceDir, "trace-dir", "",
		"Trace directory (default <path>/.harness/traces)")
	return cmd
}

func runOptimize(cmd *cobra.Command, args []string) error {
	useCase := app.NewOptimizeUseCase()
	exit, err := useCase.Execute(app.OptimizeRequest{
		Path:         args[0],
		TraceDir:     optimizeTraceDir,
		OutputWriter: os.Stdout,
	})
	return finish(exit, err)
}
