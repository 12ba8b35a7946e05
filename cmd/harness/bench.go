package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-harness/harness/app"
	"github.com/agent-harness/harness/service"
)

var (
	benchRuns         int
	benchSuite        string
	benchCompare      string
	benchForceCompare bool
	benchNoProgress   bool
)

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench <path>",
		Short: "Measure analysis score stability",
		Long: `Run the analysis repeatedly and record overall scores together with
the execution context. A saved report can serve as a comparison
baseline for later runs on the same machine.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runBench,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVar(&benchRuns, "runs", 1, "Number of analysis runs")
	cmd.Flags().StringVar(&benchSuite, "suite", "", "Suite label recorded in the report")
	cmd.Flags().StringVar(&benchCompare, "compare", "", "Baseline bench report to compare against")
	cmd.Flags().BoolVar(&benchForceCompare, "force-compare", false,
		"Compare even when execution contexts differ")
	cmd.Flags().BoolVar(&benchNoProgress, "no-progress", false, "Disable the progress bar")
	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	progress := service.NewProgressManager(!benchNoProgress)
	defer progress.Close()

	useCase := app.NewBenchUseCase()
	exit, err := useCase.Execute(app.BenchRequest{
		Path:         args[0],
		Runs:         benchRuns,
		Suite:        benchSuite,
		Compare:      benchCompare,
		ForceCompare: benchForceCompare,
		Progress:     progress,
		OutputWriter: os.Stdout,
	})
	return finish(exit, err)
}
