package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-harness/harness/app"
	"github.com/agent-harness/harness/service"
)

var (
	analyzeFormat    string
	analyzeMinImpact string
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Score a repository's agent legibility",
		Long: `Scan a repository and produce the harness report: category scores,
findings, and ranked recommendations.

Exit codes:
  0 - No findings
  1 - Warnings (including missing harness.toml)
  2 - Blocking findings
  3 - Runtime failure`,
		Args:          cobra.ExactArgs(1),
		RunE:          runAnalyze,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&analyzeFormat, "format", "f", "md",
		"Output format: text, json, yaml, md, sarif")
	cmd.Flags().StringVar(&analyzeMinImpact, "min-impact", "all",
		"Filter recommendations: all, safe (Safe-risk only)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := service.ParseOutputFormat(analyzeFormat)
	if err != nil {
		return finish(0, err)
	}

	useCase := app.NewAnalyzeUseCase(service.NewOutputFormatter())
	exit, err := useCase.Execute(app.AnalyzeRequest{
		Path:          args[0],
		Format:        format,
		MinImpactSafe: analyzeMinImpact == "safe",
		OutputWriter:  os.Stdout,
	})
	return finish(exit, err)
}
