package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-harness/harness/app"
	"github.com/agent-harness/harness/domain"
)

var (
	applyPlanFile   string
	applyPlanAll    bool
	applyMode       string
	applyAllowDirty bool
	applyYes        bool
)

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <path>",
		Short: "Apply Safe recommendations as file changes",
		Long: `Materialize Safe-risk recommendations into file changes. Changes are
validated against the command policy and loop guard before anything is
written, and a rollback manifest records prior file state.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runApply,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&applyPlanFile, "plan-file", "",
		"Plan file exported by suggest --export-diff (relative to the repo)")
	cmd.Flags().BoolVar(&applyPlanAll, "plan-all", false,
		"Plan from all current Safe recommendations")
	cmd.Flags().StringVar(&applyMode, "apply-mode", "preview",
		"Mode: preview (print only), apply (write changes)")
	cmd.Flags().BoolVar(&applyAllowDirty, "allow-dirty", false,
		"Allow applying over uncommitted changes")
	cmd.Flags().BoolVarP(&applyYes, "yes", "y", false,
		"Skip the confirmation prompt")
	cmd.MarkFlagsMutuallyExclusive("plan-file", "plan-all")
	cmd.MarkFlagsOneRequired("plan-file", "plan-all")
	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	if applyMode != "preview" && applyMode != "apply" {
		return finish(0, domain.NewInvalidInputError("unsupported apply mode: "+applyMode, nil))
	}

	useCase := app.NewApplyUseCase()
	exit, err := useCase.Execute(app.ApplyRequest{
		Path:         args[0],
		PlanFile:     applyPlanFile,
		PlanAll:      applyPlanAll,
		Preview:      applyMode == "preview",
		AllowDirty:   applyAllowDirty,
		Yes:          applyYes,
		Input:        os.Stdin,
		OutputWriter: os.Stdout,
	})
	return finish(exit, err)
}
