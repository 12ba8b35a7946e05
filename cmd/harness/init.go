package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-harness/harness/app"
	"github.com/agent-harness/harness/internal/config"
)

var (
	initProfile     string
	initDryRun      bool
	initNoOverwrite bool
	initInteractive bool
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Scaffold harness configuration and context files",
		Long: `Create harness.toml, AGENTS.md, and docs/context/INDEX.md in the
target directory. Existing files are overwritten unless --no-overwrite
is set.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runInit,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&initProfile, "profile", "general",
		"Project profile: general, agent")
	cmd.Flags().BoolVar(&initDryRun, "dry-run", false,
		"Print the init plan without writing files")
	cmd.Flags().BoolVar(&initNoOverwrite, "no-overwrite", false,
		"Keep existing files untouched")
	cmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false,
		"Select the profile interactively")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	useCase := app.NewInitUseCase()
	exit, err := useCase.Execute(app.InitRequest{
		Path:         args[0],
		Profile:      config.Profile(initProfile),
		DryRun:       initDryRun,
		NoOverwrite:  initNoOverwrite,
		Interactive:  initInteractive,
		OutputWriter: os.Stdout,
	})
	return finish(exit, err)
}
