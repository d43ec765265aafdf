package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/BuiltByShivam/smart-inventory/internal/client/bootstrap"
	"github.com/BuiltByShivam/smart-inventory/internal/client/cli"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive client (default)",
		Args:  cobra.NoArgs,
		RunE:  runShell,
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var app *cli.App
	fxApp := bootstrap.New(cfg, bootstrap.ShellModule, fx.Populate(&app))
	if err := fxApp.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := fxApp.Start(ctx); err != nil {
		return err
	}
	app.Run(ctx)
	return fxApp.Stop(context.Background())
}
