package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/BuiltByShivam/smart-inventory/internal/client/bootstrap"
	"github.com/BuiltByShivam/smart-inventory/internal/client/export"
	"github.com/BuiltByShivam/smart-inventory/internal/client/services"
	"github.com/BuiltByShivam/smart-inventory/internal/printer"
)

func newExportCmd() *cobra.Command {
	var threshold int
	cmd := &cobra.Command{
		Use:       "export <lowstock-csv|lowstock-json|settings|settings-yaml>",
		Short:     "Write a report without starting the shell",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"lowstock-csv", "lowstock-json", "settings", "settings-yaml"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := export.ParseKind(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				cfg.LowStockThreshold = threshold
			}

			var inv *services.InventoryService
			app := bootstrap.New(cfg, fx.Populate(&inv))
			if err := app.Err(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.Start(ctx); err != nil {
				return err
			}

			loc, err := runExport(ctx, inv, kind)
			if stopErr := app.Stop(context.Background()); stopErr != nil {
				err = errors.Join(err, stopErr)
			}
			if err != nil {
				return err
			}
			printer.New(cmd.OutOrStdout()).Success("Exported to %s", loc)
			return nil
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", 0, "low-stock threshold (default from config)")
	return cmd
}

func runExport(ctx context.Context, inv *services.InventoryService, kind export.Kind) (string, error) {
	if kind == export.KindLowStockCSV || kind == export.KindLowStockJSON {
		if err := inv.Refresh(ctx); err != nil {
			return "", fmt.Errorf("load products: %w", err)
		}
	}
	return inv.Export(ctx, kind)
}
