package cli

import (
	"context"
	"strconv"

	"github.com/BuiltByShivam/smart-inventory/internal/client/export"
	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

func (a *App) lowStock(ctx context.Context, args []string) error {
	q := joinArgs(args)
	if q != a.lowQuery {
		a.lowQuery, a.lowPage = q, 1
	}
	p, err := a.inventory.LowStock(ctx, a.lowQuery, a.lowPage)
	if err != nil {
		return err
	}
	a.lowPage = p.Number
	a.out.Info("Threshold: %d", a.inventory.Threshold())
	if p.TotalItems == 0 {
		a.out.Success("No low stock items.")
		return nil
	}
	if err := renderProducts(a.w(), p.Items); err != nil {
		return err
	}
	a.out.Info("%s", pageFooter(p))
	return nil
}

func (a *App) threshold(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("threshold")
	}
	n, err := parseInt(args[0])
	if err != nil {
		return err
	}
	if err := a.inventory.SetThreshold(n); err != nil {
		return err
	}
	a.lowPage = 1
	a.out.Success("Low-stock threshold set to %d", n)
	return nil
}

func (a *App) restock(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("restock")
	}
	amount, err := strconv.Atoi(args[1])
	if err != nil {
		return usageError("restock")
	}
	p, err := a.inventory.Restock(ctx, models.ProductID(args[0]), amount)
	if err != nil {
		return err
	}
	a.out.Success("%s now has %d in stock", p.Name, p.Quantity)
	return nil
}

func (a *App) export(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("export")
	}
	kind, err := export.ParseKind(args[0])
	if err != nil {
		return err
	}
	loc, err := a.inventory.Export(ctx, kind)
	if err != nil {
		return err
	}
	a.out.Success("Exported to %s", loc)
	return nil
}
