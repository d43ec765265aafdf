package cli

import (
	"context"
)

func (a *App) showSettings(ctx context.Context, _ []string) error {
	st, err := a.settings.Load(ctx)
	if err != nil {
		return err
	}
	a.out.Info("Dark mode:       %s", onOff(st.DarkMode))
	a.out.Info("Items per page:  %d", st.ItemsPerPage)
	a.out.Info("Low stock at:    %d", a.inventory.Threshold())
	return nil
}

func (a *App) toggleDark(ctx context.Context, _ []string) error {
	on, err := a.settings.ToggleDarkMode(ctx)
	if err != nil {
		return err
	}
	a.out.Success("Dark mode %s", onOff(on))
	return nil
}

func (a *App) perPage(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("perpage")
	}
	n, err := parseInt(args[0])
	if err != nil {
		return err
	}
	if err := a.settings.SetItemsPerPage(ctx, n); err != nil {
		return err
	}
	a.page, a.lowPage = 1, 1
	a.out.Success("Showing %d items per page", n)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
