package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

const usersPerPage = 10

func (a *App) listUsers(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usageError("users")
		}
		page = n
	}
	p, err := a.users.List(ctx, page, usersPerPage)
	if err != nil {
		return err
	}
	if err := renderUsers(a.w(), p.Items); err != nil {
		return err
	}
	a.out.Info("%s", pageFooter(p))
	return nil
}

func (a *App) changeRole(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("role")
	}
	if err := a.users.ChangeRole(ctx, args[0], args[1]); err != nil {
		return err
	}
	a.out.Success("%s is now %s", args[0], args[1])
	return nil
}

func (a *App) toggleUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("toggle")
	}
	enabled, err := a.users.Toggle(ctx, args[0])
	if err != nil {
		return err
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	a.out.Success("%s %s", args[0], state)
	return nil
}

func (a *App) removeUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("rmuser")
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Remove account %q? This cannot be undone.", args[0]), a.w())
	if err != nil || !ok {
		return err
	}
	if err := a.users.Remove(ctx, args[0]); err != nil {
		return err
	}
	a.out.Success("Removed %s", args[0])
	return nil
}

func (a *App) remoteUsers(ctx context.Context, _ []string) error {
	list, err := a.users.Remote(ctx)
	if err != nil {
		return err
	}
	users := make([]models.User, len(list))
	for i, u := range list {
		users[i] = models.User{Username: u.Username, Role: u.Role, Enabled: u.Enabled == nil || *u.Enabled}
	}
	return renderUsers(a.w(), users)
}
