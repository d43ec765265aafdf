package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BuiltByShivam/smart-inventory/internal/common"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

type access int

const (
	anyone access = iota
	guestOnly
	member
	adminOnly
)

var errUnknownCommand = errors.New("unknown command")

type command struct {
	name    string
	usage   string
	summary string
	access  access
	run     func(a *App, ctx context.Context, args []string) error
}

// commands lists the REPL commands in help order. It is filled in init
// because help refers back to it.
var commands []command

func init() {
	commands = []command{
		{"help", "", "show available commands", anyone, (*App).help},
		{"login", "", "sign in", guestOnly, (*App).login},
		{"signup", "", "create an account", guestOnly, (*App).signup},
		{"forgot", "", "recover a password with the security question", guestOnly, (*App).forgot},
		{"reset", "[token|link]", "set a new password with a reset token", anyone, (*App).reset},
		{"logout", "[purge]", "sign out; purge also wipes local users and settings (admin)", member, (*App).logout},

		{"dashboard", "", "inventory summary", member, (*App).dashboard},
		{"products", "[query]", "list products, filtered by name or category", member, (*App).products},
		{"sort", "<name|price|quantity>", "sort products; repeat to flip direction", member, (*App).sortBy},
		{"page", "<n|next|prev>", "go to a product page", member, (*App).gotoPage},
		{"show", "<id>", "show one product", member, (*App).show},
		{"add", "", "add a product", member, (*App).add},
		{"edit", "<id>", "edit a product", member, (*App).edit},
		{"delete", "<id>", "delete a product", member, (*App).remove},
		{"search", "<name|category|max|min> <value>", "search on the server", member, (*App).search},
		{"browse", "[page] [sortBy] [asc|desc]", "server-side paged listing", member, (*App).browse},
		{"reload", "", "fetch products again", member, (*App).reload},

		{"lowstock", "[query]", "products at or below the threshold", member, (*App).lowStock},
		{"threshold", "<n>", "set the low-stock threshold", member, (*App).threshold},
		{"restock", "<id> <amount>", "add stock to a product", member, (*App).restock},
		{"export", "<lowstock-csv|lowstock-json|settings|settings-yaml>", "write a report", member, (*App).export},

		{"users", "[page]", "list users", adminOnly, (*App).listUsers},
		{"role", "<user> <admin|user>", "change a user's role", adminOnly, (*App).changeRole},
		{"toggle", "<user>", "enable or disable a user", adminOnly, (*App).toggleUser},
		{"rmuser", "<user>", "remove a user", adminOnly, (*App).removeUser},
		{"remoteusers", "", "users known to the product service", adminOnly, (*App).remoteUsers},

		{"settings", "", "show settings", anyone, (*App).showSettings},
		{"dark", "", "toggle dark mode", anyone, (*App).toggleDark},
		{"perpage", "<n>", "set items per page (5-100)", anyone, (*App).perPage},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// allowed reports whether the current session may run c.
func (a *App) allowed(c command) error {
	switch c.access {
	case guestOnly:
		if a.loggedIn() {
			return errors.New("already logged in; logout first")
		}
	case member:
		if !a.loggedIn() {
			return common.ErrorUnauthorized
		}
	case adminOnly:
		if !a.loggedIn() {
			return common.ErrorUnauthorized
		}
		if !a.isAdmin() {
			return common.ErrorForbidden
		}
	}
	return nil
}

// exec runs one command line.
func (a *App) exec(ctx context.Context, name string, args []string) error {
	c, ok := lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownCommand, name)
	}
	if err := a.allowed(c); err != nil {
		return err
	}
	return c.run(a, logging.WithCommand(ctx, c.name), args)
}

func (a *App) help(context.Context, []string) error {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range commands {
		if a.allowed(c) != nil {
			continue
		}
		use := c.name
		if c.usage != "" {
			use += " " + c.usage
		}
		fmt.Fprintf(&b, "  %-40s %s\n", use, c.summary)
	}
	b.WriteString("  exit | quit")
	a.out.Info("%s", b.String())
	return nil
}

// usageError reports the expected arguments of the named command.
func usageError(name string) error {
	c, _ := lookup(name)
	return fmt.Errorf("usage: %s %s", c.name, c.usage)
}
