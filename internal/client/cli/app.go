package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BuiltByShivam/smart-inventory/internal/client/listview"
	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/services"
	"github.com/BuiltByShivam/smart-inventory/internal/client/settings"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
	"github.com/BuiltByShivam/smart-inventory/internal/printer"
)

// App holds the services and the per-session view state of the REPL.
type App struct {
	auth      services.AuthService
	inventory *services.InventoryService
	users     *services.UserService
	settings  *settings.Service
	log       logging.Logger

	reader *bufio.Reader
	out    *printer.Printer

	// products view
	query string
	sort  listview.Sort
	page  int

	// low stock view
	lowQuery string
	lowPage  int
}

func NewApp(
	auth services.AuthService,
	inventory *services.InventoryService,
	users *services.UserService,
	st *settings.Service,
	log logging.Logger,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		auth:      auth,
		inventory: inventory,
		users:     users,
		settings:  st,
		log:       log.With("component", "cli"),
		reader:    bufio.NewReader(in),
		out:       printer.New(out),
		sort:      listview.Sort{Key: listview.SortByName},
		page:      1,
		lowPage:   1,
	}
}

// Run blocks in the REPL until the user exits or input ends. Products are
// fetched on login.
func (a *App) Run(ctx context.Context) {
	a.out.Info("Smart Inventory (type 'help' for commands)")
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) loggedIn() bool {
	_, err := a.auth.Current()
	return err == nil
}

func (a *App) isAdmin() bool {
	c, err := a.auth.Current()
	return err == nil && c.Role == models.RoleAdmin
}

// prompt shows who is signed in.
func (a *App) prompt() string {
	c, err := a.auth.Current()
	if err != nil {
		return "inventory> "
	}
	return fmt.Sprintf("inventory (%s:%s)> ", c.Username, c.Role)
}

func (a *App) w() io.Writer {
	return a.out.Writer()
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.w())
}

func (a *App) askSecret(prompt string) (string, error) {
	return GetPassword(a.reader, prompt, a.w())
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
