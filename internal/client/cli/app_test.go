package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuiltByShivam/smart-inventory/internal/client/client"
	"github.com/BuiltByShivam/smart-inventory/internal/client/client/fakeapi"
	"github.com/BuiltByShivam/smart-inventory/internal/client/export"
	"github.com/BuiltByShivam/smart-inventory/internal/client/ledger"
	"github.com/BuiltByShivam/smart-inventory/internal/client/registry"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/kv"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/tokens"
	"github.com/BuiltByShivam/smart-inventory/internal/client/services"
	"github.com/BuiltByShivam/smart-inventory/internal/client/session"
	"github.com/BuiltByShivam/smart-inventory/internal/client/settings"
	"github.com/BuiltByShivam/smart-inventory/internal/client/store"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

type testEnv struct {
	api       *fakeapi.Server
	repo      *kv.MemoryRepository
	exportDir string
}

// runSession feeds script to a fresh App wired to a fake product service and
// returns everything it printed.
func (e *testEnv) runSession(t *testing.T, script ...string) string {
	t.Helper()
	log := logging.Nop()
	c, err := client.NewRESTClient(e.api.URL, 2*time.Second, log)
	require.NoError(t, err)
	st := store.New(c, log)
	t.Cleanup(func() { _ = st.Close() })

	reg := registry.New(e.repo, log)
	sm := session.NewManager(e.repo, "secret", time.Hour)
	ss := settings.New(e.repo)
	auth := services.NewAuthService(reg, ledger.New(tokens.NewKVStore(e.repo), log), sm, "http://localhost:5173", log)
	inv := services.NewInventoryService(st, c, ss, export.NewExporter(export.NewDirSink(e.exportDir), log), 10, log)
	users := services.NewUserService(reg, sm, c, log)

	var out strings.Builder
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	NewApp(auth, inv, users, ss, log, in, &out).Run(context.Background())
	return out.String()
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	stubTerminal(t, false, nil, nil)
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	e := &testEnv{api: fakeapi.New(t), repo: kv.NewMemoryRepository(), exportDir: filepath.Join(t.TempDir(), "out")}
	e.api.Seed(fakeapi.Product{Name: "Widget", Category: "Tools", SKU: "W-1", Quantity: fakeapi.Int(3), Price: fakeapi.Float(2.5)})
	e.api.Seed(fakeapi.Product{Name: "Anvil", Category: "Tools", SKU: "A-1", Quantity: fakeapi.Int(40), Price: fakeapi.Float(120)})
	return e
}

func TestApp_GuestIsGated(t *testing.T) {
	e := newEnv(t)
	out := e.runSession(t, "products", "users", "bogus", "help")

	assert.Contains(t, out, "✗ please login first")
	assert.Contains(t, out, "unknown command: bogus")
	assert.Contains(t, out, "signup")
	assert.NotContains(t, out, "rmuser")
}

func TestApp_ProductsStartSortedByName(t *testing.T) {
	e := newEnv(t)
	out := e.runSession(t, "login", "admin", "admin", "products", "sort name", "exit")

	list := out[strings.Index(out, "Welcome"):]
	assert.Less(t, strings.Index(list, "Anvil"), strings.Index(list, "Widget"))
	assert.Contains(t, out, "Sorted by name desc")
}

func TestApp_LoginBrowseAndMaintain(t *testing.T) {
	e := newEnv(t)
	out := e.runSession(t,
		"login", "admin", "admin",
		"products tools",
		"sort price",
		"add", "Saw", "", "Tools", "15", "2",
		"restock 3 5",
		"lowstock",
		"edit 1", "", "", "", "", "0",
		"delete 2", "y",
		"show 2",
		"export lowstock-csv",
		"exit",
	)

	assert.Contains(t, out, "✓ Welcome, admin (admin)")
	assert.Contains(t, out, "Sorted by price asc")
	assert.Contains(t, out, "✓ Added Saw (id 3)")
	assert.Contains(t, out, "✓ Saw now has 7 in stock")
	assert.Contains(t, out, "✓ Updated Widget")
	assert.Contains(t, out, "✓ Deleted product 2")
	assert.Contains(t, out, "✗ Product not found with id 2")

	b, err := os.ReadFile(filepath.Join(e.exportDir, export.LowStockCSVName))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"1","Widget","W-1","0","2.5","Tools"`)
	assert.Contains(t, string(b), `"3","Saw","","7","15","Tools"`)
}

func TestApp_ValidationMessages(t *testing.T) {
	e := newEnv(t)
	out := e.runSession(t,
		"login", "user", "user",
		"add", "", "", "Tools", "1", "1",
		"perpage 3",
		"restock 1 0",
		"users",
	)

	assert.Contains(t, out, "✗ Product name is required")
	assert.Contains(t, out, "between 5 and 100")
	assert.Contains(t, out, "✗ Restock amount must be positive")
	assert.Contains(t, out, "✗ admin only")
}

func TestApp_SignupForgotReset(t *testing.T) {
	e := newEnv(t)
	out := e.runSession(t,
		"signup", "erin", "pw", "pw", "2", "Paris",
		"forgot", "erin", "paris",
	)
	assert.Contains(t, out, "✓ Account erin created")
	assert.Contains(t, out, "Security question: What city were you born in?")

	i := strings.Index(out, "http://localhost:5173/reset-password?token=")
	require.GreaterOrEqual(t, i, 0, out)
	link := strings.Fields(out[i:])[0]

	out = e.runSession(t,
		"reset "+link, "new", "new",
		"login", "erin", "pw",
		"login", "erin", "new",
		"users",
	)
	assert.Contains(t, out, "Resetting password for erin.")
	assert.Contains(t, out, "✓ Password updated successfully")
	assert.Contains(t, out, "✗ invalid username or password")
	assert.Contains(t, out, "✓ Welcome, erin (user)")
	assert.Contains(t, out, "✗ admin only")
}

func TestApp_AdminUsersAndSettings(t *testing.T) {
	e := newEnv(t)
	out := e.runSession(t,
		"signup", "erin", "pw", "pw", "", "x",
		"login", "admin", "admin",
		"role erin admin",
		"toggle erin",
		"role admin user",
		"rmuser user", "y",
		"rmuser erin", "n",
		"users",
		"dark",
		"perpage 20",
		"settings",
		"export settings",
	)

	assert.Contains(t, out, "✓ erin is now admin")
	assert.Contains(t, out, "✓ erin disabled")
	assert.Contains(t, out, "✗ at least one enabled admin must remain")
	assert.Contains(t, out, "✗ built-in account cannot be removed")
	assert.NotContains(t, out, "Removed erin")
	assert.Contains(t, out, "Dark mode on")
	assert.Contains(t, out, "Items per page:  20")

	b, err := os.ReadFile(filepath.Join(e.exportDir, export.SettingsJSONName))
	require.NoError(t, err)
	assert.JSONEq(t, `{"itemsPerPage":20,"darkMode":"true"}`, string(b))
}

func TestApp_LogoutPurge(t *testing.T) {
	e := newEnv(t)
	out := e.runSession(t,
		"signup", "erin", "pw", "pw", "", "x",
		"login", "erin", "pw",
		"logout purge", "y",
		"logout",
		"login", "admin", "admin",
		"perpage 20",
		"logout now",
		"logout purge", "n",
		"logout purge", "y",
		"login", "erin", "pw",
		"login", "admin", "admin",
		"settings",
	)

	assert.Contains(t, out, "✗ admin only")
	assert.Contains(t, out, "✗ usage: logout [purge]")
	assert.Equal(t, 1, strings.Count(out, "Logged out; local data cleared"))
	assert.Contains(t, out, "Items per page:  6")

	left, err := e.repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, left, 1)
	assert.Contains(t, left, common.KeyRole)
}
