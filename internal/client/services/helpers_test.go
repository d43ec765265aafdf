package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BuiltByShivam/smart-inventory/internal/client/client"
	"github.com/BuiltByShivam/smart-inventory/internal/client/client/fakeapi"
	"github.com/BuiltByShivam/smart-inventory/internal/client/export"
	"github.com/BuiltByShivam/smart-inventory/internal/client/ledger"
	"github.com/BuiltByShivam/smart-inventory/internal/client/registry"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/kv"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/tokens"
	"github.com/BuiltByShivam/smart-inventory/internal/client/session"
	"github.com/BuiltByShivam/smart-inventory/internal/client/settings"
	"github.com/BuiltByShivam/smart-inventory/internal/client/store"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

type harness struct {
	repo      *kv.MemoryRepository
	api       *fakeapi.Server
	now       time.Time
	auth      AuthService
	users     *UserService
	inventory *InventoryService
	settings  *settings.Service
	exportDir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo:      kv.NewMemoryRepository(),
		api:       fakeapi.New(t),
		now:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		exportDir: filepath.Join(t.TempDir(), "exports"),
	}
	log := logging.Nop()

	c, err := client.NewRESTClient(h.api.URL, 2*time.Second, log)
	require.NoError(t, err)
	st := store.New(c, log)
	t.Cleanup(func() { _ = st.Close() })

	reg := registry.New(h.repo, log)
	led := ledger.New(tokens.NewKVStore(h.repo), log, ledger.WithClock(func() time.Time { return h.now }))
	sm := session.NewManager(h.repo, "test-secret", time.Hour)
	h.settings = settings.New(h.repo)

	h.auth = NewAuthService(reg, led, sm, "http://localhost:5173/", log)
	h.users = NewUserService(reg, sm, c, log)
	h.inventory = NewInventoryService(st, c, h.settings, export.NewExporter(export.NewDirSink(h.exportDir), log), 10, log)
	return h
}
