package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuiltByShivam/smart-inventory/internal/client/settings"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

func TestExporter_DirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	e := NewExporter(NewDirSink(dir), logging.Nop())
	ctx := context.Background()

	loc, err := e.LowStock(ctx, KindLowStockCSV, lowItems)
	require.NoError(t, err)
	assert.Equal(t, LowStockCSVName, filepath.Base(loc))
	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, LowStockCSV(lowItems), b)

	loc, err = e.Settings(ctx, KindSettingsYAML, settings.Snapshot{ItemsPerPage: 8})
	require.NoError(t, err)
	assert.Equal(t, SettingsYAMLName, filepath.Base(loc))

	_, err = e.LowStock(ctx, KindSettings, lowItems)
	require.Error(t, err)
	_, err = e.Settings(ctx, KindLowStockCSV, settings.Snapshot{})
	require.Error(t, err)
}

type failingSink struct{ err error }

func (f failingSink) Write(context.Context, string, []byte) (string, error) { return "", f.err }

func TestExporter_SinkError(t *testing.T) {
	boom := errors.New("read-only")
	e := NewExporter(failingSink{err: boom}, logging.Nop())

	_, err := e.LowStock(context.Background(), KindLowStockJSON, lowItems)
	assert.ErrorIs(t, err, boom)
}
