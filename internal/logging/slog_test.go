package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("component", "store").Info(context.Background(), "loaded", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "count=3")
}

func TestSlogLogger_CommandFromContext(t *testing.T) {
	log, buf := newTestLogger(t)

	ctx := WithCommand(context.Background(), "restock")
	log.Info(ctx, "updated", "id", "7")
	log.Info(context.Background(), "plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "command=restock")
	assert.NotContains(t, lines[1], "command=")
}

func TestCommandFrom(t *testing.T) {
	_, ok := CommandFrom(context.Background())
	assert.False(t, ok)

	_, ok = CommandFrom(WithCommand(context.Background(), ""))
	assert.False(t, ok)

	name, ok := CommandFrom(WithCommand(context.Background(), "login"))
	assert.True(t, ok)
	assert.Equal(t, "login", name)
}
