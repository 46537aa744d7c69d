package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openkcm/rs-cli/internal/log"
)

func setupBufferLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	return &buf
}

func TestInjectors(t *testing.T) {
	buf := setupBufferLogger(t)

	ctx := log.InjectInvocation(context.Background(), "delete", "abc-123")
	ctx = log.InjectItem(ctx, "/Reports/Sales")
	ctx = log.InjectIdentity(ctx, `CONTOSO\bob`)

	log.Info(ctx, "Deleting catalog item")

	out := buf.String()
	assert.Contains(t, out, `"invocationId":"abc-123"`)
	assert.Contains(t, out, `"command":"delete"`)
	assert.Contains(t, out, `"itemPath":"/Reports/Sales"`)
	assert.Contains(t, out, `"identity":"CONTOSO\\bob"`)
	assert.Contains(t, out, "Deleting catalog item")
}

func TestLevels(t *testing.T) {
	buf := setupBufferLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "debug message")
	log.Warn(ctx, "warn message", slog.String("key", "value"))
	log.Error(ctx, "error message", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"level":"DEBUG"`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"key":"value"`)
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, "boom")
}

func TestErrorAttr(t *testing.T) {
	attr := log.ErrorAttr(errors.New("remote failure"))
	assert.Equal(t, "remote failure", attr.Value.String())
}
