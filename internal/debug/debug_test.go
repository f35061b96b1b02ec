package debug

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(false) })

	Init(false)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))

	Init(true)
	assert.True(t, Logger().Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, With("provider", "sqlite").Enabled(context.Background(), slog.LevelInfo))

	Info("info message", "key", "value")
	Error("error message", "key", "value")
	Debug("debug message")
	Warn("warn message")
	require.NotPanics(t, func() { _ = Sync() })
}
