package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/studytrack/internal/config"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "INFO", want: slog.LevelInfo},
		{name: "warn", want: slog.LevelWarn},
		{name: "", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
		{name: "verbose", want: slog.LevelWarn, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := logger.ParseLevel(tt.name)
			assert.Equal(t, tt.want, level)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("json output respects level", func(t *testing.T) {
		buf := &logger.TestLogBuffer{}
		l, err := logger.Setup(config.LogConfig{Level: "info", Format: "json"}, buf)
		require.NoError(t, err)

		l.Debug("hidden")
		l.Info("visible", "course", "ALGEBRA")

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "visible", entries[0]["msg"])
		assert.Equal(t, "ALGEBRA", entries[0]["course"])
		assert.Same(t, l, slog.Default())
	})

	t.Run("text output", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := logger.Setup(config.LogConfig{Level: "debug", Format: "text"}, &buf)
		require.NoError(t, err)

		l.Debug("opening store")
		assert.Contains(t, buf.String(), "msg=\"opening store\"")
	})

	t.Run("invalid level warns and defaults", func(t *testing.T) {
		buf := &logger.TestLogBuffer{}
		l, err := logger.Setup(config.LogConfig{Level: "loud", Format: "json"}, buf)
		require.NoError(t, err)
		assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "loud", entries[0]["configured_level"])
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := logger.Setup(config.LogConfig{Level: "info", Format: "xml"}, nil)
		assert.Error(t, err)
	})
}

func TestContextLogger(t *testing.T) {
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))

	l, buf := logger.NewTestLogger()
	ctx := logger.WithContext(context.Background(), l)
	logger.FromContext(ctx).Info("from context")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "from context", entries[0]["msg"])
}

func TestFromContextOrDefault(t *testing.T) {
	fallback, _ := logger.NewTestLogger()
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))

	scoped, _ := logger.NewTestLogger()
	ctx := logger.WithContext(context.Background(), scoped)
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))
}
