// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/gtask-api/internal/config"
	"github.com/phrazzld/gtask-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefault puts the original default logger back after a test that
// calls Setup.
func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupWritesJSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &buf)
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("task created", slog.String("task_id", "abc"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "task created", entry["msg"])
	assert.Equal(t, "abc", entry["task_id"])
}

func TestSetupSetsDefault(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "debug"}, &buf)
	require.NoError(t, err)

	slog.Debug("from default")
	assert.Contains(t, buf.String(), "from default")
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level      string
		debugShown bool
		infoShown  bool
		warnShown  bool
	}{
		{level: "debug", debugShown: true, infoShown: true, warnShown: true},
		{level: "info", debugShown: false, infoShown: true, warnShown: true},
		{level: "WARN", debugShown: false, infoShown: false, warnShown: true},
		{level: "error", debugShown: false, infoShown: false, warnShown: false},
		{level: "bogus", debugShown: false, infoShown: true, warnShown: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			restoreDefault(t)
			var buf bytes.Buffer
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tt.level}, &buf)
			require.NoError(t, err)

			l.Debug("debug-line")
			l.Info("info-line")
			l.Warn("warn-line")

			out := buf.String()
			assert.Equal(t, tt.debugShown, strings.Contains(out, "debug-line"))
			assert.Equal(t, tt.infoShown, strings.Contains(out, "info-line"))
			assert.Equal(t, tt.warnShown, strings.Contains(out, "warn-line"))
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, ok := logger.ParseLevel(" Debug ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, level)

	level, ok = logger.ParseLevel("nope")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	reqLogger := slog.New(slog.NewJSONHandler(&buf, nil)).With(slog.String("trace_id", "t-1"))
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	t.Run("returns stored logger", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), reqLogger)
		assert.Same(t, reqLogger, logger.FromContextOrDefault(ctx, fallback))
		assert.Same(t, reqLogger, logger.FromContext(ctx))

		logger.FromContext(ctx).Info("hello")
		assert.Contains(t, buf.String(), `"trace_id":"t-1"`)
	})

	t.Run("falls back when absent", func(t *testing.T) {
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
		assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
		assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	})
}
