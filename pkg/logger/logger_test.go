package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecordUsesPayloadLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.Record(context.Background(), "export.failed", map[string]any{"level": "error", "format": "csv"})
	log.Record(context.Background(), "shell.modal.show", map[string]any{"id": "m1"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "export.failed", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "export", ctx["module"])
	assert.Equal(t, "csv", ctx["format"])
	assert.NotContains(t, ctx, "level")

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "shell", entries[1].ContextMap()["module"])
}

func TestRecordRespectsCoreLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewWithCore(core)
	log.Record(context.Background(), "shell.notification.show", nil)
	log.Record(context.Background(), "panels.realtime.alert", map[string]any{"level": "warn"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestModuleHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)
	log.Info("server", "listening", map[string]any{"addr": ":8080"})
	log.Warn("server", "slow", nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, ":8080", entries[0].ContextMap()["addr"])
	assert.Equal(t, "server", entries[1].ContextMap()["module"])
}

func TestNewWritesConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", JSON: true, Console: &buf})
	require.NoError(t, err)
	log.Info("cli", "hello", nil)
	_ = log.Sync()
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}
