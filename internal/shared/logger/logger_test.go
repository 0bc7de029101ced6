package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("creates with default config", func(t *testing.T) {
		l := New(nil)
		assert.NotNil(t, l)
		assert.NotNil(t, l.Logger)
	})

	t.Run("writes json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := New(&Config{Level: "info", Output: buf})

		l.Info("webhook received", "hook_id", "hook_1")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "webhook received", entry["msg"])
		assert.Equal(t, "hook_1", entry["hook_id"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := New(&Config{Level: "info", Format: "text", Output: buf})

		l.Info("order synced")
		assert.Contains(t, buf.String(), "order synced")
		assert.False(t, strings.HasPrefix(buf.String(), "{"))
	})

	t.Run("filters below level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := New(&Config{Level: "warn", Output: buf})

		l.Info("hidden")
		assert.Empty(t, buf.String())
		l.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(&Config{Level: "info", Output: buf}).With("order_code", "100000001")

	l.Info("charge paid")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "100000001", entry["order_code"])
}

func TestLogger_Context(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		l := New(&Config{Output: &bytes.Buffer{}})
		ctx := ContextWithLogger(context.Background(), l)
		assert.Same(t, l, FromContext(ctx))
	})

	t.Run("default when missing", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"INFO", "INFO"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input).String())
		})
	}
}

func TestErr(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(&Config{Level: "info", Output: buf})

	l.Error("gateway failed", Err(assert.AnError))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry["error"], "assert.AnError")
}

func TestNewZapLogger(t *testing.T) {
	l, err := NewZapLogger(&Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = NewZapLogger(nil)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestOrderLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ol := NewOrderLogger(zap.New(core))

	ol.OrderInfo("100000001", "Order status changed", zap.String("status", "processing"))
	ol.OrderError("100000001", "Order creation failed", errors.New("boom"))

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "Order status changed", first.Message)
	assert.Equal(t, "100000001", first.ContextMap()["order_code"])
	assert.Equal(t, "processing", first.ContextMap()["status"])
	assert.Equal(t, "boom", logs.All()[1].ContextMap()["error"])

	assert.NotPanics(t, func() { NewOrderLogger(nil).OrderInfo("1", "noop") })
}
