package xlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
)

func newMemLogger(t *testing.T, opts ...XLoggerOption) (XLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	opts = append([]XLoggerOption{WithXLoggerWriteSyncer(zapcore.AddSync(buf))}, opts...)
	logger := NewXLogger(opts...)
	require.NotNil(t, logger)
	return logger, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	res := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		res = append(res, m)
	}
	return res
}

func TestXLoggerJSON(t *testing.T) {
	logger, buf := newMemLogger(t, WithXLoggerLevel(LogLevelDebug))
	require.Equal(t, "DEBUG", logger.Level())

	logger.Debug("debug msg", zap.Int("k", 1))
	logger.Info("info msg")
	logger.Warn("warn msg")
	logger.Error(errors.New("boom"), "error msg")
	logger.Logf(zapcore.InfoLevel, "formatted %d", 7)
	require.NoError(t, logger.Sync())

	entries := decodeLines(t, buf)
	require.Len(t, entries, 5)
	require.Equal(t, "debug msg", entries[0]["msg"])
	require.Equal(t, "DEBUG", entries[0]["lvl"])
	require.Equal(t, float64(1), entries[0]["k"])
	require.Equal(t, "WARN", entries[2]["lvl"])
	require.Equal(t, "boom", entries[3]["error"])
	require.Equal(t, "formatted 7", entries[4]["msg"])
	require.Contains(t, entries[0]["callAt"], "zap_test.go")
}

func TestXLoggerIncreaseLevel(t *testing.T) {
	logger, buf := newMemLogger(t, WithXLoggerLevel(LogLevelDebug))
	logger.IncreaseLogLevel(zapcore.WarnLevel)
	require.Equal(t, "WARN", logger.Level())
	// Decreasing is ignored.
	logger.IncreaseLogLevel(zapcore.DebugLevel)
	require.Equal(t, "WARN", logger.Level())

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	require.Equal(t, "kept", entries[0]["msg"])
}

func TestXLoggerNamedAndErrorStack(t *testing.T) {
	logger, buf := newMemLogger(t, WithXLoggerLevel(LogLevelInfo))
	child := logger.Named("avl")
	child.ErrorStack(infra.WrapErrorStackWithMessage(errors.New("boom"), "remove"), "stack msg")
	child.ErrorStack(errors.New("plain"), "plain msg")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	require.Equal(t, "avl", entries[0]["component"])
	require.Equal(t, "remove: boom", entries[0]["error"])
	require.NotEmpty(t, entries[0]["errorStack"])
	require.Equal(t, "plain", entries[1]["error"])
	require.Nil(t, entries[1]["errorStack"])
}

func TestXLoggerErrorStackWrapped(t *testing.T) {
	logger, buf := newMemLogger(t, WithXLoggerLevel(LogLevelInfo))
	inner := infra.WrapErrorStackWithMessage(errors.New("boom"), "remove")
	logger.ErrorStack(fmt.Errorf("avl: %w", inner), "wrapped msg")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	require.Equal(t, "avl: remove: boom", entries[0]["error"])
	stack, ok := entries[0]["errorStack"].([]any)
	require.True(t, ok)
	require.Len(t, stack, len(inner.(infra.ErrorStack).Frames()))
	require.Contains(t, stack[0], "TestXLoggerErrorStackWrapped")
}

func TestXLoggerPlainText(t *testing.T) {
	logger, buf := newMemLogger(t, WithXLoggerEncoder(PlainText), WithXLoggerLevel(LogLevelInfo))
	logger.Info("plain text msg")
	require.Contains(t, buf.String(), "plain text msg")
	require.Contains(t, buf.String(), "INFO")
}

func TestXLoggerOptionErrors(t *testing.T) {
	require.Panics(t, func() {
		NewXLogger(WithXLoggerWriter(_writerMax))
	})
	require.Panics(t, func() {
		NewXLogger(WithXLoggerEncoder(_encMax))
	})
	require.Panics(t, func() {
		NewXLogger(WithXLoggerWriteSyncer(nil))
	})
	require.NotPanics(t, func() {
		NewXLogger(
			WithXLoggerWriter(StdErr),
			WithXLoggerLevelEncoder(nil),
			WithXLoggerTimeEncoder(nil),
		)
	})
}

func TestGetLogLevelOrDefault(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, getLogLevelOrDefault(""))
	require.Equal(t, zapcore.InfoLevel, getLogLevelOrDefault("info"))
	require.Equal(t, zapcore.WarnLevel, getLogLevelOrDefault("WARN"))
	require.Equal(t, zapcore.ErrorLevel, getLogLevelOrDefault("error"))
	require.Equal(t, zapcore.DebugLevel, getLogLevelOrDefault("unknown"))

	t.Setenv(envLogLevel, "ERROR")
	logger := NewXLogger(WithXLoggerWriteSyncer(zapcore.AddSync(&bytes.Buffer{})))
	require.Equal(t, "ERROR", logger.Level())
}
