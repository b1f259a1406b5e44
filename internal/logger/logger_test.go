package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLogger(t *testing.T) {
	l := Noop()
	require.NotNil(t, l)

	// None of these should panic or produce output.
	l.Debug("debug %d", 1)
	l.Info("info %s", "msg")
	l.Warn("warn")
	l.Error("error %v", assert.AnError)
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug message %d", 42)
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug message 42"}, l.Messages[0])
	assert.Equal(t, "info", l.Messages[1].Level)
	assert.Equal(t, "warn", l.Messages[2].Level)
	assert.Equal(t, "error", l.Messages[3].Level)
}

func TestBufferLoggerHasLevel(t *testing.T) {
	l := NewBufferLogger()

	assert.False(t, l.HasLevel("error"))

	l.Error("something broke")
	assert.True(t, l.HasLevel("error"))
	assert.False(t, l.HasLevel("warn"))
}

func TestBufferLoggerClear(t *testing.T) {
	l := NewBufferLogger()
	l.Info("one")
	l.Info("two")
	require.Len(t, l.Messages, 2)

	l.Clear()
	assert.Empty(t, l.Messages)
	assert.False(t, l.HasLevel("info"))
}

func TestEnvLoggerDebugGated(t *testing.T) {
	// Debug output is gated on QW_DEBUG; with it unset the call must be a no-op.
	t.Setenv("QW_DEBUG", "")
	l := NewEnvLogger("[test]")
	l.Debug("should not appear")

	t.Setenv("QW_DEBUG", "1")
	l.Debug("appears in logs")
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)

	Default().Info("routed to buffer")
	assert.True(t, buf.HasLevel("info"))
}
