package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		enable zapcore.Level
		quiet  zapcore.Level
	}{
		{"debug level", "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn level", "WARN", zapcore.WarnLevel, zapcore.InfoLevel},
		{"default info", "", zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			assert.True(t, logger.Enabled(tt.enable))
			assert.False(t, logger.Enabled(tt.quiet))
		})
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core)).With("session_id", "abc")

	logger.Info("chat reply", "source", "fallback")
	logger.Debug("dropped")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "chat reply", entries[0].Message)
		assert.Equal(t, "abc", ctx["session_id"])
		assert.Equal(t, "fallback", ctx["source"])
	}
}

func TestNopDoesNotPanic(t *testing.T) {
	logger := Nop()
	logger.Warn("ignored", "key", "value")
	logger.Error("ignored")
}
