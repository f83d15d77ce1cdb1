package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	testCases := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{PanicLevel, "PANIC"},
		{Level(99), "UNKNOWN"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.level.String())
		})
	}
}

func TestDiscardLoggerNeverPanicsOnOrdinaryLevels(t *testing.T) {
	logger := DiscardLogger
	assert.NotPanics(t, func() {
		logger.Debug("x")
		logger.Debugf("%s", "x")
		logger.Info("x")
		logger.Infof("%s", "x")
		logger.Warn("x")
		logger.Warnf("%s", "x")
		logger.Error("x")
		logger.Errorf("%s", "x")
	})
}

func TestDiscardLoggerPanicsOnPanicLevel(t *testing.T) {
	logger := DiscardLogger
	assert.Panics(t, func() { logger.Panic("boom") })
	assert.Panics(t, func() { logger.Panicf("boom %d", 1) })
}

func TestDiscardLoggerLogLevelAndWith(t *testing.T) {
	logger := DiscardLogger
	assert.Equal(t, InfoLevel, logger.LogLevel())
	derived := logger.With("key", "value")
	assert.Equal(t, logger, derived)
}
