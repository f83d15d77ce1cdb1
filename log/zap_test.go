package log

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer adapts a bytes.Buffer to zapcore.WriteSyncer for tests that
// want to assert on emitted log lines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) Sync() error { return nil }

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewZapLogLevel(t *testing.T) {
	logger := NewZap(WarnLevel)
	assert.Equal(t, WarnLevel, logger.LogLevel())
}

func TestNewZapWriterLogsAboveLevel(t *testing.T) {
	buf := &syncBuffer{}
	logger := NewZapWriter(InfoLevel, buf)

	logger.Info("hello world")
	assert.Contains(t, buf.String(), "hello world")
}

func TestNewZapWriterSuppressesBelowLevel(t *testing.T) {
	buf := &syncBuffer{}
	logger := NewZapWriter(WarnLevel, buf)

	logger.Debug("should not appear")
	assert.Empty(t, buf.String())
}

func TestZapWithAddsFields(t *testing.T) {
	buf := &syncBuffer{}
	logger := NewZapWriter(InfoLevel, buf)
	derived := logger.With("actor", "/user/a")

	derived.Info("started")
	require.Contains(t, buf.String(), "started")
	assert.Contains(t, buf.String(), "/user/a")
}

func TestZapFormattedVariants(t *testing.T) {
	buf := &syncBuffer{}
	logger := NewZapWriter(InfoLevel, buf)
	logger.Infof("actor %s restarted %d times", "/user/a", 3)
	assert.Contains(t, buf.String(), "actor /user/a restarted 3 times")
}
