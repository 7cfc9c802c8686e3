package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerWithNilConfigUsesDefaults(t *testing.T) {
	logger := NewLogger(nil)
	assert.NotNil(t, logger)
}

func TestLoggerEmitsMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelDebug, Output: &buf})

	logger.Info("queue registered", "queue_id", 7)

	output := buf.String()
	assert.Contains(t, output, "queue registered")
	assert.Contains(t, output, `"queue_id":7`)
}

func TestLoggerRespectsLevelFloor(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelWarn, Output: &buf})

	logger.Debug("should be dropped")
	assert.Empty(t, buf.String())

	logger.Warn("should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestWithQueueAttachesQueueID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelDebug, Output: &buf})

	queueLogger := logger.WithQueue(3)
	queueLogger.Info("posted")

	assert.Contains(t, buf.String(), `"queue_id":3`)
}

func TestWithSessionAttachesSessionID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelDebug, Output: &buf})

	sessionLogger := logger.WithSession(99)
	sessionLogger.Info("session started")

	assert.Contains(t, buf.String(), `"session_id":99`)
}

func TestGlobalConvenienceFunctionsUseDefault(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewLogger(&Config{Level: LevelDebug, Output: &buf}))

	Info("hello")
	assert.Contains(t, buf.String(), "hello")
}
