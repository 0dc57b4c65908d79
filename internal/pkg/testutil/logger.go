package testutil

import (
	"bytes"
	"sync"
	"testing"

	"github.com/falcomnl/api-controller/internal/pkg/config"
	"github.com/falcomnl/api-controller/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// SetupTestLogger returns a console logger for tests that do not inspect output.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	log, err := logger.New(&config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	})
	require.NoError(t, err)
	return log
}

// LogBuffer collects log output for assertions.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewBufferLogger returns a debug level logger writing into a LogBuffer.
func NewBufferLogger(t *testing.T) (logger.Logger, *LogBuffer) {
	t.Helper()

	buf := &LogBuffer{}
	return logger.NewWriterLogger(buf, config.LogLevelDebug), buf
}
