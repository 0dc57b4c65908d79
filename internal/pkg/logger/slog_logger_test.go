//go:build unit
// +build unit

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/falcomnl/api-controller/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := newSlogLogger(&buf, config.LogLevelInfo, false)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestSlogLogger_WithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := newSlogLogger(&buf, config.LogLevelDebug, true)

	log.With("resource", "posts", "request_id", "abc").Info("created ", 3, " records")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "created 3 records", record["msg"])
	assert.Equal(t, "posts", record["resource"])
	assert.Equal(t, "abc", record["request_id"])
}

func TestSlogLogger_Panic(t *testing.T) {
	var buf bytes.Buffer
	log := newSlogLogger(&buf, config.LogLevelInfo, false)

	assert.PanicsWithValue(t, "boom", func() { log.Panic("boom") })
	assert.Contains(t, buf.String(), "boom")
}

func TestNewConsoleLogger(t *testing.T) {
	log := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, log)

	require.NotPanics(t, func() {
		log.Info("test")
		log.Warn("test")
		log.With("k", "v").Error("test")
	})
}
