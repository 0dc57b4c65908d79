// Package logger provides the structured logger of the service.
package logger

import (
	"fmt"
	"log/slog"

	"github.com/falcomnl/api-controller/internal/pkg/config"
)

// ServiceName tags every record written through ForApp.
const ServiceName = "api-controller"

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})

	// With returns a logger that adds the given key/value pairs to every record.
	With(keyvals ...interface{}) Logger
}

// New builds the console or file logger described by settings.
func New(settings *config.LoggerSettings) (Logger, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger settings: %w", err)
	}

	switch settings.LogType {
	case config.LogTypeConsole:
		return NewConsoleLogger(settings.LogLevel), nil
	case config.LogTypeFile:
		return NewFileLogger(settings.LogLevel, settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", settings.LogType)
	}
}

// ForApp builds the service logger from cfg. Records carry the service name
// and the server mode.
func ForApp(cfg *config.AppConfig) (Logger, error) {
	log, err := New(&cfg.Logger)
	if err != nil {
		return nil, err
	}
	return log.With("service", ServiceName, "mode", cfg.Server.Mode), nil
}

// ForResource tags records with the name of a controller resource. A nil
// logger stays nil so resources fall back to their own default.
func ForResource(log Logger, resource string) Logger {
	if log == nil {
		return nil
	}
	return log.With("resource", resource)
}

// critical has no slog equivalent and maps to error.
func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError, config.LogLevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}
