package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
)

// slogLogger adapts a *slog.Logger to the variadic Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a text logger writing to stdout.
func NewConsoleLogger(level string) Logger {
	return newSlogLogger(os.Stdout, level, false)
}

// NewFileLogger creates a JSON logger writing to a rotated file.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
	return newSlogLogger(writer, level, true)
}

// NewWriterLogger creates a text logger writing to w.
func NewWriterLogger(w io.Writer, level string) Logger {
	return newSlogLogger(w, level, false)
}

func newSlogLogger(w io.Writer, level string, asJSON bool) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Debug(args ...interface{}) {
	l.logger.Debug(formatArgs(args...))
}

func (l *slogLogger) Info(args ...interface{}) {
	l.logger.Info(formatArgs(args...))
}

func (l *slogLogger) Warn(args ...interface{}) {
	l.logger.Warn(formatArgs(args...))
}

func (l *slogLogger) Error(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
}

// Fatal logs at error level and exits.
func (l *slogLogger) Fatal(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
	os.Exit(1)
}

// Panic logs at error level and panics with the message.
func (l *slogLogger) Panic(args ...interface{}) {
	msg := formatArgs(args...)
	l.logger.Error(msg)
	panic(msg)
}

func (l *slogLogger) With(keyvals ...interface{}) Logger {
	return &slogLogger{logger: l.logger.With(keyvals...)}
}
