// Package logger writes the notify-complete log file.
package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// LogFilePermissions is the mode of a newly created log file.
const LogFilePermissions = 0o600

// Logger provides structured logging interface.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger with additional key-value pairs.
	With(keysAndValues ...any) Logger
}

// SlogAdapter implements Logger on top of log/slog and a LineHandler.
type SlogAdapter struct {
	logger  *slog.Logger
	handler *LineHandler
}

// NewFileLogger appends to the log file at path.
func NewFileLogger(path string, verbosity Verbosity) (*SlogAdapter, error) {
	handler, err := NewFileHandler(path, verbosity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log file")
	}

	return &SlogAdapter{logger: slog.New(handler), handler: handler}, nil
}

// NewWriterLogger writes log lines to w.
func NewWriterLogger(w io.Writer, verbosity Verbosity) *SlogAdapter {
	handler := NewLineHandler(w, verbosity)

	return &SlogAdapter{logger: slog.New(handler), handler: handler}
}

// Debug logs debug-level messages.
func (l *SlogAdapter) Debug(msg string, keysAndValues ...any) {
	l.logger.Log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

// Info logs info-level messages.
func (l *SlogAdapter) Info(msg string, keysAndValues ...any) {
	l.logger.Log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

// Error logs error-level messages.
func (l *SlogAdapter) Error(msg string, keysAndValues ...any) {
	l.logger.Log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

// With returns a new logger with additional base key-value pairs.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (l *SlogAdapter) With(keysAndValues ...any) Logger {
	return &SlogAdapter{
		logger:  l.logger.With(keysAndValues...),
		handler: l.handler,
	}
}

// Close closes the log file. Loggers created by NewWriterLogger have nothing
// to close.
func (l *SlogAdapter) Close() error {
	return l.handler.Close()
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing.
func (*NoOpLogger) Debug(string, ...any) {}

// Info does nothing.
func (*NoOpLogger) Info(string, ...any) {}

// Error does nothing.
func (*NoOpLogger) Error(string, ...any) {}

// With returns the same NoOpLogger.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (n *NoOpLogger) With(...any) Logger {
	return n
}
