package ware

import (
	"log/slog"
	"sync/atomic"
)

// Logger defines an interface for logging at different severity levels.
// It is satisfied by *slog.Logger.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, args ...any)
	// Info logs a message at info level.
	Info(msg string, args ...any)
	// Warn logs a message at warning level.
	Warn(msg string, args ...any)
	// Error logs a message at error level.
	Error(msg string, args ...any)
}

var logger atomic.Pointer[Logger]

// SetDefaultLogger sets the logger used by chains that have no logger of
// their own. slog.Default() is used by default. Passing nil restores it.
func SetDefaultLogger(l Logger) {
	if l == nil {
		logger.Store(nil)
		return
	}
	logger.Store(&l)
}

func defaultLogger() Logger {
	if l := logger.Load(); l != nil {
		return *l
	}
	return slog.Default()
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger returns a Logger that discards all records.
func NopLogger() Logger {
	return nopLogger{}
}
