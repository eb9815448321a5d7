package fabgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with fabgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithItemCount adds an item count field to the logger.
func (l *Logger) WithItemCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("items", count),
	}
}

// LogBuild logs a resolver construction.
func (l *Logger) LogBuild(modifiers, items int, err error) {
	if err != nil {
		l.Error("build failed",
			"error", err,
		)
	} else {
		l.Debug("build completed",
			"modifiers", modifiers,
			"items", items,
		)
	}
}

// LogUpdate logs one incremental update pass.
func (l *Logger) LogUpdate(changedFields int, err error) {
	if err != nil {
		l.Error("update failed",
			"changed_fields", changedFields,
			"error", err,
		)
	} else {
		l.Debug("update completed",
			"changed_fields", changedFields,
		)
	}
}

// LogSync logs a binding synchronization.
func (l *Logger) LogSync(err error) {
	if err != nil {
		l.Error("binding sync failed",
			"error", err,
		)
	} else {
		l.Debug("binding sync completed")
	}
}
