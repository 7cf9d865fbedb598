package binparse

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with string-table specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTable adds the table region fields to the logger.
func (l *Logger) WithTable(offset, size int64, enc Encoding) *Logger {
	return &Logger{
		Logger: l.Logger.With("table_offset", offset, "table_size", size, "encoding", enc.String()),
	}
}

// LogLookup logs a random-access lookup.
func (l *Logger) LogLookup(ctx context.Context, offset int64, err error) {
	if err != nil {
		l.DebugContext(ctx, "lookup failed",
			"offset", offset,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "lookup completed",
			"offset", offset,
		)
	}
}

// LogSkip logs an entry skipped during iteration.
func (l *Logger) LogSkip(ctx context.Context, offset, consumed int64, err error) {
	l.DebugContext(ctx, "entry skipped",
		"offset", offset,
		"consumed", consumed,
		"error", err,
	)
}

// LogIterationEnd logs the end of an iteration pass.
func (l *Logger) LogIterationEnd(ctx context.Context, entries, skipped int, err error) {
	if err != nil {
		l.WarnContext(ctx, "iteration terminated early",
			"entries", entries,
			"skipped", skipped,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "iteration completed",
			"entries", entries,
			"skipped", skipped,
		)
	}
}
