package pointstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with lookup-specific helpers.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// WithCollection adds a collection field to the logger.
func (l *Logger) WithCollection(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("collection", name),
	}
}

// LogLookup logs a completed lookup.
func (l *Logger) LogLookup(ctx context.Context, s LookupStats, err error) {
	log := l.WithCollection(s.Collection)
	if err != nil {
		log.ErrorContext(ctx, "lookup failed",
			"requested", s.Requested,
			"valid", s.Valid,
			"duration", s.Duration,
			"error", err,
		)
		return
	}
	if dropped := s.Requested - s.Valid; dropped > 0 {
		log.DebugContext(ctx, "lookup dropped invalid ids", "dropped", dropped)
	}
	log.DebugContext(ctx, "lookup completed",
		"requested", s.Requested,
		"valid", s.Valid,
		"found", s.Found,
		"duration", s.Duration,
	)
}

// LookupStats summarizes a single lookup.
type LookupStats struct {
	Collection string
	// Requested is the number of values in the request.
	Requested int
	// Valid is the number of values that converted to point ids.
	Valid int
	// Found is the number of entries in the result.
	Found    int
	Duration time.Duration
}
