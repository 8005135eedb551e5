package semgraph

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with semgraph-specific context.
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

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithHops adds a hops field to the logger.
func (l *Logger) WithHops(hops int) *Logger {
	return &Logger{
		Logger: l.Logger.With("hops", hops),
	}
}

// LogBuild logs a completed graph build.
func (l *Logger) LogBuild(ctx context.Context, seeds []string, k, hops, nodes, edges int, err error) {
	if err != nil {
		l.WarnContext(ctx, "graph build failed",
			"seeds", seeds,
			"k", k,
			"hops", hops,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "graph build completed",
			"seeds", seeds,
			"k", k,
			"hops", hops,
			"nodes", nodes,
			"edges", edges,
		)
	}
}

// LogNoNeighbors logs a word for which the model returned no neighbors.
func (l *Logger) LogNoNeighbors(ctx context.Context, word string) {
	l.WarnContext(ctx, "no neighbors found", "word", word)
}
