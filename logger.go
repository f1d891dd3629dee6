package svmgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with svmgo-specific context.
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

// WithSolver adds a solver field to the logger.
func (l *Logger) WithSolver(s Solver) *Logger {
	return &Logger{
		Logger: l.Logger.With("solver", s.String()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogFitStart logs the start of a training run.
func (l *Logger) LogFitStart(ctx context.Context, samples, dimension int, strategy Strategy, cacheBudget int64) {
	l.DebugContext(ctx, "fit started",
		"samples", samples,
		"dimension", dimension,
		"strategy", strategy.String(),
		"cache_budget", cacheBudget,
	)
}

// LogEpoch logs a completed epoch.
func (l *Logger) LogEpoch(ctx context.Context, epoch uint64, modify float64) {
	l.DebugContext(ctx, "epoch completed",
		"epoch", epoch,
		"modify", modify,
	)
}

// LogFit logs a finished training run.
func (l *Logger) LogFit(ctx context.Context, report *Report, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"error", err,
		)
		return
	}
	if report.SkippedPairs > 0 {
		l.WarnContext(ctx, "degenerate pairs skipped",
			"skipped", report.SkippedPairs,
		)
	}
	l.InfoContext(ctx, "fit completed",
		"epochs", report.Epochs,
		"converged", report.Converged,
		"modify", report.FinalModify,
		"support_vectors", report.SupportVectors,
		"cache", report.CacheMode,
		"duration", report.Duration.Round(time.Microsecond),
	)
}
