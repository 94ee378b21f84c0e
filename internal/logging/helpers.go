package logging

import (
	"context"
	"log/slog"
)

// Info logs an info message on the request-scoped logger, falling back to logger.
func Info(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if l := FromContext(ctx, logger); l != nil {
		l.Info(msg, args...)
	}
}

// Warn logs a warning on the request-scoped logger, falling back to logger.
func Warn(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if l := FromContext(ctx, logger); l != nil {
		l.Warn(msg, args...)
	}
}

// Error logs an error when a logger is configured.
func Error(ctx context.Context, logger *slog.Logger, msg string, err error, args ...any) {
	l := FromContext(ctx, logger)
	if l == nil {
		return
	}
	if err != nil {
		args = append(args, "error", err)
	}
	l.Error(msg, args...)
}
