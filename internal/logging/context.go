package logging

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// WithLogger returns a context carrying the given request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts the request-scoped logger, falling back to the
// provided default (which may be nil).
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return fallback
}
