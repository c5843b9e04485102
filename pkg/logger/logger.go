package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// NewLogger builds the application logger.
func NewLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

// WithLogger attaches a request-scoped logger to the context.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext extracts the logger from the context, falling back to a nop
// logger so callers never need a nil check.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
