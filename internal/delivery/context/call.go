// Package context carries per-call values from the plugin adapter down to the usecases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyCallID is the key for storing the plugin call ID in context.
	KeyCallID ContextKey = "call_id"

	// KeyLogger is the key for storing the call-scoped logger in context.
	KeyLogger ContextKey = "logger"
)

// NewCallID returns a fresh identifier for a host invocation.
func NewCallID() string {
	return uuid.New().String()
}

// GetCallID extracts the call ID from context. Empty if unset.
func GetCallID(ctx context.Context) string {
	if id, ok := ctx.Value(KeyCallID).(string); ok {
		return id
	}

	return ""
}

// WithCallID returns a new context with the call ID.
func WithCallID(ctx context.Context, callID string) context.Context {
	return context.WithValue(ctx, KeyCallID, callID)
}

// GetLogger extracts the call-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the call-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
