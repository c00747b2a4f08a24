package logging

import (
	"context"

	"github.com/cltnschlosser/swift-driver/internal/ports"
)

// NopLogger discards everything.
type NopLogger struct{}

// NewNopLogger creates a new NopLogger.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Debug does nothing.
func (l *NopLogger) Debug(context.Context, string, ...ports.Field) {}

// Info does nothing.
func (l *NopLogger) Info(context.Context, string, ...ports.Field) {}

// Warn does nothing.
func (l *NopLogger) Warn(context.Context, string, ...ports.Field) {}

// Error does nothing.
func (l *NopLogger) Error(context.Context, string, ...ports.Field) {}

// With returns the logger itself.
func (l *NopLogger) With(...ports.Field) ports.Logger {
	return l
}

// Level returns LevelError so callers can skip formatting work.
func (l *NopLogger) Level() ports.Level {
	return ports.LevelError
}
