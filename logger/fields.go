package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across hookgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Generation
	FieldPackage   = "package"
	FieldContainer = "container"
	FieldHook      = "hook"
	FieldVariant   = "variant"
	FieldFile      = "file"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"
)

// Context keys for propagating logging context
type contextKey string

const (
	packageKey   contextKey = "logger_package"
	containerKey contextKey = "logger_container"
)

// WithPackage adds a package path to the context for logging
func WithPackage(ctx context.Context, pkg string) context.Context {
	return context.WithValue(ctx, packageKey, pkg)
}

// WithContainer adds a container name to the context for logging
func WithContainer(ctx context.Context, container string) context.Context {
	return context.WithValue(ctx, containerKey, container)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if pkg, ok := ctx.Value(packageKey).(string); ok && pkg != "" {
		fields = append(fields, FieldPackage, pkg)
	}
	if container, ok := ctx.Value(containerKey).(string); ok && container != "" {
		fields = append(fields, FieldContainer, container)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Watcher {
//	    return &Watcher{logger: logger.ComponentLogger("hookgen.watch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
