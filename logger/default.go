package logger

import (
	"context"
	"fmt"
	"sync"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
	"github.com/MarcAntoine-Arnaud/subscriber/handler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// Initialize default logger on the real standard streams
	defaultLogger = NewBuilder().
		WithSink(handler.NewDispatcher(handler.Config{})).
		WithLevel(core.InfoLevel).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Trace logs a trace message using the default logger
func Trace(ctx context.Context, msg string, fields ...core.Field) {
	if l := Default(); core.TraceLevel >= l.level {
		l.logSkip(ctx, 0, core.TraceLevel, msg, fields)
	}
}

// Debug logs a debug message using the default logger
func Debug(ctx context.Context, msg string, fields ...core.Field) {
	if l := Default(); core.DebugLevel >= l.level {
		l.logSkip(ctx, 0, core.DebugLevel, msg, fields)
	}
}

// Info logs an info message using the default logger
func Info(ctx context.Context, msg string, fields ...core.Field) {
	if l := Default(); core.InfoLevel >= l.level {
		l.logSkip(ctx, 0, core.InfoLevel, msg, fields)
	}
}

// Warn logs a warning message using the default logger
func Warn(ctx context.Context, msg string, fields ...core.Field) {
	if l := Default(); core.WarnLevel >= l.level {
		l.logSkip(ctx, 0, core.WarnLevel, msg, fields)
	}
}

// Error logs an error message using the default logger
func Error(ctx context.Context, msg string, fields ...core.Field) {
	if l := Default(); core.ErrorLevel >= l.level {
		l.logSkip(ctx, 0, core.ErrorLevel, msg, fields)
	}
}

// Tracef logs a formatted trace message using the default logger
func Tracef(ctx context.Context, format string, args ...interface{}) {
	if l := Default(); core.TraceLevel >= l.level {
		l.logSkip(ctx, 0, core.TraceLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Debugf logs a formatted debug message using the default logger
func Debugf(ctx context.Context, format string, args ...interface{}) {
	if l := Default(); core.DebugLevel >= l.level {
		l.logSkip(ctx, 0, core.DebugLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Infof logs a formatted info message using the default logger
func Infof(ctx context.Context, format string, args ...interface{}) {
	if l := Default(); core.InfoLevel >= l.level {
		l.logSkip(ctx, 0, core.InfoLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Warnf logs a formatted warning message using the default logger
func Warnf(ctx context.Context, format string, args ...interface{}) {
	if l := Default(); core.WarnLevel >= l.level {
		l.logSkip(ctx, 0, core.WarnLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Errorf logs a formatted error message using the default logger
func Errorf(ctx context.Context, format string, args ...interface{}) {
	if l := Default(); core.ErrorLevel >= l.level {
		l.logSkip(ctx, 0, core.ErrorLevel, fmt.Sprintf(format, args...), nil)
	}
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Named creates a new logger reporting the given module
func Named(module string) *Logger {
	return Default().Named(module)
}
