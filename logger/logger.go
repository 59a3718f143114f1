package logger

import (
	"context"
	"fmt"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
	"github.com/MarcAntoine-Arnaud/subscriber/handler"
)

// Logger is the main logging interface (immutable)
type Logger struct {
	sink         handler.EventSink
	scope        core.ScopeFunc
	level        core.Level
	module       string
	fields       []core.Field
	callerModule bool
	callerSkip   int
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	sink         handler.EventSink
	scope        core.ScopeFunc
	level        core.Level
	module       string
	fields       []core.Field
	callerModule bool
	callerSkip   int
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel, // Default level
		callerSkip: 2,              // Frames between logSkip and the public method's caller
	}
}

// WithSink sets the sink that receives every event
func (b *Builder) WithSink(s handler.EventSink) *Builder {
	b.sink = s
	return b
}

// WithScope sets how the span chain is resolved from a context
func (b *Builder) WithScope(fn core.ScopeFunc) *Builder {
	b.scope = fn
	return b
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithModule sets the module attached to every event
func (b *Builder) WithModule(module string) *Builder {
	b.module = module
	return b
}

// WithFields adds default fields to all events
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCallerModule uses the calling function's package path as the module
// when no module was set with WithModule
func (b *Builder) WithCallerModule(enabled bool) *Builder {
	b.callerModule = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	return &Logger{
		sink:         b.sink,
		scope:        b.scope,
		level:        b.level,
		module:       b.module,
		fields:       b.fields,
		callerModule: b.callerModule,
		callerSkip:   b.callerSkip,
	}
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	c := l.clone()
	c.fields = newFields
	return c
}

// Named creates a new Logger reporting the given module
func (l *Logger) Named(module string) *Logger {
	c := l.clone()
	c.module = module
	return c
}

// Enabled reports whether events at level are delivered
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level && l.sink != nil
}

// Log logs a message at the specified level
func (l *Logger) Log(ctx context.Context, level core.Level, msg string, fields ...core.Field) {
	// Level check optimization - exit early BEFORE any allocations
	if level < l.level {
		return
	}
	l.log(ctx, level, msg, fields)
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(ctx context.Context, level core.Level, msg string, fields []core.Field) {
	l.logSkip(ctx, 1, level, msg, fields)
}

// logSkip builds and delivers the event. skip counts the extra frames
// between the public entry point and logSkip.
func (l *Logger) logSkip(ctx context.Context, skip int, level core.Level, msg string, fields []core.Field) {
	if l.sink == nil {
		return
	}

	ev := core.GetEvent()
	ev.Level = level
	ev.Module = l.module
	if ev.Module == "" && l.callerModule {
		ev.Module = core.CallerModule(l.callerSkip + skip)
	}

	ev.Fields = append(ev.Fields, core.Field{Key: core.MessageKey, Type: core.StringType, Str: msg})
	if len(l.fields) > 0 {
		ev.Fields = append(ev.Fields, l.fields...)
	}
	if len(fields) > 0 {
		ev.Fields = append(ev.Fields, fields...)
	}

	l.sink.OnEvent(ev, core.ResolveScope(l.scope, ctx))
	core.PutEvent(ev)
}

// Trace logs a trace message
func (l *Logger) Trace(ctx context.Context, msg string, fields ...core.Field) {
	if core.TraceLevel < l.level {
		return
	}
	l.log(ctx, core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, msg string, fields ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(ctx, core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, msg string, fields ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(ctx, core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(ctx context.Context, msg string, fields ...core.Field) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(ctx, core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, msg string, fields ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(ctx, core.ErrorLevel, msg, fields)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(ctx context.Context, format string, args ...interface{}) {
	if core.TraceLevel < l.level {
		return
	}
	l.log(ctx, core.TraceLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(ctx context.Context, format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(ctx, core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(ctx context.Context, format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(ctx, core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(ctx context.Context, format string, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(ctx, core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(ctx context.Context, format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(ctx, core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}
