package handler

import (
	"context"
	"log/slog"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

// LevelTrace is the slog level mapped to core.TraceLevel.
const LevelTrace = slog.Level(-8)

// ModuleKey is the attribute key whose value becomes the event's module.
const ModuleKey = "module"

// SlogHandler is an adapter that implements slog.Handler on top of an EventSink.
// This allows log/slog to drive the dispatcher as its host framework.
type SlogHandler struct {
	sink   EventSink
	level  core.Level
	scope  core.ScopeFunc
	module string
	attrs  []core.Field
	group  string
}

// NewSlogHandler creates a new slog.Handler adapter. Records below level are
// discarded; scope resolves the span chain from each record's context and may be nil.
func NewSlogHandler(sink EventSink, level core.Level, scope core.ScopeFunc) *SlogHandler {
	return &SlogHandler{
		sink:  sink,
		level: level,
		scope: scope,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record to a core.Event and passes it to the sink.
func (s *SlogHandler) Handle(ctx context.Context, record slog.Record) error {
	ev := core.GetEvent()
	ev.Level = slogLevelToCore(record.Level)
	ev.Module = s.module
	ev.Fields = append(ev.Fields, core.Field{Key: core.MessageKey, Type: core.StringType, Str: record.Message})

	// Add pre-configured attrs
	if len(s.attrs) > 0 {
		ev.Fields = append(ev.Fields, s.attrs...)
	}

	record.Attrs(func(a slog.Attr) bool {
		if s.group == "" && a.Key == ModuleKey {
			ev.Module = a.Value.Resolve().String()
			return true
		}
		ev.Fields = appendSlogAttr(ev.Fields, s.group, a)
		return true
	})

	s.sink.OnEvent(ev, core.ResolveScope(s.scope, ctx))
	core.PutEvent(ev)
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := s.clone()
	for _, a := range attrs {
		if s.group == "" && a.Key == ModuleKey {
			next.module = a.Value.Resolve().String()
			continue
		}
		next.attrs = appendSlogAttr(next.attrs, s.group, a)
	}
	return next
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	next := s.clone()
	next.group = name
	if s.group != "" {
		next.group = s.group + "." + name
	}
	return next
}

func (s *SlogHandler) clone() *SlogHandler {
	attrs := make([]core.Field, len(s.attrs), len(s.attrs)+4)
	copy(attrs, s.attrs)
	return &SlogHandler{
		sink:   s.sink,
		level:  s.level,
		scope:  s.scope,
		module: s.module,
		attrs:  attrs,
		group:  s.group,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendSlogAttr converts a slog.Attr to fields, prepending the group prefix
// if present. Group attrs are flattened with dotted keys.
func appendSlogAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(fields, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(fields, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(fields, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(fields, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(fields, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(fields, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		// An empty key inlines the group's attrs
		prefix := key
		if a.Key == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			fields = appendSlogAttr(fields, prefix, ga)
		}
		return fields
	default:
		return append(fields, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
