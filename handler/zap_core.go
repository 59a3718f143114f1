package handler

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

// contextFieldKey is the key of the field created by ZapContext.
const contextFieldKey = "context"

// ZapContext returns a zap field carrying ctx so ZapCore can resolve the
// span chain. Encoders other than ZapCore skip it.
func ZapContext(ctx context.Context) zap.Field {
	return zap.Field{Key: contextFieldKey, Type: zapcore.SkipType, Interface: ctx}
}

// ZapCore is a zapcore.Core that hands every entry to an EventSink.
// The logger name (zap.Logger.Named) becomes the event's module.
type ZapCore struct {
	zapcore.LevelEnabler
	sink   EventSink
	scope  core.ScopeFunc
	fields []zapcore.Field
}

var _ zapcore.Core = (*ZapCore)(nil)

// NewZapCore creates a zap core. scope may be nil.
func NewZapCore(sink EventSink, enab zapcore.LevelEnabler, scope core.ScopeFunc) *ZapCore {
	return &ZapCore{
		LevelEnabler: enab,
		sink:         sink,
		scope:        scope,
	}
}

// With returns a core carrying additional fields.
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &ZapCore{
		LevelEnabler: c.LevelEnabler,
		sink:         c.sink,
		scope:        c.scope,
		fields:       merged,
	}
}

// Check adds the core to ce when the entry's level is enabled.
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the entry to a core.Event and passes it to the sink.
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ev := core.GetEvent()
	ev.Level = zapLevelToCore(ent.Level)
	ev.Module = ent.LoggerName
	ev.Fields = append(ev.Fields, core.Field{Key: core.MessageKey, Type: core.StringType, Str: ent.Message})

	var ctx context.Context
	for _, set := range [2][]zapcore.Field{c.fields, fields} {
		for _, f := range set {
			if f.Type == zapcore.SkipType {
				if fc, ok := f.Interface.(context.Context); ok && f.Key == contextFieldKey {
					ctx = fc
				}
				continue
			}
			ev.Fields = append(ev.Fields, zapFieldToCore(f))
		}
	}

	c.sink.OnEvent(ev, core.ResolveScope(c.scope, ctx))
	core.PutEvent(ev)
	return nil
}

// Sync is a no-op; lines are written unbuffered.
func (c *ZapCore) Sync() error {
	return nil
}

// zapLevelToCore converts a zapcore.Level to a core.Level.
func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level == zapcore.WarnLevel:
		return core.WarnLevel
	case level == zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// zapFieldToCore converts the common zap field types; everything else
// falls back to an Any field.
func zapFieldToCore(f zapcore.Field) core.Field {
	switch f.Type {
	case zapcore.StringType:
		return core.Field{Key: f.Key, Type: core.StringType, Str: f.String}
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return core.Field{Key: f.Key, Type: core.Int64Type, Int64: f.Integer}
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return core.Field{Key: f.Key, Type: core.AnyType, Any: uint64(f.Integer)}
	case zapcore.UintptrType:
		return core.Field{Key: f.Key, Type: core.AnyType, Any: uintptr(f.Integer)}
	case zapcore.Float64Type:
		return core.Field{Key: f.Key, Type: core.Float64Type, Float64: math.Float64frombits(uint64(f.Integer))}
	case zapcore.Float32Type:
		return core.Field{Key: f.Key, Type: core.Float64Type, Float64: float64(math.Float32frombits(uint32(f.Integer)))}
	case zapcore.Complex128Type, zapcore.Complex64Type:
		return core.Field{Key: f.Key, Type: core.AnyType, Any: f.Interface}
	case zapcore.ByteStringType, zapcore.BinaryType:
		// Raw bytes are quoted like text so they cannot split the line
		b, _ := f.Interface.([]byte)
		return core.Field{Key: f.Key, Type: core.StringType, Str: string(b)}
	case zapcore.BoolType:
		return core.Field{Key: f.Key, Type: core.BoolType, Int64: f.Integer}
	case zapcore.DurationType:
		return core.Field{Key: f.Key, Type: core.DurationType, Int64: f.Integer}
	case zapcore.TimeType:
		return core.Field{Key: f.Key, Type: core.TimeType, Int64: f.Integer}
	case zapcore.TimeFullType:
		if t, ok := f.Interface.(time.Time); ok {
			return core.Field{Key: f.Key, Type: core.TimeType, Int64: t.UnixNano()}
		}
		return core.Field{Key: f.Key, Type: core.AnyType, Any: f.Interface}
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok && err != nil {
			return core.Field{Key: f.Key, Type: core.ErrorType, Str: err.Error()}
		}
		return core.Field{Key: f.Key, Type: core.ErrorType}
	default:
		if f.Interface != nil {
			return core.Field{Key: f.Key, Type: core.AnyType, Any: f.Interface}
		}
		return core.Field{Key: f.Key, Type: core.StringType, Str: f.String}
	}
}
