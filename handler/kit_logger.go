package handler

import (
	"context"
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

// ContextKey is the go-kit key whose context.Context value provides the
// span chain.
const ContextKey = "ctx"

// KitLogger adapts an EventSink to the go-kit log.Logger interface.
// Keyvals are read as follows: level.Key() selects the level (INFO when
// absent), "msg" or "message" the message, "module" the module, and a
// context.Context under "ctx" the span chain. Other pairs become fields.
type KitLogger struct {
	sink  EventSink
	scope core.ScopeFunc
}

var _ log.Logger = (*KitLogger)(nil)

// NewKitLogger creates a go-kit logger. scope may be nil.
func NewKitLogger(sink EventSink, scope core.ScopeFunc) *KitLogger {
	return &KitLogger{sink: sink, scope: scope}
}

// Log implements log.Logger. It never returns an error.
func (l *KitLogger) Log(keyvals ...interface{}) error {
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, log.ErrMissingValue)
	}

	ev := core.GetEvent()
	var ctx context.Context

	for i := 0; i < len(keyvals); i += 2 {
		k, v := keyvals[i], keyvals[i+1]
		if k == level.Key() {
			if lv, ok := v.(level.Value); ok {
				ev.Level = kitLevelToCore(lv)
				continue
			}
		}

		key := fmt.Sprint(k)
		switch key {
		case "msg", core.MessageKey:
			ev.Fields = append(ev.Fields, kitValueToField(core.MessageKey, v))
		case ModuleKey:
			ev.Module = fmt.Sprint(v)
		case ContextKey:
			if c, ok := v.(context.Context); ok {
				ctx = c
				continue
			}
			ev.Fields = append(ev.Fields, kitValueToField(key, v))
		default:
			ev.Fields = append(ev.Fields, kitValueToField(key, v))
		}
	}

	l.sink.OnEvent(ev, core.ResolveScope(l.scope, ctx))
	core.PutEvent(ev)
	return nil
}

// kitLevelToCore converts a go-kit level value to a core.Level.
func kitLevelToCore(v level.Value) core.Level {
	switch v.String() {
	case "debug":
		return core.DebugLevel
	case "warn":
		return core.WarnLevel
	case "error":
		return core.ErrorLevel
	default:
		return core.InfoLevel
	}
}

func kitValueToField(key string, v interface{}) core.Field {
	if s, ok := v.(string); ok {
		return core.Field{Key: key, Type: core.StringType, Str: s}
	}
	return core.Field{Key: key, Type: core.AnyType, Any: v}
}
