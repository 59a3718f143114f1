package logger

import (
	"fmt"
	"time"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

// Fields attach to an event after its message. Only the field keyed
// core.MessageKey is rendered on the line; the others travel with the
// event for sinks that record them. Because the last message field wins,
// Message overrides the msg argument of the call it is passed to.

// Message creates the field rendered as the line's message.
func Message(msg string) core.Field {
	return String(core.MessageKey, msg)
}

// String creates a string field, rendered quoted.
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Stringer creates a field from val.String(), resolved when the event
// is rendered.
func Stringer(key string, val fmt.Stringer) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}

// Int creates an int field.
func Int(key string, val int) core.Field {
	return Int64(key, int64(val))
}

// Int64 creates an int64 field.
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

// Uint64 creates an unsigned field.
func Uint64(key string, val uint64) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}

// Float64 creates a float64 field.
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

// Bool creates a bool field, stored as 0 or 1.
func Bool(key string, val bool) core.Field {
	f := core.Field{Key: key, Type: core.BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

// Time creates a time field, rendered in UTC.
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field.
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err creates an "error" field. A nil error yields an empty one.
func Err(err error) core.Field {
	f := core.Field{Key: "error", Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Any creates a field holding val as is. It allocates; prefer the typed
// helpers.
func Any(key string, val interface{}) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}
