package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// Visitor receives the fields of an event one at a time.
// Implementations must accept any key and any field type.
type Visitor interface {
	VisitField(f Field)
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(f Field)

// VisitField calls fn(f).
func (fn VisitorFunc) VisitField(f Field) {
	fn(f)
}

// DebugString returns the debug representation of a field's value.
// Textual values are quoted with Go escaping so embedded newlines and
// control characters can never split a rendered line.
func (f Field) DebugString() string {
	switch f.Type {
	case StringType, ErrorType:
		return strconv.Quote(f.Str)
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return strconv.Quote(time.Unix(0, f.Int64).UTC().Format(time.RFC3339Nano))
	case DurationType:
		return time.Duration(f.Int64).String()
	case AnyType:
		return debugAny(f.Any)
	default:
		return ""
	}
}

func debugAny(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return strconv.Quote(x)
	case error:
		return strconv.Quote(safeString(x.Error))
	case fmt.Stringer:
		return strconv.Quote(safeString(x.String))
	default:
		// fmt recovers panicking Format/String methods on its own
		return fmt.Sprintf("%+v", x)
	}
}

// safeString guards user String/Error methods, which may panic on nil
// receivers.
func safeString(fn func() string) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<panic: %v>", r)
		}
	}()
	return fn()
}
