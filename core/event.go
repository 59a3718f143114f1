package core

import (
	"sync"
)

// MessageKey is the field name holding the human-facing message of an event.
const MessageKey = "message"

// Event is one instrumentation record handed to an EventSink.
// It lives only for the duration of the callback.
type Event struct {
	Level Level
	// Module identifies the source of the event. Empty means absent.
	Module string
	Fields []Field
}

// Record calls v.VisitField for each field in order.
func (e *Event) Record(v Visitor) {
	for _, f := range e.Fields {
		v.VisitField(f)
	}
}

// eventPool is a pool of Event objects to reduce allocations
var eventPool = sync.Pool{
	New: func() interface{} {
		return &Event{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetEvent retrieves an Event from the pool
func GetEvent() *Event {
	e := eventPool.Get().(*Event)
	e.Level = InfoLevel
	e.Module = ""
	e.Fields = e.Fields[:0]
	return e
}

// PutEvent returns an Event to the pool
func PutEvent(e *Event) {
	if e == nil {
		return
	}
	// Drop Any references so pooled events don't pin caller values
	for i := range e.Fields {
		e.Fields[i].Any = nil
	}
	e.Fields = e.Fields[:0]
	e.Module = ""
	eventPool.Put(e)
}
