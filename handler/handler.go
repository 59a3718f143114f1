package handler

import (
	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

// EventSink is the callback a host invokes once per emitted event
type EventSink interface {
	// OnEvent handles one event. scope yields the span chain active when
	// the event fired; it is only valid for the duration of the call.
	// A nil ev carries nothing to render and is ignored.
	OnEvent(ev *core.Event, scope core.Scope)
}

// EventSinkFunc adapts a plain function to the EventSink interface.
type EventSinkFunc func(ev *core.Event, scope core.Scope)

// OnEvent calls fn(ev, scope).
func (fn EventSinkFunc) OnEvent(ev *core.Event, scope core.Scope) {
	fn(ev, scope)
}
