package benchmark

import (
	"github.com/MarcAntoine-Arnaud/subscriber/core"
	"github.com/MarcAntoine-Arnaud/subscriber/formatter"
	"github.com/MarcAntoine-Arnaud/subscriber/handler"
)

// noopSink extracts the message and drops the event, isolating the cost of
// the host front end from formatting and writing.
type noopSink struct{}

func newNoopSink() handler.EventSink {
	return noopSink{}
}

func (noopSink) OnEvent(ev *core.Event, _ core.Scope) {
	_ = len(formatter.ExtractMessage(ev))
}
