package formatter

import (
	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

// messageVisitor keeps the debug form of the message field.
type messageVisitor struct {
	message string
}

func (v *messageVisitor) VisitField(f core.Field) {
	switch f.Key {
	case core.MessageKey:
		v.message = f.DebugString()
	}
}

// ExtractMessage returns the debug-formatted value of the event's
// "message" field, or "" when there is none. Other fields are ignored.
// When the field appears more than once the last one wins.
func ExtractMessage(ev *core.Event) string {
	if ev == nil {
		return ""
	}
	var v messageVisitor
	ev.Record(&v)
	return v.message
}
