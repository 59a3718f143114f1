package formatter

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

const (
	// SpanSeparator joins span names in the span chain.
	SpanSeparator = " | "
	// NoModule is rendered when an event carries no module.
	NoModule = "no module"
)

// LineFormatter renders events in the fixed one-line layout
type LineFormatter struct{}

// NewLineFormatter creates a new line formatter
func NewLineFormatter() *LineFormatter {
	return &LineFormatter{}
}

// pre-formatted level segments to avoid multiple WriteString calls
var levelLabels = [...]string{
	core.TraceLevel: " TRACE](",
	core.DebugLevel: " DEBUG](",
	core.InfoLevel:  " INFO](",
	core.WarnLevel:  " WARN](",
	core.ErrorLevel: " ERROR](",
}

// FormatEvent implements Formatter. A nil event renders nothing.
func (f *LineFormatter) FormatEvent(buf *bytes.Buffer, elapsed time.Duration, ev *core.Event, scope core.Scope) {
	if ev == nil {
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}

	buf.WriteByte('[')
	buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), elapsed.Seconds(), 'f', 6, 64))

	if ev.Level >= 0 && int(ev.Level) < len(levelLabels) {
		buf.WriteString(levelLabels[ev.Level])
	} else {
		buf.WriteByte(' ')
		buf.WriteString(ev.Level.String())
		buf.WriteString("](")
	}

	AppendSpanChain(buf, scope)

	buf.WriteString(")(")
	buf.WriteString(ModuleLabel(ev))
	buf.WriteString("): ")
	buf.WriteString(ExtractMessage(ev))
	buf.WriteByte('\n')
}

// AppendSpanChain writes the span names of scope joined by SpanSeparator.
// A nil or empty scope writes nothing.
func AppendSpanChain(buf *bytes.Buffer, scope core.Scope) {
	if scope == nil {
		return
	}
	first := true
	scope.Spans(func(name string) bool {
		if !first {
			buf.WriteString(SpanSeparator)
		}
		first = false
		buf.WriteString(name)
		return true
	})
}

// SpanChain returns the span chain of scope as a string.
func SpanChain(scope core.Scope) string {
	if scope == nil {
		return ""
	}
	var sb strings.Builder
	first := true
	scope.Spans(func(name string) bool {
		if !first {
			sb.WriteString(SpanSeparator)
		}
		first = false
		sb.WriteString(name)
		return true
	})
	return sb.String()
}

// ModuleLabel returns the event's module, or NoModule when absent.
func ModuleLabel(ev *core.Event) string {
	if ev.Module == "" {
		return NoModule
	}
	return ev.Module
}
