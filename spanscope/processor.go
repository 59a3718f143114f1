package spanscope

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

var _ sdktrace.SpanProcessor = &Processor{}

// spanNode is what the processor remembers about an active span.
type spanNode struct {
	name   string
	parent trace.SpanID
}

// Processor is an sdktrace.SpanProcessor that records active spans and
// resolves span chains from a context.
type Processor struct {
	mu    sync.RWMutex
	spans map[trace.SpanID]spanNode
}

// New creates an empty processor.
func New() *Processor {
	return &Processor{
		spans: make(map[trace.SpanID]spanNode),
	}
}

// OnStart records the span and its parent. Span IDs are unique, so it
// shouldn't matter if we ever overwrite a key here.
func (p *Processor) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	node := spanNode{name: s.Name(), parent: s.Parent().SpanID()}
	p.mu.Lock()
	p.spans[s.SpanContext().SpanID()] = node
	p.mu.Unlock()
}

// OnEnd forgets the span.
func (p *Processor) OnEnd(s sdktrace.ReadOnlySpan) {
	p.mu.Lock()
	delete(p.spans, s.SpanContext().SpanID())
	p.mu.Unlock()
}

// ForceFlush is a no-op.
func (p *Processor) ForceFlush(context.Context) error { return nil }

// Shutdown forgets every tracked span.
func (p *Processor) Shutdown(context.Context) error {
	p.mu.Lock()
	p.spans = make(map[trace.SpanID]spanNode)
	p.mu.Unlock()
	return nil
}

// Active returns the number of tracked spans.
func (p *Processor) Active() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.spans)
}

// Scope returns the chain of active spans ending at the span in ctx,
// outermost first. It returns an empty chain when ctx carries no span the
// processor is tracking. Scope has the core.ScopeFunc signature.
func (p *Processor) Scope(ctx context.Context) core.Scope {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return core.EmptyScope
	}
	return core.SpanNames(p.chain(sc.SpanID()))
}

// chain walks parents from id while they are tracked.
func (p *Processor) chain(id trace.SpanID) []string {
	p.mu.RLock()
	var names []string
	for depth := 0; depth <= len(p.spans); depth++ {
		node, ok := p.spans[id]
		if !ok {
			break
		}
		names = append(names, node.name)
		id = node.parent
	}
	p.mu.RUnlock()

	// Collected innermost first
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}
