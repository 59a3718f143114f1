package core

import "context"

// Scope exposes the chain of spans active when an event fired.
type Scope interface {
	// Spans calls fn with the name of each active span, outermost first,
	// stopping early when fn returns false.
	Spans(fn func(name string) bool)
}

// ScopeFunc resolves the active Scope for a context.
type ScopeFunc func(ctx context.Context) Scope

// SpanNames is a Scope backed by a snapshot of span names, outermost first.
type SpanNames []string

// Spans implements Scope.
func (s SpanNames) Spans(fn func(name string) bool) {
	for _, name := range s {
		if !fn(name) {
			return
		}
	}
}

type emptyScope struct{}

func (emptyScope) Spans(func(string) bool) {}

// EmptyScope is a Scope with no active spans.
var EmptyScope Scope = emptyScope{}

// ResolveScope applies fn to ctx, returning EmptyScope when fn or its
// result is nil.
func ResolveScope(fn ScopeFunc, ctx context.Context) Scope {
	if fn == nil || ctx == nil {
		return EmptyScope
	}
	if s := fn(ctx); s != nil {
		return s
	}
	return EmptyScope
}
