// Package spanscope tracks active OpenTelemetry spans so the dispatcher can
// render the span chain an event fired in.
//
// Processor implements sdktrace.SpanProcessor. Register it with the tracer
// provider and hand its Scope method to any host adapter as the
// core.ScopeFunc:
//
//	spans := spanscope.New()
//	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
//	h := handler.NewSlogHandler(dispatcher, core.InfoLevel, spans.Scope)
//
// Only spans started through a provider the processor is registered with,
// and not yet ended, appear in a chain. The chain is rendered outermost
// first.
package spanscope
