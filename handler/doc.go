// Package handler routes formatted events to the standard streams.
//
// The Dispatcher is the single entry point a host calls once per event
// through the EventSink interface. For each event it computes the time
// elapsed since the dispatcher was created, renders the line with a
// formatter.Formatter, picks the output channel from the event's level and
// writes the whole line with one Write call. There is no queue and no
// background goroutine; OnEvent runs on the caller's goroutine and is safe
// to call from many goroutines at once.
//
// Routing is done by the Router: ERROR and WARN go to the error channel
// (os.Stderr), everything else to the output channel (os.Stdout). The
// writer is resolved on every call, never cached.
//
// Write failures are governed by a WriteFailurePolicy. PanicOnWriteError
// (the default) treats a broken output stream as fatal to the call;
// DropOnWriteError counts the failure and carries on.
//
// Host adapters:
//
//   - SlogHandler implements log/slog.Handler.
//   - ZapCore implements go.uber.org/zap/zapcore.Core.
//   - KitLogger implements the go-kit log.Logger interface.
//
// Each adapter turns the host's record into a core.Event, resolves the span
// chain through a core.ScopeFunc and calls OnEvent. Written lines and write
// failures are tracked per channel via the Stats type and can be exported
// to Prometheus with NewCollector.
package handler
