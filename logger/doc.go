// Package logger is the native instrumentation API of the subscriber.
//
// A Logger is immutable after construction: the sink, the minimum level,
// the module and the default fields are set once via the Builder and never
// modified, so a Logger is safe for concurrent use without locking.
//
// Every logging method takes a context.Context. The Logger resolves the
// span chain from it through the ScopeFunc given to WithScope (usually
// spanscope.Processor.Scope) and hands the event to its EventSink:
//
//	spans := spanscope.New()
//	log := logger.NewBuilder().
//	    WithSink(handler.NewDispatcher(handler.Config{})).
//	    WithScope(spans.Scope).
//	    WithModule("app::server").
//	    WithLevel(logger.DebugLevel).
//	    Build()
//
//	log.Info(ctx, "ready", logger.Int("port", 8080))
//
// The message is carried as the event's "message" field. Child loggers
// are created via With (extra fields) or Named (different module).
//
// The package initializes a default Logger (InfoLevel, real standard
// streams, no span tracking) in init(); the package-level functions
// delegate to it.
//
// Level checks happen before any allocation, so filtered-out
// events cost only a single integer comparison.
package logger
