// Package core defines the shared types used by the formatter, the
// dispatcher and every host adapter.
//
// It provides the Level type, the Event type that represents a single
// instrumentation record, the Field type for structured key-value pairs
// and the Visitor used to walk them, and the Scope type that exposes the
// span chain active when an event fired.
//
// Event objects are pooled via sync.Pool so host adapters can build one
// per callback without allocating. Callers get an Event with GetEvent and
// return it with PutEvent once the sink has consumed it; the dispatcher
// never retains an Event after OnEvent returns.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
