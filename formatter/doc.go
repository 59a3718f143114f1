// Package formatter turns one event into one line of text.
//
// The line layout is fixed:
//
//	[<elapsed seconds, 6 decimals> <LEVEL>](<span chain>)(<module>): <message>
//
// ExtractMessage is the field extractor: it visits an event's fields and
// keeps the debug form of the one named "message". The span chain joins the
// names yielded by a core.Scope with " | ", outermost first. A missing
// module renders as "no module".
//
// LineFormatter implements Formatter and writes into a caller-provided
// bytes.Buffer so the dispatcher can issue the whole line as a single
// Write. GetBuffer and PutBuffer share a pool of buffers with the
// dispatcher, and the formatter relies on Append-style functions (strconv.AppendFloat) to avoid
// per-call allocations. Level labels are pre-computed ("[...INFO](") so the
// common path is a single WriteString call.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large line from permanently inflating memory usage.
package formatter
