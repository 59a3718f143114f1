package formatter

import (
	"bytes"
	"sync"
	"time"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

// Formatter renders a single event into a buffer
type Formatter interface {
	// FormatEvent appends the rendered event, newline included, to buf.
	// elapsed is the time since the formatter state was created.
	FormatEvent(buf *bytes.Buffer, elapsed time.Duration, ev *core.Event, scope core.Scope)
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

// GetBuffer returns an empty buffer from the shared pool.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the shared pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
