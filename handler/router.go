package handler

import (
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

// Channel identifies one of the two standard streams
type Channel uint8

const (
	// OutputChannel is standard output
	OutputChannel Channel = iota
	// ErrorChannel is standard error
	ErrorChannel
)

// String returns the stream name
func (c Channel) String() string {
	switch c {
	case OutputChannel:
		return "stdout"
	case ErrorChannel:
		return "stderr"
	default:
		return "unknown"
	}
}

// Channels lists both channels.
func Channels() []Channel {
	return []Channel{OutputChannel, ErrorChannel}
}

// ChannelFor maps a level to the channel its lines are written to.
func ChannelFor(level core.Level) Channel {
	switch level {
	case core.ErrorLevel, core.WarnLevel:
		return ErrorChannel
	default:
		return OutputChannel
	}
}

// Router resolves the writer for a channel at the point of use.
type Router struct {
	stdout func() io.Writer
	stderr func() io.Writer
	mu     [2]sync.Mutex  // serializes writers not safe for concurrent Write
	locks  [2]*sync.Mutex // lock per channel; both channels share one when they share a writer
}

// NewRouter creates a router writing to the given writers. A nil writer
// selects the process's current standard stream, looked up on every call.
func NewRouter(stdout, stderr io.Writer) *Router {
	r := &Router{
		stdout: func() io.Writer { return os.Stdout },
		stderr: func() io.Writer { return os.Stderr },
	}
	if stdout != nil {
		r.stdout = func() io.Writer { return stdout }
	}
	if stderr != nil {
		r.stderr = func() io.Writer { return stderr }
	}
	r.locks[OutputChannel] = &r.mu[OutputChannel]
	r.locks[ErrorChannel] = &r.mu[ErrorChannel]
	if sameWriter(stdout, stderr) {
		r.locks[ErrorChannel] = r.locks[OutputChannel]
	}
	return r
}

// sameWriter reports whether a and b are the same non-nil writer.
func sameWriter(a, b io.Writer) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Sink returns the sink for the level's channel.
func (r *Router) Sink(level core.Level) Sink {
	return r.ChannelSink(ChannelFor(level))
}

// ChannelSink returns the sink for a channel.
func (r *Router) ChannelSink(c Channel) Sink {
	var w io.Writer
	if c == ErrorChannel {
		w = r.stderr()
	} else {
		c = OutputChannel
		w = r.stdout()
	}
	s := Sink{channel: c, w: w}
	if !isConcurrentSafeWriter(w) {
		s.mu = r.locks[c]
	}
	return s
}

// Sink is a writable handle on one channel. It is acquired per event and
// holds no state beyond the call.
type Sink struct {
	channel Channel
	w       io.Writer
	mu      *sync.Mutex // nil when w is safe for concurrent Write calls
}

// Channel reports the channel the sink writes to.
func (s Sink) Channel() Channel {
	return s.channel
}

// Write writes p with a single call to the underlying writer.
func (s Sink) Write(p []byte) (n int, err error) {
	if s.w == nil {
		return 0, os.ErrInvalid
	}
	if s.mu != nil {
		s.mu.Lock()
		n, err = s.w.Write(p)
		s.mu.Unlock()
		return
	}
	return s.w.Write(p)
}

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the sink to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}
