package handler

import (
	"sync/atomic"
)

// WriteFailurePolicy defines what OnEvent does when writing a line fails
type WriteFailurePolicy int

const (
	// PanicOnWriteError aborts the callback with a panic carrying the error
	PanicOnWriteError WriteFailurePolicy = iota
	// DropOnWriteError counts the failure and drops the line
	DropOnWriteError
)

// String returns the string representation of the policy
func (p WriteFailurePolicy) String() string {
	switch p {
	case PanicOnWriteError:
		return "PanicOnWriteError"
	case DropOnWriteError:
		return "DropOnWriteError"
	default:
		return "Unknown"
	}
}

// Stats tracks dispatcher statistics per channel
type Stats struct {
	WrittenStdout uint64
	WrittenStderr uint64
	FailedStdout  uint64
	FailedStderr  uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementWritten atomically increments the written counter for a channel
func (s *Stats) IncrementWritten(c Channel) {
	if c == ErrorChannel {
		atomic.AddUint64(&s.WrittenStderr, 1)
		return
	}
	atomic.AddUint64(&s.WrittenStdout, 1)
}

// IncrementFailed atomically increments the failure counter for a channel
func (s *Stats) IncrementFailed(c Channel) {
	if c == ErrorChannel {
		atomic.AddUint64(&s.FailedStderr, 1)
		return
	}
	atomic.AddUint64(&s.FailedStdout, 1)
}

// GetWritten returns the written count for a channel
func (s *Stats) GetWritten(c Channel) uint64 {
	if c == ErrorChannel {
		return atomic.LoadUint64(&s.WrittenStderr)
	}
	return atomic.LoadUint64(&s.WrittenStdout)
}

// GetFailed returns the failure count for a channel
func (s *Stats) GetFailed(c Channel) uint64 {
	if c == ErrorChannel {
		return atomic.LoadUint64(&s.FailedStderr)
	}
	return atomic.LoadUint64(&s.FailedStdout)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Written map[Channel]uint64
	Failed  map[Channel]uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Written: map[Channel]uint64{
			OutputChannel: s.GetWritten(OutputChannel),
			ErrorChannel:  s.GetWritten(ErrorChannel),
		},
		Failed: map[Channel]uint64{
			OutputChannel: s.GetFailed(OutputChannel),
			ErrorChannel:  s.GetFailed(ErrorChannel),
		},
	}
}
