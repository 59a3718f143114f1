package core

import "time"

// Clock supplies the current time to the dispatcher.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now. The returned values carry a monotonic
// reading, so differences between them never go backwards.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls fn().
func (fn ClockFunc) Now() time.Time {
	return fn()
}
