// Package clock provides the time sources used by the audio engine and a
// cancellable repeating task built on top of them
package clock

import "time"

// Timer is a pending one-shot callback
type Timer interface {
	// Stop prevents the callback from firing, returns false if it already fired or was stopped
	Stop() bool
}

// Clock schedules deferred work against a time source
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the wall clock with monotonic readings
// Callbacks run on their own goroutines, callers serialize shared state themselves
type Real struct{}

// NewReal creates a wall clock
func NewReal() *Real {
	return &Real{}
}

// Now returns the current time with monotonic clock reading
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine after d
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
