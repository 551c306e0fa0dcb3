// Package clock schedules the two timelines of a session: per-frame
// callbacks and fixed-interval timers.
//
// Both run on the goroutine that owns the scheduler, so callbacks need no
// locking and a Cancel made from a callback takes effect before any later
// callback of the same Advance.
package clock

import "time"

// Scheduler is the time source and callback registry used by sessions.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time

	// RequestFrame runs fn once, on the next frame.
	RequestFrame(fn func(now time.Time)) Handle

	// Every runs fn each time interval elapses until cancelled.
	Every(interval time.Duration, fn func(now time.Time)) Handle
}

type entry struct {
	fn        func(now time.Time)
	interval  time.Duration
	next      time.Time
	cancelled bool
}

// Handle cancels a scheduled callback. The zero Handle is valid and
// cancels nothing.
type Handle struct {
	e *entry
}

// Cancel stops the callback. It must be called on the scheduler's
// goroutine; a cancelled callback never runs again.
func (h Handle) Cancel() {
	if h.e != nil {
		h.e.cancelled = true
	}
}
