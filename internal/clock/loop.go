package clock

import (
	"context"
	"sync"
	"time"
)

// Loop is a Scheduler driven by explicit Advance calls. Tests advance it
// with synthetic times; Run drives it from a ticker.
type Loop struct {
	now    time.Time
	timers []*entry
	frames []*entry

	mu     sync.Mutex
	posted []func()
	wake   chan struct{}
}

var _ Scheduler = (*Loop)(nil)

// NewLoop creates a loop whose clock starts at start.
func NewLoop(start time.Time) *Loop {
	return &Loop{
		now:  start,
		wake: make(chan struct{}, 1),
	}
}

// Now returns the time of the current or last Advance.
func (l *Loop) Now() time.Time {
	return l.now
}

// RequestFrame queues fn for the next Advance. Frames requested while
// frames are being delivered run on the following Advance.
func (l *Loop) RequestFrame(fn func(now time.Time)) Handle {
	e := &entry{fn: fn}
	l.frames = append(l.frames, e)
	return Handle{e: e}
}

// Every schedules fn at now+interval, now+2*interval and so on.
// Non-positive intervals are treated as one millisecond.
func (l *Loop) Every(interval time.Duration, fn func(now time.Time)) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	e := &entry{fn: fn, interval: interval, next: l.now.Add(interval)}
	l.timers = append(l.timers, e)
	return Handle{e: e}
}

// Post queues fn to run on the loop goroutine at the start of the next
// Advance. It is the only Loop method safe to call from other goroutines.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Advance moves the clock to now. It runs posted functions, then every
// timer firing due up to now in time order (a timer that fell behind
// fires once per missed interval), then the frames requested before
// this call. Times earlier than the current clock are ignored.
func (l *Loop) Advance(now time.Time) {
	l.runPosted()

	if now.Before(l.now) {
		now = l.now
	}

	for {
		t := l.nextDue(now)
		if t == nil {
			break
		}
		l.now = t.next
		t.next = t.next.Add(t.interval)
		t.fn(l.now)
	}
	l.now = now
	l.timers = compact(l.timers)

	frames := l.frames
	l.frames = nil
	for _, f := range frames {
		if !f.cancelled {
			f.cancelled = true
			f.fn(now)
		}
	}
}

// Pending returns the number of live timers and queued frames.
func (l *Loop) Pending() int {
	n := 0
	for _, t := range l.timers {
		if !t.cancelled {
			n++
		}
	}
	for _, f := range l.frames {
		if !f.cancelled {
			n++
		}
	}
	return n
}

// Run advances the loop fps times per second until ctx is done. Posted
// functions run as soon as they arrive.
func (l *Loop) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
			l.runPosted()
		case t := <-ticker.C:
			l.Advance(t)
		}
	}
}

func (l *Loop) runPosted() {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
}

// nextDue returns the live timer with the earliest firing at or before now.
func (l *Loop) nextDue(now time.Time) *entry {
	var due *entry
	for _, t := range l.timers {
		if t.cancelled || t.next.After(now) {
			continue
		}
		if due == nil || t.next.Before(due.next) {
			due = t
		}
	}
	return due
}

func compact(entries []*entry) []*entry {
	kept := entries[:0]
	for _, e := range entries {
		if !e.cancelled {
			kept = append(kept, e)
		}
	}
	clear(entries[len(kept):])
	return kept
}
