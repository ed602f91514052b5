package cco

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// A Timer measures a wall-clock interval. Its [Timer.Expired] predicate
// serves as a suspension condition.
//
// A Timer reads time from the clock it is created with, so that tests can
// drive it with a fake clock. The real clock carries a monotonic reading,
// which keeps elapsed time non-decreasing.
type Timer struct {
	clock    clockwork.Clock
	interval time.Duration
	start    time.Time
}

// NewTimer creates a [Timer] that starts now and expires after interval.
// A nil clock means the real clock.
func NewTimer(clock clockwork.Clock, interval time.Duration) *Timer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{clock: clock, interval: interval, start: clock.Now()}
}

// Start restarts tm with a new interval.
func (tm *Timer) Start(interval time.Duration) {
	tm.interval = interval
	tm.Restart()
}

// Restart restarts tm, keeping its interval.
func (tm *Timer) Restart() {
	if tm.clock == nil {
		tm.clock = clockwork.NewRealClock()
	}
	tm.start = tm.clock.Now()
}

// Interval returns the interval of tm.
func (tm *Timer) Interval() time.Duration {
	return tm.interval
}

// Expired reports whether at least the interval of tm has elapsed since it
// was last started.
func (tm *Timer) Expired() bool {
	return tm.Elapsed() >= tm.interval
}

// Elapsed returns the time elapsed since tm was last started.
func (tm *Timer) Elapsed() time.Duration {
	if tm.clock == nil {
		tm.clock = clockwork.NewRealClock()
	}
	return tm.clock.Since(tm.start)
}

// Remaining returns the time left until tm expires.
// It is negative once tm has expired.
func (tm *Timer) Remaining() time.Duration {
	return tm.interval - tm.Elapsed()
}

// AwaitTimer records p and awaits until tm expires.
// Arriving at p from anywhere but a re-entry at p restarts tm with
// interval d first.
func (co *Coroutine) AwaitTimer(p Point, tm *Timer, d time.Duration) Result {
	if co.resume != p {
		tm.Start(d)
	}
	return co.Await(p, tm.Expired())
}

// Sleep blocks the calling goroutine for d, using the given clock.
// A nil clock means the real clock.
//
// Sleep is for driver loops that have nothing to do while every
// computation awaits a timer; a step function must never call it.
func Sleep(clock clockwork.Clock, d time.Duration) {
	if d <= 0 {
		return
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	clock.Sleep(d)
}
