package cco

import (
	"fortio.org/safecast"
	"golang.org/x/exp/constraints"
)

// Semaphore is a counting semaphore whose "can proceed" predicate serves as
// a suspension condition.
//
// There is no waiter queue. A waiting computation re-polls the count each
// time it is re-entered, so whichever waiter is invoked first after
// [Semaphore.Release] gets the unit.
//
// A Semaphore must not be shared by more than one scheduler goroutine.
type Semaphore struct {
	count int64
}

// NewSemaphore creates a new [Semaphore] with its count set to n.
// Panics if n does not fit in an int64.
func NewSemaphore[N constraints.Integer](n N) *Semaphore {
	s := new(Semaphore)
	s.Set(toCount(n))
	return s
}

func toCount[N constraints.Integer](n N) int64 {
	c, err := safecast.Conv[int64](n)
	if err != nil {
		panic("cco(Semaphore): " + err.Error())
	}
	return c
}

// Count returns the current count of s.
func (s *Semaphore) Count() int64 {
	return s.count
}

// TryAcquire decrements the count of s and returns true if it is positive.
// Otherwise it returns false and leaves s untouched.
func (s *Semaphore) TryAcquire() bool {
	if s.count > 0 {
		s.count--
		return true
	}
	return false
}

// Release increments the count of s.
// Waiters observe the new count the next time they are invoked.
func (s *Semaphore) Release() {
	s.count++
}

// Set overwrites the count of s.
// Panics if n is negative.
func (s *Semaphore) Set(n int64) {
	if n < 0 {
		panic("cco(Semaphore): negative count")
	}
	s.count = n
}

// AwaitSemaphore records p and awaits until s can be acquired.
// On success the count of s has been decremented by one and AwaitSemaphore
// returns [Done].
func (co *Coroutine) AwaitSemaphore(p Point, s *Semaphore) Result {
	return co.Await(p, s.TryAcquire())
}
