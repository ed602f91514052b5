package cco

import (
	"errors"
	"iter"
)

// ErrDone is the panic value of [Coroutine.Run] when it is called on
// a computation that has already finished.
var ErrDone = errors.New("cco: coroutine resumed after done")

// A Coroutine is the resumption cell of a stackless computation, similar to
// a goroutine but cooperative and without a stack of its own.
//
// A Coroutine is meant to be embedded, as the header of a record that
// carries whatever the computation needs to survive between invocations
// (loop counters, results, references to collaborators).
// The record's own method calls [Coroutine.Run] with a step function.
// The step function is an explicit state machine: it switches on
// [Coroutine.Point] to continue right after the suspension point where it
// last returned, and returns one of the results created by the methods of
// Coroutine.
//
//	type countdown struct {
//		cco.Coroutine
//		n int
//	}
//
//	const (
//		_ cco.Point = iota
//		afterTick
//	)
//
//	func (c *countdown) Resume() cco.Result {
//		return c.Run(c.step, nil)
//	}
//
//	func (c *countdown) step(co *cco.Coroutine) cco.Result {
//		switch co.Point() {
//		case afterTick:
//			c.n--
//		}
//		if c.n > 0 {
//			return co.Yield(afterTick)
//		}
//		return co.Return()
//	}
//
// The zero value is ready to use. A Coroutine must not be copied once it
// has been invoked.
type Coroutine struct {
	state  Point
	resume Point
}

// A StepFunc is the body of a resumable function.
// It runs from the point reported by [Coroutine.Point] and returns at
// the next suspension point, or returns [Done] to finish.
type StepFunc func(co *Coroutine) Result

// Run invokes one slice of the computation owned by co.
//
// If co is at [Start] or suspended, Run calls step. A pending result
// returned by step is returned as is and co stays resumable. When step
// returns [Done], either by calling [Coroutine.Return] or simply by running
// out of code, Run calls cleanup (which may be nil), marks co as done and
// returns Done.
//
// If co has been stopped (see [Coroutine.Stop]), Run skips step and goes
// straight to cleanup.
//
// cleanup runs at most once per computation. Calling Run on a finished
// computation panics with [ErrDone].
func (co *Coroutine) Run(step StepFunc, cleanup func()) Result {
	switch co.state {
	case donePoint:
		panic(ErrDone)
	case cleanupPoint:
	default:
		co.resume = co.state
		r := step(co)
		co.resume = runningPoint
		if r != Done {
			return r
		}
	}
	co.state = donePoint
	if cleanup != nil {
		cleanup()
	}
	return Done
}

// Point returns the suspension point at which the current invocation
// resumed, or [Start] on the first invocation.
//
// Point is only meaningful inside a [StepFunc], where it is used as the
// subject of the dispatching switch.
func (co *Coroutine) Point() Point {
	return co.resume
}

func (co *Coroutine) mark(p Point) {
	if p <= Start {
		panic("cco: suspension point must be positive")
	}
	co.state = p
}

// Yield records p and returns [Yield].
// The next invocation resumes at p.
func (co *Coroutine) Yield(p Point) Result {
	return co.YieldValue(p, Yield)
}

// YieldValue records p and returns r, which must not be [Done].
func (co *Coroutine) YieldValue(p Point, r Result) Result {
	if r == Done {
		panic("cco: cannot yield Done")
	}
	co.mark(p)
	return r
}

// YieldFinal returns [Yield] one last time; the next invocation runs
// cleanup and finishes.
func (co *Coroutine) YieldFinal() Result {
	co.Stop()
	return Yield
}

// Await records p and returns [Await] unless ready is true, in which case it
// returns [Done] and the step function carries on.
//
// The typical use re-evaluates its condition every time the computation is
// re-entered at p:
//
//	switch co.Point() {
//	case cco.Start:
//		// ...
//		fallthrough
//	case waitReady:
//		if r := co.Await(waitReady, x.ready()); r.Pending() {
//			return r
//		}
//		// ...
//	}
func (co *Coroutine) Await(p Point, ready bool) Result {
	co.mark(p)
	if !ready {
		return Await
	}
	if co.resume == p {
		co.resume = runningPoint
	}
	return Done
}

// AwaitRoutine records p and awaits another resumable computation that the
// step function drives directly, given the result r of invoking it.
//
// While r has bits outside mask, AwaitRoutine returns r so that it
// propagates to the caller (a child [Yield] surfaces as a Yield of co).
// Otherwise it returns [Done] and the step function carries on.
// With mask [Done], the wait lasts until the other computation finishes.
func (co *Coroutine) AwaitRoutine(p Point, r, mask Result) Result {
	co.mark(p)
	if r&^mask != 0 {
		return r
	}
	if co.resume == p {
		co.resume = runningPoint
	}
	return Done
}

// Return finishes the computation: the invocation that returns it runs
// cleanup and reports [Done].
func (co *Coroutine) Return() Result {
	co.Stop()
	return Done
}

// Stop cooperatively cancels co.
//
// Stop does not interrupt anything; it redirects the next invocation to
// cleanup. Stop on a computation that has not started yet also routes it
// through cleanup. Stop on a computation whose cleanup is pending or that
// has finished does nothing.
func (co *Coroutine) Stop() {
	if co.state >= Start {
		co.state = cleanupPoint
	}
}

// Reset puts co back at [Start] so that the computation can run again from
// scratch. Resetting the fields of the surrounding record is up to the
// caller.
func (co *Coroutine) Reset() {
	co.state = Start
	co.resume = Start
}

// Routine is the interface of any record that embeds a [Coroutine] and
// exposes its own Resume method.
type Routine interface {
	Resume() Result
	Stop()
	Active() bool
}

// Cancel stops r and invokes it one more time so that its cleanup runs.
// Cancel does nothing if r has already finished.
func Cancel(r Routine) {
	if !r.Active() {
		return
	}
	r.Stop()
	r.Resume()
}

// Drive returns an iterator that invokes resume until it returns [Done],
// yielding every pending result in between.
//
// Breaking out of the loop early leaves the computation suspended; use
// [Cancel] to dispose of it.
func Drive(resume func() Result) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for {
			r := resume()
			if r == Done || !yield(r) {
				return
			}
		}
	}
}
