// Package cco is a library for stackless cooperative coroutines.
//
// Go already has goroutines, which are cheap, preemptive and carry a stack
// each. Package cco implements the other kind: resumable functions that keep
// no stack at all. Their locals live in a record the caller owns, and their
// position lives in a single integer, the resumption cell, stored in an
// embedded [Coroutine]. A computation runs until it reaches a suspension
// point, records the point, returns a [Result], and carries on from there the
// next time it is invoked.
//
// Nothing here starts a goroutine. What runs when is entirely up to whoever
// invokes the computations, be it a plain loop, a [Runtime] or an [Executor].
//
// # Writing a Resumable Function
//
// A resumable function is a record embedding [Coroutine] and a step function
// that switches on [Coroutine.Point]. Every suspension point gets its own
// named [Point], declared as an enum beginning at one:
//
//	type ticker struct {
//		cco.Coroutine
//		n int
//	}
//
//	const (
//		_ cco.Point = iota
//		afterTick
//	)
//
//	func (t *ticker) Resume() cco.Result {
//		return t.Run(t.step, func() { fmt.Println("bye") })
//	}
//
//	func (t *ticker) step(co *cco.Coroutine) cco.Result {
//		switch co.Point() {
//		case afterTick:
//			t.n++
//		}
//		if t.n < 3 {
//			return co.Yield(afterTick)
//		}
//		return co.Return()
//	}
//
// Locals that must survive a suspension go in the record. Locals that do not
// may stay in the step function. The cleanup function passed to
// [Coroutine.Run] runs exactly once, when the computation finishes or after
// it has been stopped.
//
// # Results
//
// A [Result] is a small bit set. [Done] means finished; [Yield] means a value
// is ready; [Await] means blocked on a condition. Low bits are free for
// a computation to pass small values along with a suspension.
//
// # Suspension Conditions
//
// A blocked computation is not parked anywhere. It returns [Await] and gets
// invoked again later, at which point it re-evaluates its condition.
// [Coroutine.Await] takes any boolean. [Semaphore], [Timer] and [WaitGroup]
// provide ready-made conditions. There are no waiter queues and no
// fairness: whoever polls first after a condition turns true wins.
//
// # Generators
//
// A computation that yields a value on every [Yield] and exposes it through
// a Value method is a [Generator]. [Begin] adapts one to the begin/next
// iteration contract of [Iterator]; [All], [Take] and [TakeWhile] adapt one
// to a range-over-func loop. Leaving a loop early cancels the generator, so
// its cleanup runs right away. [Cursor] walks a slice by the same contract
// from inside a resumable function.
//
// # Tasks and Runtimes
//
// Calling one resumable function from another by hand works, with
// [Coroutine.AwaitRoutine], but every level of nesting then costs a level of
// native recursion on each invocation. A [Task] instead awaits a child by
// pushing it on the explicit stack of a [Runtime]
// (see [TaskState.AwaitTask]). [Runtime.Step] invokes only the task on top
// and pops it once its result ends its parent's wait, so each step is a
// single call no matter how deep the tree. The stack has a fixed depth;
// nesting beyond it fails the runtime with [ErrStackOverflow].
//
// A task that panics fails its runtime too. The panic and its stack are
// turned into the error of [Runtime.Err]; errors.Is sees through it to any
// error value the task panicked with, such as [ErrDone].
//
// # Executors
//
// An [Executor] round-robins steps over any number of runtimes on one
// goroutine, without priorities. When every runtime awaits, an idle function
// is called, which typically sleeps for a tick or advances a fake clock.
//
// # Cancellation
//
// Cancellation is cooperative. [Coroutine.Stop] redirects the next
// invocation to cleanup. [Cancel] stops a computation and invokes it once
// more so that cleanup runs immediately, and [Runtime.Cancel] does that to
// every task on a stack, top first.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use, except the queue of an
// [Executor]. A computation, and every condition it polls, belongs to the
// goroutine invoking it. Many goroutines may each drive their own executors
// at the same time.
package cco
