package cco

// TaskState is the header every [Task] embeds.
// It is a [Coroutine] plus the await mask recorded by whoever pushed
// the task on a [Runtime] stack.
type TaskState struct {
	Coroutine
	mask Result
}

func (ts *TaskState) taskState() *TaskState {
	return ts
}

// Mask returns the await mask recorded for the task owning ts.
func (ts *TaskState) Mask() Result {
	return ts.mask
}

// A Task is a resumable computation with a uniform invocation signature,
// so that tasks of different types can be stacked on one [Runtime].
//
// Any struct type that embeds [TaskState] and has a Resume method
// implements Task:
//
//	type fetch struct {
//		cco.TaskState
//		// ...
//	}
//
//	func (f *fetch) Resume(rt *cco.Runtime) cco.Result {
//		return f.Run(func(co *cco.Coroutine) cco.Result {
//			// ...
//		}, nil)
//	}
//
// The runtime only keeps references to tasks; ownership stays with whoever
// created them.
type Task interface {
	Resume(rt *Runtime) Result
	taskState() *TaskState
}

// AwaitTask pushes child on the stack of rt with the given await mask,
// records p and returns [Await].
//
// The runtime invokes child next. Once child returns a result with no bits
// outside mask, it is popped and the task owning ts resumes at p.
// With mask [Done], that happens when child finishes; with mask [Yield],
// also whenever child yields, in which case child stays resumable and can
// be awaited again.
//
// Pushing beyond the depth of rt fails the runtime with [ErrStackOverflow].
func (ts *TaskState) AwaitTask(p Point, rt *Runtime, child Task, mask Result) Result {
	rt.push(child, mask)
	return ts.YieldValue(p, Await)
}

// YieldTask replaces the task owning ts, which must be on top of the stack
// of rt, with next, records p and returns [Await].
//
// This is a tail call: the depth of rt does not grow, and the runtime will
// not resume the task owning ts again. Whoever holds it may still resume or
// cancel it by hand.
func (ts *TaskState) YieldTask(p Point, rt *Runtime, next Task, mask Result) Result {
	rt.replace(next, mask)
	return ts.YieldValue(p, Await)
}

// CancelTask stops t and invokes it one more time with rt so that its
// cleanup runs. CancelTask does nothing if t has already finished.
//
// CancelTask does not touch the stack of rt; see [Runtime.Cancel] for
// cancelling everything a runtime is running.
func CancelTask(t Task, rt *Runtime) {
	ts := t.taskState()
	if !ts.Active() {
		return
	}
	ts.Stop()
	t.Resume(rt)
}
