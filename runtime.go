package cco

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultDepth is the stack depth of a [Runtime] created without
// [WithDepth].
const DefaultDepth = 16

// ErrStackOverflow is the error of a [Runtime] whose tasks nested deeper
// than its depth allows. It is a configuration defect, not a transient
// condition: the runtime stops and every further [Runtime.Step] returns it.
var ErrStackOverflow = errors.New("cco: runtime stack overflow")

// A Runtime runs a tree of [Task] calls without native recursion.
//
// A Runtime maintains an explicit stack of tasks. Each [Runtime.Step]
// invokes the task on top. A task awaiting another (see
// [TaskState.AwaitTask]) pushes it; a task whose result ends its parent's
// wait is popped, and the parent gets control on the next step.
//
// A Runtime is single-threaded. It must only be stepped by one goroutine
// at a time, and the tasks it runs, as well as any [Semaphore], [Timer] or
// [WaitGroup] they share, must not be touched from elsewhere meanwhile.
type Runtime struct {
	stack    []Task
	depth    int
	result   Result
	steps    int
	changed  bool
	err      error
	panics   panicstack
	logger   *zap.Logger
	observer func(StepInfo)
}

// StepInfo describes one completed [Runtime.Step].
type StepInfo struct {
	Step   int    // 1-based step number
	Task   Task   // task that was invoked
	Result Result // what it returned
	Depth  int    // stack depth after the step
	Popped bool   // whether Task was popped
}

// An Option configures a [Runtime].
type Option func(rt *Runtime)

// WithDepth bounds the number of tasks on the stack, the root included.
// Panics if n is not positive.
func WithDepth(n int) Option {
	if n < 1 {
		panic("cco(Runtime): depth must be positive")
	}
	return func(rt *Runtime) { rt.depth = n }
}

// WithLogger sets the logger of a [Runtime].
// Steps are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithObserver registers f to be called after every [Runtime.Step].
func WithObserver(f func(StepInfo)) Option {
	return func(rt *Runtime) { rt.observer = f }
}

// NewRuntime creates a [Runtime] with root as the only task on its stack.
func NewRuntime(root Task, opts ...Option) *Runtime {
	if root == nil {
		panic("cco: nil Task")
	}
	rt := &Runtime{depth: DefaultDepth, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(rt)
	}
	rt.stack = make([]Task, 0, min(rt.depth, DefaultDepth))
	root.taskState().mask = Done
	rt.stack = append(rt.stack, root)
	return rt
}

// Depth returns the number of tasks on the stack.
func (rt *Runtime) Depth() int {
	return len(rt.stack)
}

// Limit returns the maximum depth of the stack.
func (rt *Runtime) Limit() int {
	return rt.depth
}

// Top returns the index of the task on top of the stack, or -1 if the stack
// is empty.
func (rt *Runtime) Top() int {
	return len(rt.stack) - 1
}

// Result returns the result of the last step.
func (rt *Runtime) Result() Result {
	return rt.result
}

// Steps returns the number of completed steps.
func (rt *Runtime) Steps() int {
	return rt.steps
}

// Running reports whether rt has tasks left and has not failed.
func (rt *Runtime) Running() bool {
	return rt.err == nil && len(rt.stack) != 0
}

// Err returns the error that stopped rt, if any.
func (rt *Runtime) Err() error {
	return rt.err
}

func (rt *Runtime) push(t Task, mask Result) {
	if t == nil {
		panic("cco: nil Task")
	}
	ts := t.taskState()
	if ts.Done() {
		panic("cco: awaiting a finished task")
	}
	if len(rt.stack) >= rt.depth {
		if rt.err == nil {
			rt.err = fmt.Errorf("%w: depth limit %d reached pushing %s", ErrStackOverflow, rt.depth, taskName(t))
			rt.logger.Warn("runtime stack overflow",
				zap.Int("depth", rt.depth),
				zap.String("task", taskName(t)),
			)
		}
		// The caller stays on top for Cancel to clean up.
		rt.changed = true
		return
	}
	ts.mask = mask
	rt.stack = append(rt.stack, t)
	rt.changed = true
}

func (rt *Runtime) replace(t Task, mask Result) {
	if t == nil {
		panic("cco: nil Task")
	}
	n := len(rt.stack)
	if n == 0 {
		panic("cco: yielding to a task on an empty runtime")
	}
	t.taskState().mask = mask
	rt.stack[n-1] = t
	rt.changed = true
}

func (rt *Runtime) pop() {
	n := len(rt.stack) - 1
	rt.stack[n] = nil
	rt.stack = rt.stack[:n]
}

// Step performs one scheduling step: it invokes the task on top of
// the stack and returns its result.
//
// If the task pushed or replaced a task, nothing else happens; the new top
// runs on the next step. Otherwise, if the result has no bits outside
// the task's await mask, the task is popped: the wait of its parent is over
// and the parent resumes on the next step. A task that keeps returning
// results outside its mask stays on top.
//
// Step on an empty stack does nothing and returns [Done].
// Once rt has failed, either by overflowing its stack or because a task
// panicked, Step returns the same error without running anything.
func (rt *Runtime) Step() (Result, error) {
	if rt.err != nil {
		return rt.result, rt.err
	}
	n := len(rt.stack)
	if n == 0 {
		return Done, nil
	}

	t := rt.stack[n-1]
	rt.changed = false

	var r Result
	if !rt.panics.catch(t, rt.steps+1, func() { r = t.Resume(rt) }) {
		rt.err = rt.panics.err()
		rt.logger.Error("task panicked", zap.String("task", taskName(t)), zap.Error(rt.err))
		return r, rt.err
	}

	rt.steps++
	rt.result = r

	popped := false
	if !rt.changed && r&^t.taskState().mask == 0 {
		rt.pop()
		popped = true
	}
	rt.changed = false

	if ce := rt.logger.Check(zap.DebugLevel, "step"); ce != nil {
		ce.Write(
			zap.Int("step", rt.steps),
			zap.String("task", taskName(t)),
			zap.Stringer("result", r),
			zap.Int("depth", len(rt.stack)),
			zap.Bool("popped", popped),
		)
	}
	if rt.observer != nil {
		rt.observer(StepInfo{
			Step:   rt.steps,
			Task:   t,
			Result: r,
			Depth:  len(rt.stack),
			Popped: popped,
		})
	}

	return r, rt.err
}

// Run steps rt until its stack is empty, and returns the error that stopped
// it, if any.
//
// When ctx is done, Run cancels every task left on the stack (see
// [Runtime.Cancel]) and returns ctx.Err(). Run does not cancel anything
// after a failure; the caller may call Cancel to clean up.
func (rt *Runtime) Run(ctx context.Context) error {
	for rt.Running() {
		if err := ctx.Err(); err != nil {
			rt.Cancel()
			return err
		}
		if _, err := rt.Step(); err != nil {
			return err
		}
	}
	return rt.err
}

// Cancel pops every task off the stack, top first, stopping each and
// invoking it one more time so that its cleanup runs.
func (rt *Runtime) Cancel() {
	for len(rt.stack) != 0 {
		t := rt.stack[len(rt.stack)-1]
		rt.pop()
		ts := t.taskState()
		if !ts.Active() {
			continue
		}
		ts.Stop()
		if !rt.panics.catch(t, 0, func() { t.Resume(rt) }) && rt.err == nil {
			rt.err = rt.panics.err()
			rt.logger.Error("task panicked during cancellation", zap.String("task", taskName(t)), zap.Error(rt.err))
		}
		rt.logger.Debug("task canceled", zap.String("task", taskName(t)))
	}
}

func taskName(t Task) string {
	return fmt.Sprintf("%T", t)
}
