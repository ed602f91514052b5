package demo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/b97tsk/cco"
)

// counter yields n times, then finishes.
type counter struct {
	cco.TaskState
	name string
	n, i int
	out  io.Writer
}

const (
	_ cco.Point = iota
	counterNext
)

func (c *counter) Resume(*cco.Runtime) cco.Result {
	return c.Run(c.step, func() {
		fmt.Fprintf(c.out, "%s: cleanup after %d\n", c.name, c.i)
	})
}

func (c *counter) step(co *cco.Coroutine) cco.Result {
	switch co.Point() {
	case counterNext:
		c.i++
	}
	if c.i < c.n {
		fmt.Fprintf(c.out, "%s: yield %d\n", c.name, c.i)
		return co.Yield(counterNext)
	}
	return co.Return()
}

// nest awaits a counter through a chain of levels nested tasks.
type nest struct {
	cco.TaskState
	level int
	inner cco.Task
	out   io.Writer
	items int
}

const (
	_ cco.Point = iota
	nestAfterInner
)

func (t *nest) Resume(rt *cco.Runtime) cco.Result {
	return t.Run(func(co *cco.Coroutine) cco.Result {
		switch co.Point() {
		case cco.Start:
			if t.level > 0 {
				t.inner = &nest{level: t.level - 1, out: t.out, items: t.items}
			} else {
				t.inner = &counter{name: "counter", n: t.items, out: t.out}
			}
			fmt.Fprintf(t.out, "nest %d: await at depth %d\n", t.level, rt.Depth())
			return t.AwaitTask(nestAfterInner, rt, t.inner, cco.Done)
		case nestAfterInner:
		}
		fmt.Fprintf(t.out, "nest %d: resumed at depth %d\n", t.level, rt.Depth())
		return co.Return()
	}, nil)
}

// Tasks runs a root task that awaits a chain of nested tasks ending in a
// counter yielding Items values. The chain is as deep as the runtime
// allows; asking for more fails the runtime with a stack overflow.
func Tasks(ctx context.Context, w io.Writer, opts Options) error {
	opts = opts.withDefaults()
	return runTasks(ctx, w, opts, chain(opts.Depth, w, opts.Items))
}

// chain returns the root of a task chain exactly depth tasks deep.
// At depth 1 the counter runs alone.
func chain(depth int, w io.Writer, items int) cco.Task {
	if depth < 2 {
		return &counter{name: "counter", n: items, out: w}
	}
	return &nest{level: depth - 2, out: w, items: items}
}

func runTasks(ctx context.Context, w io.Writer, opts Options, root cco.Task) error {
	rt := cco.NewRuntime(root, opts.runtimeOptions("tasks")...)
	for rt.Running() {
		if err := ctx.Err(); err != nil {
			rt.Cancel()
			return err
		}
		r, err := rt.Step()
		if err != nil {
			if errors.Is(err, cco.ErrStackOverflow) {
				rt.Cancel()
			}
			return err
		}
		fmt.Fprintf(w, "step %d: %v (depth %d)\n", rt.Steps(), r, rt.Depth())
	}
	return nil
}

// Bench runs trees task chains, each as deep as the runtime allows, on one
// executor, and returns the number of steps taken.
func Bench(ctx context.Context, trees int, opts Options) (int, error) {
	opts = opts.withDefaults()
	var e cco.Executor
	e.SetLogger(opts.Logger)
	runtimes := make([]*cco.Runtime, 0, trees)
	for range trees {
		root := chain(opts.Depth, io.Discard, opts.Items)
		runtimes = append(runtimes, e.Spawn(root, opts.runtimeOptions("bench")...))
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}
	e.Run()
	steps := 0
	for _, rt := range runtimes {
		steps += rt.Steps()
	}
	return steps, e.Err()
}
