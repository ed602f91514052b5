package cco_test

import (
	"context"
	"fmt"

	"github.com/b97tsk/cco"
)

type ticker struct {
	cco.Coroutine
	n int
}

const (
	_ cco.Point = iota
	afterTick
)

func (t *ticker) Resume() cco.Result {
	return t.Run(t.step, func() { fmt.Println("bye") })
}

func (t *ticker) step(co *cco.Coroutine) cco.Result {
	switch co.Point() {
	case afterTick:
		t.n++
	}
	if t.n < 3 {
		fmt.Println("tick", t.n)
		return co.Yield(afterTick)
	}
	return co.Return()
}

func Example() {
	var t ticker

	// Drive invokes t until it returns Done.
	for r := range cco.Drive(t.Resume) {
		fmt.Println(r)
	}

	// Output:
	// tick 0
	// YIELD
	// tick 1
	// YIELD
	// tick 2
	// YIELD
	// bye
}

func ExampleCancel() {
	var t ticker

	t.Resume()

	// Cancel skips the rest of t and runs its cleanup right away.
	cco.Cancel(&t)
	fmt.Println(t.Done())

	// Output:
	// tick 0
	// bye
	// true
}

// squares yields 0, 1, 4, 9, ... forever.
type squares struct {
	cco.Coroutine
	i int
}

const (
	_ cco.Point = iota
	squaresNext
)

func (g *squares) Resume() cco.Result {
	return g.Run(g.step, func() { fmt.Println("cleanup") })
}

func (g *squares) step(co *cco.Coroutine) cco.Result {
	switch co.Point() {
	case squaresNext:
		g.i++
	}
	return co.Yield(squaresNext)
}

func (g *squares) Value() int { return g.i * g.i }

func ExampleTake() {
	for v := range cco.Take[int](&squares{}, 3) {
		fmt.Println(v)
	}

	// Output:
	// 0
	// 1
	// 4
	// cleanup
}

func ExampleTakeWhile() {
	for v := range cco.TakeWhile[int](&squares{}, func(v int) bool { return v < 20 }) {
		fmt.Println(v)
	}

	// Output:
	// 0
	// 1
	// 4
	// 9
	// 16
	// cleanup
}

func ExampleBegin() {
	it := cco.Begin[int](&squares{})
	for ; it.Valid() && *it.Ref() < 10; it.Next() {
		fmt.Println(*it.Ref())
	}
	it.Stop()

	// Output:
	// 0
	// 1
	// 4
	// 9
	// cleanup
}

func ExampleRBeginSlice() {
	s := []string{"a", "b", "c"}
	for c := cco.RBeginSlice(s); c.Valid(); c.Next() {
		fmt.Println(c.Index(), *c.Ref())
	}

	// Output:
	// 2 c
	// 1 b
	// 0 a
}

// greeter greets n times, yielding after each.
type greeter struct {
	cco.TaskState
	name string
	n, i int
}

const (
	_ cco.Point = iota
	greetAgain
)

func (g *greeter) Resume(*cco.Runtime) cco.Result {
	return g.Run(func(co *cco.Coroutine) cco.Result {
		switch co.Point() {
		case greetAgain:
			g.i++
		}
		if g.i < g.n {
			fmt.Printf("%s #%d\n", g.name, g.i)
			return co.Yield(greetAgain)
		}
		return co.Return()
	}, nil)
}

// greetAll awaits a greeter for each name in turn.
type greetAll struct {
	cco.TaskState
	names []string
	c     cco.Cursor[string]
}

const (
	_ cco.Point = iota
	greetNext
)

func (a *greetAll) Resume(rt *cco.Runtime) cco.Result {
	return a.Run(func(co *cco.Coroutine) cco.Result {
		switch co.Point() {
		case cco.Start:
			a.c = cco.BeginSlice(a.names)
		case greetNext:
			a.c.Next()
		}
		if a.c.Valid() {
			return a.AwaitTask(greetNext, rt, &greeter{name: *a.c.Ref(), n: 2}, cco.Done)
		}
		fmt.Println("all greeted")
		return co.Return()
	}, nil)
}

func ExampleRuntime() {
	rt := cco.NewRuntime(&greetAll{names: []string{"alice", "bob"}})

	if err := rt.Run(context.Background()); err != nil {
		fmt.Println(err)
	}

	fmt.Println("steps:", rt.Steps())

	// Output:
	// alice #0
	// alice #1
	// bob #0
	// bob #1
	// all greeted
	// steps: 9
}

func ExampleExecutor() {
	var myExecutor cco.Executor

	myExecutor.Spawn(&greeter{name: "alice", n: 2})
	myExecutor.Spawn(&greeter{name: "bob", n: 2})

	// Runtimes take turns, one step each.
	myExecutor.Run()

	// Output:
	// alice #0
	// bob #0
	// alice #1
	// bob #1
}
