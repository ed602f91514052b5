package cco_test

import (
	"fmt"

	"github.com/b97tsk/cco"
)

// worker holds sem for one step.
type worker struct {
	cco.TaskState
	name string
	sem  *cco.Semaphore
}

const (
	_ cco.Point = iota
	workAcquire
	workHold
)

func (w *worker) Resume(*cco.Runtime) cco.Result {
	return w.Run(func(co *cco.Coroutine) cco.Result {
		switch co.Point() {
		case cco.Start, workAcquire:
			if r := co.AwaitSemaphore(workAcquire, w.sem); r.Pending() {
				return r
			}
			fmt.Println(w.name, "acquired")
			return co.Yield(workHold)
		case workHold:
			fmt.Println(w.name, "released")
			w.sem.Release()
		}
		return co.Return()
	}, nil)
}

func ExampleSemaphore() {
	var myExecutor cco.Executor

	mySemaphore := cco.NewSemaphore(1)

	myExecutor.Spawn(&worker{name: "a", sem: mySemaphore})
	myExecutor.Spawn(&worker{name: "b", sem: mySemaphore})

	myExecutor.Run()

	// Output:
	// a acquired
	// a released
	// b acquired
	// b released
}
