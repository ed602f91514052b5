package cco_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/b97tsk/cco"
)

// fnRoutine runs whatever step and cleanup it is given.
type fnRoutine struct {
	cco.Coroutine
	step    cco.StepFunc
	cleanup func()
}

func (r *fnRoutine) Resume() cco.Result {
	return r.Run(r.step, r.cleanup)
}

// yieldN returns a routine that yields n times, counting its steps and
// cleanups.
func yieldN(n int, steps, cleanups *int) *fnRoutine {
	const next cco.Point = 1
	i := 0
	return &fnRoutine{
		step: func(co *cco.Coroutine) cco.Result {
			*steps++
			switch co.Point() {
			case next:
				i++
			}
			if i < n {
				return co.Yield(next)
			}
			return co.Return()
		},
		cleanup: func() { *cleanups++ },
	}
}

func TestCoroutine(t *testing.T) {
	t.Run("Yield", func(t *testing.T) {
		var steps, cleanups int
		r := yieldN(3, &steps, &cleanups)

		var got []cco.Result
		for res := range cco.Drive(r.Resume) {
			got = append(got, res)
		}

		want := []cco.Result{cco.Yield, cco.Yield, cco.Yield}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("results mismatch (-want +got):\n%s", diff)
		}
		if steps != 4 || cleanups != 1 {
			t.Fatalf("steps = %d, cleanups = %d; want 4 and 1", steps, cleanups)
		}
		if !r.Done() || r.Active() {
			t.Fatal("A finished routine should be done.")
		}
	})
	t.Run("StopBeforeStart", func(t *testing.T) {
		var steps, cleanups int
		r := yieldN(3, &steps, &cleanups)

		r.Stop()

		if res := r.Resume(); res != cco.Done {
			t.Fatalf("got %v, want DONE", res)
		}
		if steps != 0 || cleanups != 1 {
			t.Fatalf("steps = %d, cleanups = %d; want 0 and 1", steps, cleanups)
		}
	})
	t.Run("StopTwice", func(t *testing.T) {
		var steps, cleanups int
		r := yieldN(3, &steps, &cleanups)

		r.Resume()
		r.Stop()
		r.Stop()
		r.Resume()
		r.Stop()

		if cleanups != 1 {
			t.Fatalf("cleanups = %d, want 1", cleanups)
		}
		if !r.Done() {
			t.Fatal("Stop after done should leave a routine done.")
		}
	})
	t.Run("Cancel", func(t *testing.T) {
		var steps, cleanups int
		r := yieldN(3, &steps, &cleanups)

		r.Resume()
		cco.Cancel(r)
		cco.Cancel(r)

		if steps != 1 || cleanups != 1 {
			t.Fatalf("steps = %d, cleanups = %d; want 1 and 1", steps, cleanups)
		}
	})
	t.Run("ResumeAfterDone", func(t *testing.T) {
		var steps, cleanups int
		r := yieldN(0, &steps, &cleanups)

		r.Resume()

		defer func() {
			v := recover()
			if err, ok := v.(error); !ok || !errors.Is(err, cco.ErrDone) {
				t.Fatalf("recovered %v, want ErrDone", v)
			}
		}()
		r.Resume()
	})
	t.Run("Reset", func(t *testing.T) {
		var steps, cleanups int
		r := yieldN(1, &steps, &cleanups)

		for range cco.Drive(r.Resume) {
		}
		r.Reset()

		if !r.Initial() {
			t.Fatal("Reset should put a routine back at start.")
		}

		// The counter in yieldN is not reset, so the rerun finishes at once.
		if res := r.Resume(); res != cco.Done {
			t.Fatalf("got %v, want DONE", res)
		}
		if steps != 3 || cleanups != 2 {
			t.Fatalf("steps = %d, cleanups = %d; want 3 and 2", steps, cleanups)
		}
	})
	t.Run("YieldFinal", func(t *testing.T) {
		steps, cleanups := 0, 0
		r := &fnRoutine{
			step: func(co *cco.Coroutine) cco.Result {
				steps++
				return co.YieldFinal()
			},
			cleanup: func() { cleanups++ },
		}

		if res := r.Resume(); res != cco.Yield {
			t.Fatalf("got %v, want YIELD", res)
		}
		if cleanups != 0 {
			t.Fatal("YieldFinal should not run cleanup yet.")
		}
		if res := r.Resume(); res != cco.Done {
			t.Fatalf("got %v, want DONE", res)
		}
		if steps != 1 || cleanups != 1 {
			t.Fatalf("steps = %d, cleanups = %d; want 1 and 1", steps, cleanups)
		}
	})
	t.Run("Await", func(t *testing.T) {
		const waitReady cco.Point = 7
		ready := false
		var points []cco.Point
		r := &fnRoutine{
			step: func(co *cco.Coroutine) cco.Result {
				points = append(points, co.Point())
				if res := co.Await(waitReady, ready); res.Pending() {
					return res
				}
				return co.Return()
			},
		}

		if res := r.Resume(); res != cco.Await {
			t.Fatalf("got %v, want AWAIT", res)
		}
		if r.State() != waitReady {
			t.Fatalf("State() = %v, want %v", r.State(), waitReady)
		}

		ready = true

		if res := r.Resume(); res != cco.Done {
			t.Fatalf("got %v, want DONE", res)
		}
		if diff := cmp.Diff([]cco.Point{cco.Start, waitReady}, points); diff != "" {
			t.Fatalf("points mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("AwaitRoutine", func(t *testing.T) {
		const waitChild cco.Point = 1
		for _, tt := range []struct {
			mask    cco.Result
			results int
			active  bool
		}{
			{cco.Done, 2, false},
			{cco.Yield, 0, true},
		} {
			var steps, cleanups int
			child := yieldN(2, &steps, &cleanups)
			parent := &fnRoutine{
				step: func(co *cco.Coroutine) cco.Result {
					if r := co.AwaitRoutine(waitChild, child.Resume(), tt.mask); r.Pending() {
						return r
					}
					return co.Return()
				},
			}

			n := 0
			for range cco.Drive(parent.Resume) {
				n++
			}

			if n != tt.results {
				t.Errorf("mask %v: parent yielded %d times, want %d", tt.mask, n, tt.results)
			}
			if child.Active() != tt.active {
				t.Errorf("mask %v: child.Active() = %v, want %v", tt.mask, child.Active(), tt.active)
			}
		}
	})
	t.Run("BadPoint", func(t *testing.T) {
		r := &fnRoutine{
			step: func(co *cco.Coroutine) cco.Result { return co.Yield(cco.Start) },
		}
		defer func() {
			if recover() == nil {
				t.Fatal("Yield should panic on a non-positive point.")
			}
		}()
		r.Resume()
	})
	t.Run("YieldDone", func(t *testing.T) {
		r := &fnRoutine{
			step: func(co *cco.Coroutine) cco.Result { return co.YieldValue(1, cco.Done) },
		}
		defer func() {
			if recover() == nil {
				t.Fatal("YieldValue should panic on DONE.")
			}
		}()
		r.Resume()
	})
	t.Run("DriveBreak", func(t *testing.T) {
		var steps, cleanups int
		r := yieldN(5, &steps, &cleanups)

		for range cco.Drive(r.Resume) {
			break
		}

		if !r.Suspended() || cleanups != 0 {
			t.Fatal("Breaking out of Drive should leave a routine suspended.")
		}
	})
}
