package cco_test

import (
	"fmt"
	"testing"

	"github.com/b97tsk/cco"
)

func TestResult(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		tests := []struct {
			r    cco.Result
			want string
		}{
			{cco.Done, "DONE"},
			{cco.Yield, "YIELD"},
			{cco.Await, "AWAIT"},
			{cco.Yield | cco.Await, "YIELD|AWAIT"},
			{cco.Yield | 5, "YIELD|5"},
			{7, "7"},
		}
		for _, tt := range tests {
			if got := tt.r.String(); got != tt.want {
				t.Errorf("Result(%d).String() = %q, want %q", int(tt.r), got, tt.want)
			}
		}
	})
	t.Run("Has", func(t *testing.T) {
		r := cco.Yield | cco.Await
		if !r.Has(cco.Yield) || !r.Has(cco.Await) || !r.Has(cco.Done) {
			t.Fatalf("%v should have every bit it carries.", r)
		}
		if cco.Yield.Has(cco.Await) {
			t.Fatal("YIELD should not have AWAIT.")
		}
	})
	t.Run("Pending", func(t *testing.T) {
		if cco.Done.Pending() {
			t.Fatal("DONE should not be pending.")
		}
		if !cco.Yield.Pending() || !cco.Await.Pending() {
			t.Fatal("YIELD and AWAIT should be pending.")
		}
	})
}

func TestPoint(t *testing.T) {
	var r fnRoutine
	r.step = func(co *cco.Coroutine) cco.Result { return co.Yield(3) }

	if got := r.State().String(); got != "start" {
		t.Fatalf("got %q, want %q", got, "start")
	}
	r.Resume()
	if got := r.State().String(); got != "3" {
		t.Fatalf("got %q, want %q", got, "3")
	}
	r.Stop()
	if got := r.State().String(); got != "cleanup" {
		t.Fatalf("got %q, want %q", got, "cleanup")
	}
	r.Resume()
	if got := fmt.Sprint(r.State()); got != "done" {
		t.Fatalf("got %q, want %q", got, "done")
	}
}

func ExampleResult_String() {
	fmt.Println(cco.Done, cco.Yield, cco.Await, cco.Yield|cco.Await, cco.Yield|5)

	// Output:
	// DONE YIELD AWAIT YIELD|AWAIT YIELD|5
}
