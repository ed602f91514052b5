package cco

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// A taskPanic is a panic recovered from a Task.
type taskPanic struct {
	task  string
	step  int // step during which the panic happened, 0 while canceling
	value any
	stack []byte
}

// panicstack collects the panics recovered by a Runtime, oldest first.
type panicstack []taskPanic

// catch calls f and recovers any panic raised by t inside it.
// It reports whether f returned normally.
func (ps *panicstack) catch(t Task, step int, f func()) (ok bool) {
	defer func() {
		if ok {
			return
		}
		v := recover()
		if v == nil {
			panic("cco: task " + taskName(t) + " called runtime.Goexit")
		}
		*ps = append(*ps, taskPanic{taskName(t), step, v, debug.Stack()})
	}()
	f()
	return true
}

// err returns the collected panics as an error, or nil if there are none.
func (ps panicstack) err() error {
	if len(ps) == 0 {
		return nil
	}
	return &panicError{items: append([]taskPanic(nil), ps...)}
}

// panicError is the error of a Runtime whose tasks panicked.
// Panic values that are errors can be matched with errors.Is and errors.As.
type panicError struct {
	items []taskPanic
}

func (pe *panicError) Error() string {
	var b strings.Builder
	for i, p := range pe.items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("cco: task ")
		b.WriteString(p.task)
		if p.step > 0 {
			fmt.Fprintf(&b, " panicked at step %d: %v", p.step, p.value)
		} else {
			fmt.Fprintf(&b, " panicked while canceling: %v", p.value)
		}
		if p.stack != nil {
			b.WriteString("\n\n")
			b.Write(p.stack)
		}
	}
	return b.String()
}

func (pe *panicError) Unwrap() []error {
	var errs []error
	for _, p := range pe.items {
		if err, ok := p.value.(error); ok {
			errs = append(errs, err)
		}
	}
	return errs
}
