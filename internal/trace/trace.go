// Package trace records the steps of cco runtimes and stores them in
// msgpack files.
package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/b97tsk/cco"
)

// Version is the format version written in trace files.
const Version = 1

// Event is one recorded runtime step.
type Event struct {
	Runtime string `msgpack:"runtime"`
	Step    int    `msgpack:"step"`
	Task    string `msgpack:"task"`
	Result  int    `msgpack:"result"`
	Depth   int    `msgpack:"depth"`
	Popped  bool   `msgpack:"popped"`
}

// Signal returns the result of e as a [cco.Result].
func (e Event) Signal() cco.Result {
	return cco.Result(e.Result)
}

type file struct {
	Version int     `msgpack:"version"`
	Events  []Event `msgpack:"events"`
}

// Recorder collects events from one or more runtimes.
// It is safe for concurrent use, so that runtimes stepped by different
// goroutines may share it.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Observer returns a function suitable for [cco.WithObserver] that records
// steps under the given runtime label.
func (r *Recorder) Observer(label string) func(cco.StepInfo) {
	return func(s cco.StepInfo) {
		r.mu.Lock()
		r.events = append(r.events, Event{
			Runtime: label,
			Step:    s.Step,
			Task:    TaskName(s.Task),
			Result:  int(s.Result),
			Depth:   s.Depth,
			Popped:  s.Popped,
		})
		r.mu.Unlock()
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Results returns the recorded results, in order.
func (r *Recorder) Results() []cco.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]cco.Result, len(r.events))
	for i, e := range r.events {
		out[i] = e.Signal()
	}
	return out
}

// TaskName returns the unqualified type name of t, e.g. "parent" for
// a *demo.parent.
func TaskName(t cco.Task) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", t), "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Write encodes events into w.
func Write(w io.Writer, events []Event) error {
	return msgpack.NewEncoder(w).Encode(file{Version: Version, Events: events})
}

// Read decodes events from r.
func Read(r io.Reader) ([]Event, error) {
	var f file
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("trace: decode: %w", err)
	}
	if f.Version != Version {
		return nil, fmt.Errorf("trace: unsupported version %d", f.Version)
	}
	return f.Events, nil
}

// WriteFile writes events to the named file, replacing it atomically.
func WriteFile(name string, events []Event) (err error) {
	f, err := os.CreateTemp(filepath.Dir(name), "trace-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = f.Chmod(0o644); err != nil {
		_ = f.Close()
		return err
	}
	if err = Write(f, events); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), name)
}

// ReadFile reads events from the named file.
func ReadFile(name string) ([]Event, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
