package cco

import (
	"errors"
	"sync"

	"github.com/gammazero/deque"
	"go.uber.org/zap"
)

// An Executor multiplexes many [Runtime] instances on a single goroutine.
//
// Spawning a root [Task] wraps it in a Runtime and appends that to a FIFO
// queue. The Run method takes the Runtime at the front, performs one step,
// and appends it again if it is still running, until the queue drains.
// Runtimes take turns without priorities. A step that blocks the goroutine
// blocks every other Runtime too, so steps should never block.
//
// Instead of calling Run by hand, one can install an autorun function with
// the Autorun method. Spawn then starts it whenever the queue was idle.
// The autorun function is never called twice at the same time.
type Executor struct {
	mu      sync.Mutex
	queue   deque.Deque[*Runtime]
	running bool
	autorun func()
	idle    func()
	logger  *zap.Logger
	errs    []error
}

// SetLogger sets the logger of e, which is also passed on to every Runtime
// spawned afterwards.
func (e *Executor) SetLogger(l *zap.Logger) {
	e.mu.Lock()
	e.logger = l
	e.mu.Unlock()
}

func (e *Executor) log() *zap.Logger {
	if e.logger == nil {
		return zap.NewNop()
	}
	return e.logger
}

// Autorun installs f as the autorun function of e.
// f must end up calling the Run method, directly or on another goroutine.
// Spawn calls f synchronously, so a blocking f makes Spawn block as well.
func (e *Executor) Autorun(f func()) {
	e.autorun = f
}

// SetIdle sets up a function to call whenever every queued [Runtime] has
// just reported [Await], i.e. a whole round went by without progress.
// Typical idle functions sleep for a tick or advance a fake clock.
//
// Without an idle function, Run keeps polling blocked runtimes.
func (e *Executor) SetIdle(f func()) {
	e.mu.Lock()
	e.idle = f
	e.mu.Unlock()
}

// Run steps every [Runtime] in the queue until the queue is emptied.
//
// A Runtime that fails leaves the queue; its error is kept and reported by
// the Err method.
//
// Calls to Run must not overlap.
func (e *Executor) Run() {
	e.mu.Lock()
	e.running = true

	awaiting := 0

	for e.queue.Len() != 0 {
		rt := e.queue.PopFront()

		e.mu.Unlock()
		r, err := rt.Step()
		e.mu.Lock()

		switch {
		case err != nil:
			e.errs = append(e.errs, err)
			e.log().Warn("runtime failed", zap.Int("steps", rt.Steps()), zap.Error(err))
			awaiting = 0
		case rt.Running():
			e.queue.PushBack(rt)
			if r == Await {
				awaiting++
			} else {
				awaiting = 0
			}
		default:
			e.log().Debug("runtime finished", zap.Int("steps", rt.Steps()))
			awaiting = 0
		}

		if idle := e.idle; idle != nil && awaiting != 0 && awaiting >= e.queue.Len() {
			awaiting = 0
			e.mu.Unlock()
			idle()
			e.mu.Lock()
		}
	}

	e.running = false
	e.mu.Unlock()
}

// Spawn creates a [Runtime] to run root, configured with opts, and queues
// it. The Runtime logs to the logger of e unless opts say otherwise.
//
// Nothing runs until Run is called, either by hand or by the autorun
// function. Spawn may be called from any goroutine.
func (e *Executor) Spawn(root Task, opts ...Option) *Runtime {
	e.mu.Lock()
	logger := e.log()
	e.mu.Unlock()

	opts = append([]Option{WithLogger(logger)}, opts...)
	rt := NewRuntime(root, opts...)
	logger.Debug("runtime spawned", zap.String("task", taskName(root)), zap.Int("limit", rt.Limit()))
	e.enqueue(rt)
	return rt
}

func (e *Executor) enqueue(rt *Runtime) {
	var autorun func()

	e.mu.Lock()

	if !e.running && e.autorun != nil {
		e.running = true
		autorun = e.autorun
	}

	e.queue.PushBack(rt)
	e.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}

// Len returns the number of runtimes waiting in the queue.
func (e *Executor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len()
}

// Err returns the errors of every failed [Runtime], joined.
func (e *Executor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return errors.Join(e.errs...)
}
