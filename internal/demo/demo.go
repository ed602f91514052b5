// Package demo holds the scenarios run by the cco command.
package demo

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/b97tsk/cco"
)

// Options configure a scenario.
type Options struct {
	Depth     int
	Items     int
	Producers int
	Tick      time.Duration
	Clock     clockwork.Clock // nil creates a fake clock; fake clocks advance by Tick when idle
	Logger    *zap.Logger
	Observe   func(label string) func(cco.StepInfo) // per-runtime step observer, may be nil
}

func (o Options) runtimeOptions(label string) []cco.Option {
	opts := []cco.Option{cco.WithDepth(o.Depth), cco.WithLogger(o.Logger)}
	if o.Observe != nil {
		opts = append(opts, cco.WithObserver(o.Observe(label)))
	}
	return opts
}

func (o Options) withDefaults() Options {
	if o.Depth < 1 {
		o.Depth = cco.DefaultDepth
	}
	if o.Tick <= 0 {
		o.Tick = 10 * time.Millisecond
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewFakeClock()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// idle passes one tick: a fake clock is advanced, a real one slept on.
func (o Options) idle() {
	if fc, ok := o.Clock.(clockwork.FakeClock); ok {
		fc.Advance(o.Tick)
		return
	}
	cco.Sleep(o.Clock, o.Tick)
}

// A Scenario writes its output to w.
type Scenario func(ctx context.Context, w io.Writer, opts Options) error

var scenarios = map[string]Scenario{
	"iterpair":   IterPair,
	"interleave": Interleave,
	"tasks":      Tasks,
	"prodcons":   ProdCons,
}

// Names returns the names of every scenario, sorted.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run runs the named scenario.
func Run(ctx context.Context, name string, w io.Writer, opts Options) error {
	s, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("demo: unknown scenario %q (want one of %v)", name, Names())
	}
	return s(ctx, w, opts)
}
