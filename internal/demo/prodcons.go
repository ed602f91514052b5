package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/b97tsk/cco"
)

type item struct {
	producer, seq int
}

// buffer is the state shared by the prodcons tasks. Every task runs on
// the same executor goroutine, so none of it needs locking.
type buffer struct {
	free   *cco.Semaphore // empty slots
	filled *cco.Semaphore // items ready
	items  []item
	active cco.WaitGroup // producers still running
	clock  clockwork.Clock
	start  time.Time
	out    io.Writer
}

func (b *buffer) logf(format string, args ...any) {
	fmt.Fprintf(b.out, "%6v ", b.clock.Since(b.start))
	fmt.Fprintf(b.out, format+"\n", args...)
}

type producer struct {
	cco.TaskState
	id, n, i int
	delay    time.Duration
	tm       *cco.Timer
	b        *buffer
}

const (
	_ cco.Point = iota
	produceLoop
	produceDelay
	produceSlot
)

func (p *producer) Resume(*cco.Runtime) cco.Result {
	return p.Run(p.step, func() {
		p.b.logf("producer %d: exit after %d items", p.id, p.i)
		p.b.active.Done()
	})
}

func (p *producer) step(co *cco.Coroutine) cco.Result {
	at := co.Point()
	for {
		switch at {
		case cco.Start:
			p.tm = cco.NewTimer(p.b.clock, p.delay)
			at = produceLoop
		case produceLoop:
			if p.i == p.n {
				return co.Return()
			}
			at = produceDelay
		case produceDelay:
			if r := co.AwaitTimer(produceDelay, p.tm, p.delay); r.Pending() {
				return r
			}
			at = produceSlot
		case produceSlot:
			if r := co.AwaitSemaphore(produceSlot, p.b.free); r.Pending() {
				return r
			}
			p.b.items = append(p.b.items, item{p.id, p.i})
			p.b.filled.Release()
			p.b.logf("producer %d: put #%d", p.id, p.i)
			p.i++
			at = produceLoop
		}
	}
}

type consumer struct {
	cco.TaskState
	want, got int
	work      time.Duration
	tm        *cco.Timer
	b         *buffer
}

const (
	_ cco.Point = iota
	consumeLoop
	consumeWait
	consumeWork
)

func (c *consumer) Resume(*cco.Runtime) cco.Result {
	return c.Run(c.step, func() {
		c.b.logf("consumer: exit after %d items", c.got)
	})
}

func (c *consumer) step(co *cco.Coroutine) cco.Result {
	at := co.Point()
	for {
		switch at {
		case cco.Start:
			c.tm = cco.NewTimer(c.b.clock, c.work)
			at = consumeLoop
		case consumeLoop:
			if c.got == c.want {
				return co.Return()
			}
			at = consumeWait
		case consumeWait:
			if r := co.AwaitSemaphore(consumeWait, c.b.filled); r.Pending() {
				return r
			}
			it := c.b.items[0]
			c.b.items = c.b.items[1:]
			c.b.free.Release()
			c.b.logf("consumer: got #%d from producer %d", it.seq, it.producer)
			c.got++
			at = consumeWork
		case consumeWork:
			if r := co.AwaitTimer(consumeWork, c.tm, c.work); r.Pending() {
				return r
			}
			at = consumeLoop
		}
	}
}

// reporter waits for every producer to exit.
type reporter struct {
	cco.TaskState
	b *buffer
}

const (
	_ cco.Point = iota
	reportWait
)

func (r *reporter) Resume(*cco.Runtime) cco.Result {
	return r.Run(func(co *cco.Coroutine) cco.Result {
		if res := co.AwaitWaitGroup(reportWait, &r.b.active); res.Pending() {
			return res
		}
		r.b.logf("reporter: all producers done, %d items buffered", len(r.b.items))
		return co.Return()
	}, nil)
}

// ProdCons runs Producers producers of Items items each and one slow
// consumer over a two-slot buffer, on one executor driven by a virtual
// clock that advances by Tick whenever every task is blocked.
func ProdCons(ctx context.Context, w io.Writer, opts Options) error {
	opts = opts.withDefaults()
	clock := opts.Clock
	b := &buffer{
		free:   cco.NewSemaphore(2),
		filled: cco.NewSemaphore(0),
		clock:  clock,
		start:  clock.Now(),
		out:    w,
	}

	var e cco.Executor
	e.SetLogger(opts.Logger)

	var runtimes []*cco.Runtime
	e.SetIdle(func() {
		if ctx.Err() != nil {
			for _, rt := range runtimes {
				rt.Cancel()
			}
			return
		}
		opts.idle()
	})

	for id := range opts.Producers {
		b.active.Add(1)
		p := &producer{id: id, n: opts.Items, delay: time.Duration(id+1) * opts.Tick, b: b}
		runtimes = append(runtimes, e.Spawn(p, opts.runtimeOptions(fmt.Sprintf("producer-%d", id))...))
	}
	c := &consumer{want: opts.Producers * opts.Items, work: 3 * opts.Tick, b: b}
	runtimes = append(runtimes, e.Spawn(c, opts.runtimeOptions("consumer")...))
	runtimes = append(runtimes, e.Spawn(&reporter{b: b}, opts.runtimeOptions("reporter")...))

	e.Run()

	if err := e.Err(); err != nil {
		return err
	}
	return ctx.Err()
}
