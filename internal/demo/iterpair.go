package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/b97tsk/cco"
)

// pairs yields every (x, y) of a maxX by maxY grid, row by row.
type pairs struct {
	cco.Coroutine
	maxX, maxY int
	x, y       int
	out        io.Writer
}

const (
	_ cco.Point = iota
	pairNext
)

func (g *pairs) Resume() cco.Result {
	return g.Run(g.step, g.cleanup)
}

func (g *pairs) step(co *cco.Coroutine) cco.Result {
	switch co.Point() {
	case cco.Start:
		g.x, g.y = 0, 0
	case pairNext:
		if g.y++; g.y == g.maxY {
			g.x, g.y = g.x+1, 0
		}
	}
	if g.x < g.maxX && g.maxY > 0 {
		return co.Yield(pairNext)
	}
	return co.Return()
}

func (g *pairs) cleanup() {
	fmt.Fprintln(g.out, "done")
}

func (g *pairs) Value() [2]int {
	return [2]int{g.x, g.y}
}

// IterPair walks an Items by Items grid and stops two pairs short of
// the end, which cancels the generator into its cleanup.
func IterPair(_ context.Context, w io.Writer, opts Options) error {
	opts = opts.withDefaults()
	g := &pairs{maxX: opts.Items, maxY: opts.Items, out: w}
	for p := range cco.Take[[2]int](g, max(opts.Items*opts.Items-2, 0)) {
		fmt.Fprintln(w, p[0], p[1])
	}
	return nil
}
