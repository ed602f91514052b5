package demo

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/b97tsk/cco"
)

// sliceGen yields the elements of a slice.
type sliceGen struct {
	cco.Coroutine
	items []int
	c     cco.Cursor[int]
	value int
}

const (
	_ cco.Point = iota
	sliceNext
)

func (g *sliceGen) Resume() cco.Result {
	return g.Run(g.step, nil)
}

func (g *sliceGen) step(co *cco.Coroutine) cco.Result {
	switch co.Point() {
	case cco.Start:
		g.c = cco.BeginSlice(g.items)
	case sliceNext:
		g.c.Next()
	}
	if g.c.Valid() {
		g.value = *g.c.Ref()
		return co.Yield(sliceNext)
	}
	return co.Return()
}

func (g *sliceGen) Value() int { return g.value }

// pull resumes g and reports whether it produced a value.
func (g *sliceGen) pull() bool {
	return g.Active() && g.Resume() != cco.Done
}

// interleaved alternates between two generators until both are exhausted.
type interleaved struct {
	cco.Coroutine
	x, y  sliceGen
	value int
}

const (
	_ cco.Point = iota
	fromX
	fromY
)

func (g *interleaved) Resume() cco.Result {
	return g.Run(g.step, nil)
}

func (g *interleaved) step(co *cco.Coroutine) cco.Result {
	skipX := co.Point() == fromX
	for g.x.Active() || g.y.Active() {
		if !skipX && g.x.pull() {
			g.value = g.x.value
			return co.Yield(fromX)
		}
		skipX = false
		if g.y.pull() {
			g.value = g.y.value
			return co.Yield(fromY)
		}
	}
	return co.Return()
}

func (g *interleaved) Value() int { return g.value }

// Interleave merges two sequences by taking turns, carrying on with
// the longer one once the shorter is exhausted.
func Interleave(_ context.Context, w io.Writer, opts Options) error {
	g := &interleaved{
		x: sliceGen{items: []int{2, 4, 6, 8, 10, 11}},
		y: sliceGen{items: []int{3, 5, 7, 9}},
	}
	var out []string
	for v := range cco.All[int](g) {
		out = append(out, fmt.Sprint(v))
	}
	_, err := fmt.Fprintln(w, strings.Join(out, " "))
	return err
}
