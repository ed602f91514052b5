package cco

// A Cursor walks a slice by the begin/next iteration contract.
//
// Unlike a range loop, a Cursor can live in the record of a resumable
// function, so iteration survives suspension:
//
//	case cco.Start:
//		g.c = cco.BeginSlice(g.items)
//	case afterYield:
//		g.c.Next()
//	}
//	if g.c.Valid() {
//		g.value = *g.c.Ref()
//		return co.Yield(afterYield)
//	}
type Cursor[T any] struct {
	s    []T
	i    int
	step int
	ref  *T
}

// BeginSlice returns a [Cursor] at the first element of s.
func BeginSlice[T any](s []T) Cursor[T] {
	c := Cursor[T]{s: s, i: 0, step: 1}
	c.seek()
	return c
}

// RBeginSlice returns a [Cursor] at the last element of s, walking
// backward.
func RBeginSlice[T any](s []T) Cursor[T] {
	c := Cursor[T]{s: s, i: len(s) - 1, step: -1}
	c.seek()
	return c
}

func (c *Cursor[T]) seek() {
	if c.i >= 0 && c.i < len(c.s) {
		c.ref = &c.s[c.i]
		return
	}
	c.ref = nil
}

// Next moves c one element forward (or backward, for a reverse cursor).
func (c *Cursor[T]) Next() {
	if c.ref == nil {
		return
	}
	c.i += c.step
	c.seek()
}

// Ref returns a reference to the current element, or nil once c is
// exhausted.
func (c *Cursor[T]) Ref() *T {
	return c.ref
}

// Valid reports whether c is at an element.
func (c *Cursor[T]) Valid() bool {
	return c.ref != nil
}

// Index returns the index of the current element in the underlying slice.
func (c *Cursor[T]) Index() int {
	return c.i
}
