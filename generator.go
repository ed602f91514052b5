package cco

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// A Generator is a resumable computation that produces a value at each of
// its yields.
//
// Any record that embeds a [Coroutine], has a Resume method returning
// [Yield] whenever a new value is ready, and a Value method returning that
// value, implements Generator.
type Generator[T any] interface {
	Routine
	Value() T
}

// An Iterator adapts a [Generator] to the begin/next iteration contract:
//
//	for it := cco.Begin(g); it.Valid(); it.Next() {
//		fmt.Println(*it.Ref())
//	}
type Iterator[T any] struct {
	gen  Generator[T]
	ref  *T
	cur  T
	done bool
}

// Begin creates an [Iterator] over g and advances it to the first value.
// If g finishes without yielding, the iterator starts exhausted.
func Begin[T any](g Generator[T]) Iterator[T] {
	it := Iterator[T]{gen: g}
	it.Next()
	return it
}

// Next advances it to the next value of the underlying generator.
// Once the generator finishes, it becomes exhausted and Next does nothing.
func (it *Iterator[T]) Next() {
	if it.done {
		return
	}
	if !it.gen.Active() || it.gen.Resume() == Done {
		it.exhaust()
		return
	}
	it.cur = it.gen.Value()
	it.ref = &it.cur
}

func (it *Iterator[T]) exhaust() {
	var zero T
	it.cur = zero
	it.ref = nil
	it.done = true
}

// Ref returns a reference to the current value, or nil once it is
// exhausted.
func (it *Iterator[T]) Ref() *T {
	return it.ref
}

// Valid reports whether it holds a value.
func (it *Iterator[T]) Valid() bool {
	return it.ref != nil
}

// Stop cancels the underlying generator, running its cleanup, and leaves it
// exhausted. Stop on an exhausted iterator does nothing.
func (it *Iterator[T]) Stop() {
	if it.done {
		return
	}
	Cancel(it.gen)
	it.exhaust()
}

// All returns an iterator over every value g produces.
// Breaking out of the loop early cancels g.
func All[T any](g Generator[T]) iter.Seq[T] {
	return TakeWhile(g, func(T) bool { return true })
}

// Take returns an iterator over at most the first n values g produces.
// Once n values have been produced, g is cancelled straight into its
// cleanup, even if it would have yielded more.
func Take[T any, N constraints.Integer](g Generator[T], n N) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			Cancel(g)
			return
		}
		var count N
		it := Begin(g)
		defer it.Stop()
		for ; it.Valid(); it.Next() {
			count++
			if !yield(*it.Ref()) || count == n {
				return
			}
		}
	}
}

// TakeWhile returns an iterator over the values g produces, up to and
// excluding the first one for which pred returns false.
// At that point g is cancelled straight into its cleanup.
func TakeWhile[T any](g Generator[T], pred func(v T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		it := Begin(g)
		defer it.Stop()
		for ; it.Valid(); it.Next() {
			if v := *it.Ref(); !pred(v) || !yield(v) {
				return
			}
		}
	}
}
