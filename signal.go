package cco

import (
	"strconv"
	"strings"
)

// Result is the signal returned by every invocation of a resumable function
// or a [Task].
//
// Result is a bit set. [Done] is zero; [Yield] and [Await] are disjoint high
// bits. Low bits are free for callers that want to return their own values
// alongside a suspension (see [Coroutine.YieldValue]).
type Result int

const (
	// Done reports that a computation has finished and must not be
	// invoked again.
	Done Result = 0
	// Yield reports that a value is ready and the computation is still
	// resumable.
	Yield Result = 1 << 29
	// Await reports that the computation is blocked on a condition and is
	// still resumable.
	Await Result = 1 << 30
)

var resultNames = []struct {
	bit  Result
	name string
}{
	{Yield, "YIELD"},
	{Await, "AWAIT"},
}

// Pending reports whether r is anything but [Done].
func (r Result) Pending() bool {
	return r != Done
}

// Has reports whether every bit of bits is set in r.
// Has(Done) is always true.
func (r Result) Has(bits Result) bool {
	return r&bits == bits
}

// String formats r as its flag names joined by "|", e.g. "YIELD|AWAIT".
// Bits without a name are printed as a decimal remainder.
func (r Result) String() string {
	if r == Done {
		return "DONE"
	}
	var b strings.Builder
	rest := r
	for _, f := range resultNames {
		if rest&f.bit == f.bit {
			rest ^= f.bit
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(f.name)
		}
	}
	if rest != 0 {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.Itoa(int(rest)))
	}
	return b.String()
}
