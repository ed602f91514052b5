package cco

import "strconv"

// A Point is the value held by the resumption cell of a [Coroutine].
//
// Zero is [Start]. Positive values are suspension points; each resumable
// function declares its own, usually as a named enum:
//
//	const (
//		_ cco.Point = iota
//		afterYield
//		waitReady
//	)
//
// Values must be distinct within a single function so that re-entry
// dispatches to the right place. Negative values are reserved.
type Point int

const (
	// Start is the cell value of a computation that has not run yet.
	Start Point = 0

	cleanupPoint Point = -1
	donePoint    Point = -2

	// Set on Coroutine.resume once an await at the entry point has been
	// satisfied, so that a later await at the same point starts over.
	runningPoint Point = -3
)

// String returns "start", "cleanup", "done" or the decimal marker.
func (p Point) String() string {
	switch p {
	case Start:
		return "start"
	case cleanupPoint:
		return "cleanup"
	case donePoint:
		return "done"
	}
	return strconv.Itoa(int(p))
}

// State returns the raw value of the resumption cell of co:
// 0 before the first invocation, a positive marker while suspended,
// -1 while cleanup is pending and -2 once finished.
func (co *Coroutine) State() Point {
	return co.state
}

// Initial reports whether co has not been invoked yet.
func (co *Coroutine) Initial() bool {
	return co.state == Start
}

// Suspended reports whether co is parked at one of its suspension points.
func (co *Coroutine) Suspended() bool {
	return co.state > Start
}

// Done reports whether co has finished.
func (co *Coroutine) Done() bool {
	return co.state == donePoint
}

// Active reports whether co has not finished yet.
func (co *Coroutine) Active() bool {
	return co.state != donePoint
}
