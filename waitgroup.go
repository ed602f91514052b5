package cco

// A WaitGroup is a counter that computations can await to reach zero.
//
// Like [Semaphore], a WaitGroup keeps no waiter list: waiters re-check the
// counter each time they are re-entered.
//
// A WaitGroup must not be shared by more than one scheduler goroutine.
type WaitGroup struct {
	n int
}

// Add adds delta, which may be negative, to the [WaitGroup] counter.
// If the [WaitGroup] counter is negative, Add panics.
func (wg *WaitGroup) Add(delta int) {
	if wg.n >= 0 {
		wg.n += delta
	}
	if wg.n < 0 {
		panic("cco(WaitGroup): negative counter")
	}
}

// Done decrements the [WaitGroup] counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Count returns the [WaitGroup] counter.
func (wg *WaitGroup) Count() int {
	return wg.n
}

// AwaitWaitGroup records p and awaits until the counter of wg becomes zero.
func (co *Coroutine) AwaitWaitGroup(p Point, wg *WaitGroup) Result {
	return co.Await(p, wg.n == 0)
}
