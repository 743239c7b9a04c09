// Package progress provides an optional, engine-agnostic way to observe
// search activity without affecting its outcome: removing every Tick call
// an engine makes must not change its result.
package progress

import "sync/atomic"

// Sink receives a Tick at coarse points in a search: one piece placed
// (backtracking), one exact-cover row covered (dancing links), or once for
// the whole solve (integer programming). step is a monotonically
// increasing count since the search began; it carries no other meaning
// across algorithms.
type Sink interface {
	Tick(step int)
}

// Counter is a Sink that only accumulates a total, safe for the
// single-threaded engines in this module and for a caller reading it from
// another goroutine while a search is in flight.
type Counter struct {
	n atomic.Int64
}

// Tick increments the counter by one and ignores step.
func (c *Counter) Tick(int) {
	c.n.Add(1)
}

// Total returns the number of ticks observed so far.
func (c *Counter) Total() int64 {
	return c.n.Load()
}
