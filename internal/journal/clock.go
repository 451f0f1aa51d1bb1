package journal

import "sync/atomic"

// Clock is the monotonic logical clock stamping journal records.
//
// Every attempt and artifact row carries a strictly increasing seq from this
// clock, so the recorded order is the attempt order regardless of wall clock.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though a run is appended by a single goroutine in practice.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
// Used when resuming a run from its last recorded position.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
