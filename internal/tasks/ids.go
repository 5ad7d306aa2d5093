package tasks

import (
	"sync/atomic"
	"time"
)

// IDSource hands out task and checklist item IDs.
//
// Next must return strictly increasing values. Observe tells the source
// about an ID that is already in use so that later IDs are larger.
type IDSource interface {
	Next() int64
	Observe(id int64)
}

// Clock is the default IDSource: millisecond wall-clock timestamps, bumped
// past the last issued value when two calls land in the same millisecond.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
type Clock struct {
	last atomic.Int64
	now  func() time.Time
}

// NewClock creates a clock reading the system time.
func NewClock() *Clock {
	return NewClockFunc(time.Now)
}

// NewClockFunc creates a clock reading time from now.
func NewClockFunc(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Next returns max(now in ms, last+1).
func (c *Clock) Next() int64 {
	for {
		prev := c.last.Load()
		next := max(c.now().UnixMilli(), prev+1)
		if c.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}

// Observe raises the clock so the next ID is greater than id.
func (c *Clock) Observe(id int64) {
	for {
		prev := c.last.Load()
		if id <= prev || c.last.CompareAndSwap(prev, id) {
			return
		}
	}
}

// Current returns the last issued or observed value.
func (c *Clock) Current() int64 {
	return c.last.Load()
}
