package testutil

import "sync"

// DeterministicClock is a thread-safe ID sequence for tests.
//
// Unlike tasks.Clock it ignores wall time, so the same scenario always
// receives the same task and checklist item IDs. It can be reset for reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu  sync.Mutex
	seq int64
}

// NewDeterministicClock creates a new deterministic clock starting at 0.
//
// The first call to Next() returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{seq: 0}
}

// Next increments and returns the next ID.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Observe advances the clock so that Next returns a value above id.
func (c *DeterministicClock) Observe(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id > c.seq {
		c.seq = id
	}
}

// Current returns the current sequence number without incrementing.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset resets the clock to 0.
//
// After Reset(), the next call to Next() returns 1.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
