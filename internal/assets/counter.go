package assets

import (
	"sync"
	"sync/atomic"
)

// Counter joins a fixed number of load attempts. Every attempt counts, successful or not,
// so a broken asset can never hold readiness back. The ready hook fires exactly once,
// when the last attempt lands; extra completions are ignored so loaded never exceeds expected.
type Counter struct {
	expected int32
	loaded   atomic.Int32
	failed   atomic.Int32
	once     sync.Once
	onReady  func()
	// OnProgress, if set, is called after each counted attempt with the running totals.
	OnProgress func(loaded, expected int)
}

// NewCounter returns a counter waiting for expected attempts. onReady may be nil.
func NewCounter(expected int, onReady func()) *Counter {
	if expected < 0 {
		expected = 0
	}
	return &Counter{expected: int32(expected), onReady: onReady}
}

// Done records one finished attempt; err marks it as failed. It reports whether the
// attempt was counted (false once all expected attempts are in).
func (c *Counter) Done(err error) bool {
	for {
		n := c.loaded.Load()
		if n >= c.expected {
			return false
		}
		if c.loaded.CompareAndSwap(n, n+1) {
			if err != nil {
				c.failed.Add(1)
			}
			if c.OnProgress != nil {
				c.OnProgress(int(n+1), int(c.expected))
			}
			if n+1 == c.expected {
				c.fire()
			}
			return true
		}
	}
}

func (c *Counter) fire() {
	c.once.Do(func() {
		if c.onReady != nil {
			c.onReady()
		}
	})
}

// Loaded returns how many attempts have completed.
func (c *Counter) Loaded() int { return int(c.loaded.Load()) }

// Failed returns how many completed attempts were failures.
func (c *Counter) Failed() int { return int(c.failed.Load()) }

// Expected returns the fixed number of attempts.
func (c *Counter) Expected() int { return int(c.expected) }

// Ready reports whether every expected attempt has completed.
func (c *Counter) Ready() bool { return c.loaded.Load() == c.expected }
