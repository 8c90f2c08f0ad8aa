package mocks

import (
	"sync"
	"time"

	"eke/shared/clock"
)

type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock frozen at the given time. Advance moves it forward.
func NewClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

var _ clock.Clock = (*FakeClock)(nil)

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}
