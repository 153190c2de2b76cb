package model

import (
	"sync"
	"time"
)

// Clock is one side's countdown clock. It is started when the opponent
// completes a move and stopped when its own side moves; when the remaining
// time runs out while running, onExpire fires once. The game engine itself
// is clock-agnostic, this is the external collaborator that reports flag
// fall.
type Clock struct {
	mu          sync.Mutex
	remaining   time.Duration
	lastStarted time.Time
	running     bool
	timer       *time.Timer
	onExpire    func()
}

func NewClock(initial time.Duration, onExpire func()) *Clock {
	return &Clock{
		remaining: initial,
		onExpire:  onExpire,
	}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running || c.remaining <= 0 {
		return
	}
	c.lastStarted = time.Now()
	c.running = true
	c.timer = time.AfterFunc(c.remaining, c.expire)
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.remaining -= time.Since(c.lastStarted)
	if c.remaining < 0 {
		c.remaining = 0
	}
	c.running = false
	c.timer.Stop()
}

func (c *Clock) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return c.remaining - time.Since(c.lastStarted)
	}
	return c.remaining
}

func (c *Clock) expire() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.remaining = 0
	c.running = false
	cb := c.onExpire
	// Release before the callback so it may call back into Stop/Remaining.
	c.mu.Unlock()

	if cb != nil {
		cb()
	}
}
