package session

import (
	"sync"
	"time"
)

// ResendCooldownSeconds is how long a device must wait between OTP requests.
const ResendCooldownSeconds = 60

// Cooldown is a decrementing resend timer. Start sets it to the full count
// and it ticks down once per interval until zero; Stop cancels the ticking
// goroutine on session teardown. The zero count means resend is available.
type Cooldown struct {
	mu        sync.Mutex
	seconds   int
	remaining int
	interval  time.Duration
	cancel    chan struct{}
}

// NewCooldown creates a stopped cooldown with one-second ticks.
func NewCooldown(seconds int) *Cooldown {
	return newCooldown(seconds, time.Second)
}

func newCooldown(seconds int, interval time.Duration) *Cooldown {
	return &Cooldown{seconds: seconds, interval: interval}
}

// Start resets the countdown to the full count and begins ticking,
// replacing any countdown already in flight.
func (c *Cooldown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		close(c.cancel)
	}
	c.remaining = c.seconds
	c.cancel = make(chan struct{})
	go c.run(c.cancel)
}

func (c *Cooldown) run(cancel chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.cancel != cancel {
				c.mu.Unlock()
				return
			}
			c.remaining--
			done := c.remaining <= 0
			if done {
				c.remaining = 0
				c.cancel = nil
			}
			c.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// Remaining reports the seconds left until resend becomes available.
func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Ready reports whether the countdown has finished (or never started).
func (c *Cooldown) Ready() bool {
	return c.Remaining() == 0
}

// Stop cancels the countdown and clears the remaining time. Safe to call
// on a stopped cooldown.
func (c *Cooldown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
	c.remaining = 0
}
