package fleet

import (
	"sync"
	"time"
)

// SimClock owns the single shared time anchor of the simulation. Each
// Advance converts the caller's speed multiplier into a simulated-seconds
// budget for one tick. The budget is BaseTickSeconds*multiplier regardless
// of wall-clock time between calls: total simulated distance depends on
// tick count, not elapsed time.
type SimClock struct {
	mu       sync.Mutex
	now      func() time.Time
	lastTick time.Time
}

func NewSimClock(now func() time.Time) *SimClock {
	if now == nil {
		now = time.Now
	}
	return &SimClock{now: now, lastTick: now()}
}

// Advance validates multiplier and returns the simulated seconds for one
// tick, updating the shared anchor.
func (c *SimClock) Advance(multiplier float64) (float64, error) {
	if err := ValidateSpeedMultiplier(multiplier); err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.lastTick = c.now()
	c.mu.Unlock()
	return BaseTickSeconds * multiplier, nil
}

// LastTick reports when the anchor was last moved.
func (c *SimClock) LastTick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTick
}

// Reset re-anchors the clock so no time jump is visible after a fleet reset.
func (c *SimClock) Reset() {
	c.mu.Lock()
	c.lastTick = c.now()
	c.mu.Unlock()
}

func ValidateSpeedMultiplier(m float64) error {
	if m < MinSpeedMultiplier || m > MaxSpeedMultiplier {
		return ErrSpeedOutOfRange
	}
	return nil
}
