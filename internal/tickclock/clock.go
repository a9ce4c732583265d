// Package tickclock reconstructs a monotonic milliseconds-since-start
// timeline from the controller's free-running 32-bit tick counter.
//
// The counter is 1 kHz and wraps to 0 after MaxTick. It also restarts
// from an arbitrary value when the controller itself restarts, so a tick
// going backwards is ambiguous: the two cases are told apart by how close
// the previous tick was to the wrap boundary.
//
// Clock is not goroutine-safe. One instance is created per conversion run
// and threaded through the normalization pass by its single caller.
package tickclock

import "errors"

// MaxTick is the largest value of the controller's tick counter.
const MaxTick uint64 = 1<<32 - 1

// overflowWindow is how close (in ticks) the previous tick has to be to
// the wrap boundary for a backward jump to count as a genuine overflow
// rather than a controller restart.
const overflowWindow = 5000

// ErrNotStarted reports a Normalize call before Start established the
// first tick. That ordering is the driver's responsibility.
var ErrNotStarted = errors.New("tickclock: clock not started")

// Clock holds the reconstruction state for one conversion run.
type Clock struct {
	started      bool
	firstTick    uint64
	previousTick uint64
	bonusMS      uint64
}

// Started reports whether a first tick has been established.
func (c *Clock) Started() bool { return c.started }

// Start establishes the first tick of the run. Normalizing that same tick
// afterwards yields 0.
func (c *Clock) Start(tick uint64) {
	c.started = true
	c.firstTick = tick
	c.previousTick = tick
	c.bonusMS = 0
}

// Normalize converts a raw tick into milliseconds since the start of the
// run.
//
// While ticks grow monotonically the elapsed time is simply the distance
// to the first tick. A tick below the first tick is either a 32-bit
// wraparound (previous tick was within overflowWindow of MaxTick) or a
// controller restart; both rebase the clock on the new tick and bank the
// time elapsed so far as a bonus.
//
// Only the record at the discontinuity itself reflects the banked bonus;
// later records restart relative to the new first tick. That matches the
// converter this one replaces.
// TODO: confirm with the VLog consumers whether bonusMS should keep
// accumulating into the monotonic branch instead.
func (c *Clock) Normalize(tick uint64) (uint64, error) {
	if !c.started {
		return 0, ErrNotStarted
	}

	var ms uint64
	switch {
	case tick >= c.firstTick:
		ms = tick - c.firstTick
	case MaxTick-c.previousTick < overflowWindow:
		// Genuine overflow: the counter wrapped past MaxTick.
		c.bonusMS = MaxTick - c.firstTick
		c.firstTick = tick
		ms = c.bonusMS + tick
	default:
		// Controller restart: large backward jump far from the
		// wrap boundary.
		c.bonusMS = c.previousTick - c.firstTick
		c.firstTick = tick
		ms = c.bonusMS
	}
	c.previousTick = tick
	return ms, nil
}
