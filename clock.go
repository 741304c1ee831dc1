package novage

import "time"

// Clock paces the main loop to a target frame rate and tracks the
// achieved rate, in the style of pygame.time.Clock.
//
// Clock is not safe for concurrent use; it belongs to the main loop
// thread, like the rest of the draw/flip cycle.
type Clock struct {
	last time.Time
	fps  float64
}

// NewClock creates a clock. The first Tick measures from creation time.
func NewClock() *Clock {
	return &Clock{last: time.Now()}
}

// Tick sleeps as needed to hold the loop at the target frame rate and
// returns the time elapsed since the previous Tick. A framerate of 0
// disables pacing and only measures.
func (c *Clock) Tick(framerate int) time.Duration {
	now := time.Now()
	dt := now.Sub(c.last)

	if framerate > 0 {
		target := time.Second / time.Duration(framerate)
		if dt < target {
			time.Sleep(target - dt)
			now = time.Now()
			dt = now.Sub(c.last)
		}
	}

	c.last = now
	if dt > 0 {
		c.fps = float64(time.Second) / float64(dt)
	}
	return dt
}

// FPS returns the frame rate measured by the most recent Tick.
// Returns 0 before the first Tick.
func (c *Clock) FPS() float64 {
	return c.fps
}
