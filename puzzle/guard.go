package puzzle

import "math"

// Clock is the simulation time shared by every node of a network.
type Clock struct {
	frame int64
	now   float64
}

func NewClock() *Clock {
	return &Clock{}
}

// Advance moves to the next frame.
func (c *Clock) Advance(dt float64) {
	if c == nil {
		return
	}
	c.frame++
	if dt > 0 {
		c.now += dt
	}
}

func (c *Clock) Frame() int64 {
	if c == nil {
		return 0
	}
	return c.frame
}

func (c *Clock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

// RetriggerGuard deduplicates triggers that arrive in the same frame or
// within Cooldown seconds of the last accepted one.
type RetriggerGuard struct {
	Cooldown float64

	touched   bool
	lastFrame int64
	lastTime  float64
}

func (g *RetriggerGuard) Allow(c *Clock) bool {
	if !g.touched {
		return true
	}
	if c.Frame() == g.lastFrame {
		return false
	}
	return c.Now()-g.lastTime >= g.Cooldown
}

func (g *RetriggerGuard) Touch(c *Clock) {
	g.touched = true
	g.lastFrame = c.Frame()
	g.lastTime = c.Now()
}

// LastTrigger reports the frame and time of the last touch, or ok=false if
// the guard was never touched.
func (g *RetriggerGuard) LastTrigger() (frame int64, at float64, ok bool) {
	if !g.touched {
		return 0, math.Inf(-1), false
	}
	return g.lastFrame, g.lastTime, true
}
