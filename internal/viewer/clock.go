package viewer

import (
	"math"

	"glscene/internal/config"
)

// Clock is the simulated time of day in hours, wrapping at 24.
type Clock struct {
	hours float32
}

func NewClock(startHour float32) *Clock {
	c := &Clock{}
	c.Set(startHour)
	return c
}

func (c *Clock) Hours() float32 {
	return c.hours
}

// Set moves the clock to the given hour, wrapped into [0,24).
func (c *Clock) Set(hours float32) {
	h := math.Mod(float64(hours), 24)
	if h < 0 {
		h += 24
	}
	c.hours = float32(h)
}

// Advance moves the clock forward by dt real seconds at the configured clock
// speed.
func (c *Clock) Advance(dt float64) {
	c.Set(c.hours + float32(dt)*config.GetClockSpeed())
}
