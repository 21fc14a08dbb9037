package texture

import "fmt"

// Schedule drives the day/night blend factor of a skybox. Inside the sunrise
// window the factor climbs by Increment per frame, inside the sunset window
// it sinks by Increment, and anywhere else it holds. Windows are open
// intervals of hours.
type Schedule struct {
	SunriseStart float32
	SunriseEnd   float32
	SunsetStart  float32
	SunsetEnd    float32
	Increment    float32
}

// DefaultSchedule brightens between 6 and 10 and darkens between 18 and 23.
func DefaultSchedule() Schedule {
	return Schedule{
		SunriseStart: 6,
		SunriseEnd:   10,
		SunsetStart:  18,
		SunsetEnd:    23,
		Increment:    0.002,
	}
}

// Validate checks that both windows are non-empty, lie within a day and do
// not overlap.
func (s Schedule) Validate() error {
	switch {
	case s.SunriseStart < 0 || s.SunsetEnd > 24:
		return fmt.Errorf("texture: schedule windows must lie within [0,24]")
	case s.SunriseStart >= s.SunriseEnd:
		return fmt.Errorf("texture: sunrise window (%g,%g) is empty", s.SunriseStart, s.SunriseEnd)
	case s.SunsetStart >= s.SunsetEnd:
		return fmt.Errorf("texture: sunset window (%g,%g) is empty", s.SunsetStart, s.SunsetEnd)
	case s.SunriseEnd > s.SunsetStart:
		return fmt.Errorf("texture: sunrise window ends after sunset starts")
	case s.Increment <= 0 || s.Increment > 1:
		return fmt.Errorf("texture: blend increment %g outside (0,1]", s.Increment)
	}
	return nil
}

// Phase is the part of the day a skybox last entered.
type Phase int

const (
	Day Phase = iota
	Night
)

func (p Phase) String() string {
	if p == Night {
		return "night"
	}
	return "day"
}

// InSunrise reports whether hours lies strictly inside the sunrise window.
func (s Schedule) InSunrise(hours float32) bool {
	return hours > s.SunriseStart && hours < s.SunriseEnd
}

// InSunset reports whether hours lies strictly inside the sunset window.
func (s Schedule) InSunset(hours float32) bool {
	return hours > s.SunsetStart && hours < s.SunsetEnd
}

// Step returns the blend factor after one frame at the given hour. 1 shows
// the day map, 0 the night map.
func (s Schedule) Step(factor, hours float32) float32 {
	switch {
	case s.InSunrise(hours):
		return min(factor+s.Increment, 1)
	case s.InSunset(hours):
		return max(factor-s.Increment, 0)
	}
	return factor
}

// PhaseAt returns the phase after a frame at the given hour: entering a
// sunrise window means day, entering a sunset window means night and the
// current phase holds otherwise.
func (s Schedule) PhaseAt(current Phase, hours float32) Phase {
	switch {
	case s.InSunrise(hours):
		return Day
	case s.InSunset(hours):
		return Night
	}
	return current
}
