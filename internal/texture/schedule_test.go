package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleStep(t *testing.T) {
	s := DefaultSchedule()

	tests := []struct {
		name   string
		factor float32
		hours  float32
		want   float32
	}{
		{"sunrise brightens", 0.5, 7, 0.502},
		{"sunrise clamps at one", 0.999, 8, 1},
		{"sunrise stays at one", 1, 9.5, 1},
		{"sunset darkens", 0.5, 20, 0.498},
		{"sunset clamps at zero", 0.001, 22, 0},
		{"sunset stays at zero", 0, 22.9, 0},
		{"noon holds", 0.3, 12, 0.3},
		{"midnight holds", 0.7, 0, 0.7},
		{"window start is open", 0.5, 6, 0.5},
		{"window end is open", 0.5, 10, 0.5},
		{"sunset start is open", 0.5, 18, 0.5},
		{"sunset end is open", 0.5, 23, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Step(tt.factor, tt.hours), 1e-6)
		})
	}
}

func TestScheduleStepIsMonotonicAndBounded(t *testing.T) {
	s := DefaultSchedule()

	f := float32(0)
	for i := 0; i < 1000; i++ {
		next := s.Step(f, 7)
		assert.Equal(t, min(f+s.Increment, 1), next)
		if f < 1 {
			assert.Greater(t, next, f, "step %d", i)
		}
		assert.LessOrEqual(t, next, float32(1))
		f = next
	}
	assert.Equal(t, float32(1), f, "a long sunrise ends at full day")

	for i := 0; i < 1000; i++ {
		next := s.Step(f, 19)
		assert.Equal(t, max(f-s.Increment, 0), next)
		if f > 0 {
			assert.Less(t, next, f, "step %d", i)
		}
		assert.GreaterOrEqual(t, next, float32(0))
		f = next
	}
	assert.Equal(t, float32(0), f, "a long sunset ends at full night")
}

func TestSchedulePhase(t *testing.T) {
	s := DefaultSchedule()

	assert.Equal(t, Day, s.PhaseAt(Night, 7))
	assert.Equal(t, Night, s.PhaseAt(Day, 20))
	assert.Equal(t, Day, s.PhaseAt(Day, 14), "phase holds between windows")
	assert.Equal(t, Night, s.PhaseAt(Night, 2))
	assert.Equal(t, "night", Night.String())
}

func TestScheduleValidate(t *testing.T) {
	assert.NoError(t, DefaultSchedule().Validate())

	bad := DefaultSchedule()
	bad.SunriseEnd = bad.SunriseStart
	assert.Error(t, bad.Validate())

	bad = DefaultSchedule()
	bad.SunriseEnd = 19
	assert.Error(t, bad.Validate(), "windows overlap")

	bad = DefaultSchedule()
	bad.Increment = 0
	assert.Error(t, bad.Validate())
}
