package viewer

import (
	"testing"
	"time"

	"glscene/internal/config"
	"glscene/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClockWraps(t *testing.T) {
	defer config.SetClockSpeed(config.GetClockSpeed())
	config.SetClockSpeed(2)

	c := NewClock(23)
	c.Advance(1)
	assert.InDelta(t, 1, c.Hours(), 1e-5)

	c.Set(-1)
	assert.InDelta(t, 23, c.Hours(), 1e-5)
	c.Set(48)
	assert.InDelta(t, 0, c.Hours(), 1e-5)
}

func TestClockStopped(t *testing.T) {
	defer config.SetClockSpeed(config.GetClockSpeed())
	config.SetClockSpeed(0)

	c := NewClock(7.5)
	c.Advance(100)
	assert.Equal(t, float32(7.5), c.Hours())
}

func TestCameraOrbit(t *testing.T) {
	c := NewCamera(800, 400, 60)
	assert.Equal(t, float32(2), c.AspectRatio)

	c.Orbit(-10, 100)
	assert.Equal(t, float32(350), c.Yaw)
	assert.Equal(t, float32(89), c.Pitch, "pitch is clamped short of the pole")

	c.SetViewport(100, 0)
	assert.Equal(t, float32(2), c.AspectRatio, "zero height is ignored")
}

func TestCameraLooksAlongFront(t *testing.T) {
	c := NewCamera(1, 1, 60)
	front := c.Front()
	assert.InDelta(t, 1, front.Len(), 1e-5)
	assert.InDelta(t, 1, front.X(), 1e-5, "yaw 0 looks down +x")

	// the view matrix maps the look direction onto -z
	v := c.GetViewMatrix().Mul4x1(front.Vec4(0))
	assert.InDelta(t, -1, v.Z(), 1e-5)
	assert.Equal(t, mgl32.Vec3{}, c.GetViewMatrix().Col(3).Vec3(), "camera sits at the origin")
}

func TestFrameReport(t *testing.T) {
	profiling.ResetFrame()
	defer profiling.ResetFrame()
	profiling.Track("scene.Traverse")()
	profiling.Track("viewer.drawSkybox")()

	report := frameReport(20 * time.Millisecond)
	assert.Contains(t, report, "Slow frame: 20ms, 1 traversals")
	assert.Contains(t, report, "viewer.drawSkybox:")
}
