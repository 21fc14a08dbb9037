package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits the origin and handles the view and projection matrices
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	// Yaw and Pitch in degrees
	Yaw   float32
	Pitch float32
}

func NewCamera(width, height int, fov float32) *Camera {
	c := &Camera{
		FOV:       fov,
		NearPlane: 0.1,
		FarPlane:  100.0,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio; a zero height (minimized window) is ignored
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// Orbit turns the camera by the given angles in degrees
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	for c.Yaw >= 360 {
		c.Yaw -= 360
	}
	for c.Yaw < 0 {
		c.Yaw += 360
	}
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -89, 89)
}

// Front returns the unit look direction
func (c *Camera) Front() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(pitch) * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Sin(yaw)),
	}.Normalize()
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// GetViewMatrix looks from the origin along Front
func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	eye := mgl32.Vec3{}
	return mgl32.LookAtV(eye, eye.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}
