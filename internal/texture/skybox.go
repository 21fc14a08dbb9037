package texture

import (
	"glscene/internal/gpu"
	"glscene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms pushed by the skybox to the active shader.
const (
	InvViewMatrixUniform = "invViewMatrix"
	SkyboxMatrixUniform  = "skyboxMatrix"
	BlendFactorUniform   = "blendFactor"
)

// Texture units of the skybox cube maps.
const (
	DayUnit   uint32 = 0
	NightUnit uint32 = 1
)

// Skybox renders a day and a night cube map blended by the simulated time of
// day. The blend factor starts at 0 (night) and follows the schedule once per
// Render.
type Skybox struct {
	Core
	dev      gpu.Device
	day      cubeImage
	night    cubeImage
	schedule Schedule
	blend    float32
	phase    Phase
	binder

	warnedNoShader bool
}

var _ scene.Core = (*Skybox)(nil)

// NewSkybox creates an empty skybox using the default schedule.
func NewSkybox(dev gpu.Device) *Skybox {
	return &Skybox{
		Core:     newCore(),
		dev:      dev,
		day:      cubeImage{unit: DayUnit},
		night:    cubeImage{unit: NightUnit},
		schedule: DefaultSchedule(),
		phase:    Night,
	}
}

func (s *Skybox) SetSchedule(schedule Schedule) {
	s.schedule = schedule
}

func (s *Skybox) Schedule() Schedule {
	return s.schedule
}

// BlendFactor returns the current blend, 1 for day and 0 for night.
func (s *Skybox) BlendFactor() float32 {
	return s.blend
}

func (s *Skybox) SetBlendFactor(f float32) {
	s.blend = min(max(f, 0), 1)
}

func (s *Skybox) Phase() Phase {
	return s.phase
}

// SetCubeMap uploads the day and night cube maps, six faces each ordered +x,
// -x, +y, -y, +z, -z. Every face of a set must hold w*h RGBA pixels. Nothing
// is allocated when either set is malformed.
func (s *Skybox) SetCubeMap(wDay, hDay int, day [][]byte, wNight, hNight int, night [][]byte) error {
	if err := checkFaces("day cube map", wDay, hDay, day); err != nil {
		return err
	}
	if err := checkFaces("night cube map", wNight, hNight, night); err != nil {
		return err
	}
	s.day.set(s.dev, "day cube map", wDay, hDay, day, true)
	s.night.set(s.dev, "night cube map", wNight, hNight, night, false)
	return nil
}

// Handles returns the day and night cube map objects.
func (s *Skybox) Handles() (day, night uint32) {
	return s.day.handle, s.night.handle
}

func (s *Skybox) Valid() bool {
	return s.day.handle != 0 && s.night.handle != 0
}

// Matrices returns the inverse view matrix and the model-view-projection
// matrix with the camera translation removed.
func Matrices(state *scene.RenderState) (invView, skybox mgl32.Mat4) {
	view := state.ViewTransform()
	invView = view.Inv()
	view.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	skybox = state.ProjectionMatrix().Mul4(view).Mul4(state.ModelMatrix())
	return invView, skybox
}

func (s *Skybox) Render(state *scene.RenderState) {
	s.Core.Render(state)
	s.bind(s.dev, []slot{
		{unit: s.day.unit, target: gpu.TextureCubeMap, texture: s.day.handle},
		{unit: s.night.unit, target: gpu.TextureCubeMap, texture: s.night.handle},
	})

	s.advance(state.TimeOfDay)

	shader := state.Shader()
	if shader == nil {
		if !s.warnedNoShader {
			logger.Warning("skybox rendered without an active shader")
			s.warnedNoShader = true
		}
		return
	}
	invView, skybox := Matrices(state)
	shader.SetUniformMatrix4fv(InvViewMatrixUniform, invView)
	shader.SetUniformMatrix4fv(SkyboxMatrixUniform, skybox)
	shader.SetUniform1f(BlendFactorUniform, s.blend)
}

func (s *Skybox) advance(hours float32) {
	s.blend = s.schedule.Step(s.blend, hours)
	if phase := s.schedule.PhaseAt(s.phase, hours); phase != s.phase {
		logger.Debugf("skybox enters %s at %.2fh, blend %.3f", phase, hours, s.blend)
		s.phase = phase
	}
}

func (s *Skybox) RenderPost(state *scene.RenderState) {
	if !s.restore(s.dev) {
		logger.Error("skybox: RenderPost without Render")
	}
	s.Core.RenderPost(state)
}

// Destroy releases both cube maps when the context is alive. The handles are
// zeroed either way.
func (s *Skybox) Destroy(alive gpu.Liveness) {
	release(s.dev, alive, &s.day.handle)
	release(s.dev, alive, &s.night.handle)
}
