package viewer

import (
	"fmt"
	"time"

	"glscene/internal/config"
	"glscene/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Degrees the camera turns per pixel of mouse drag and per arrow key press
const (
	dragSensitivity = 0.2
	keyTurn         = 5
)

// OpenWindow creates a window with an OpenGL 4.1 core context and makes it
// current. glfw must have been initialized.
func OpenWindow(title string, width, height int) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Disable V-Sync; frame pacing is done by the FPS limiter
	glfw.SwapInterval(0)
	return window, nil
}

// App runs the frame loop of the skybox viewer
type App struct {
	window     *glfw.Window
	renderer   *Renderer
	camera     *Camera
	clock      *Clock
	fpsLimiter *FPSLimiter
	lastTime   time.Time

	dragging     bool
	lastX, lastY float64
}

func NewApp(window *glfw.Window, renderer *Renderer, camera *Camera, clock *Clock) *App {
	a := &App{
		window:     window,
		renderer:   renderer,
		camera:     camera,
		clock:      clock,
		fpsLimiter: NewFPSLimiter(),
		lastTime:   time.Now(),
	}
	window.SetKeyCallback(a.onKey)
	window.SetMouseButtonCallback(a.onMouseButton)
	window.SetCursorPosCallback(a.onCursorPos)
	window.SetFramebufferSizeCallback(a.onResize)

	width, height := window.GetFramebufferSize()
	a.onResize(window, width, height)
	return a
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()

	a.clock.Advance(dt)
	a.renderer.Render(a.clock.Hours())
	a.window.SwapBuffers()

	if d := time.Since(startTick); d > 16*time.Millisecond {
		logger.Debug(frameReport(d))
	}

	a.fpsLimiter.Wait(a.window.GetAttrib(glfw.Iconified) == glfw.True)
}

// frameReport summarizes the profiler totals of the frame that just ended
func frameReport(d time.Duration) string {
	return fmt.Sprintf("Slow frame: %v, %d traversals, %v drawing. Top tasks: %s",
		d, profiling.Count("scene.Traverse"), profiling.SumWithPrefix("viewer."), profiling.TopN(5))
}

func (a *App) onKey(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeyEqual, glfw.KeyKPAdd:
		a.changeClockSpeed(2)
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		a.changeClockSpeed(0.5)
	case glfw.KeyLeft:
		a.camera.Orbit(-keyTurn, 0)
	case glfw.KeyRight:
		a.camera.Orbit(keyTurn, 0)
	case glfw.KeyUp:
		a.camera.Orbit(0, keyTurn)
	case glfw.KeyDown:
		a.camera.Orbit(0, -keyTurn)
	}
}

func (a *App) changeClockSpeed(factor float32) {
	speed := config.GetClockSpeed()
	if speed == 0 {
		speed = 0.125
	}
	config.SetClockSpeed(speed * factor)
	logger.Noticef("clock speed %.3f h/s at %.2fh, blend %.3f",
		config.GetClockSpeed(), a.clock.Hours(), a.renderer.Skybox().BlendFactor())
}

func (a *App) onMouseButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	a.dragging = action == glfw.Press
	a.lastX, a.lastY = w.GetCursorPos()
}

func (a *App) onCursorPos(_ *glfw.Window, x, y float64) {
	if !a.dragging {
		return
	}
	dx, dy := x-a.lastX, y-a.lastY
	a.lastX, a.lastY = x, y
	a.camera.Orbit(float32(dx)*dragSensitivity, float32(-dy)*dragSensitivity)
}

func (a *App) onResize(_ *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	a.camera.SetViewport(width, height)
}
