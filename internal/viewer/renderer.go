package viewer

import (
	"os"
	"strings"

	"glscene/internal/asset"
	"glscene/internal/config"
	"glscene/internal/gpu"
	"glscene/internal/log"
	"glscene/internal/profiling"
	"glscene/internal/scene"
	"glscene/internal/shader"
	"glscene/internal/texture"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var logger = log.New("viewer")

// Sampler and output names used by the skybox shaders
const (
	PositionName = "position"
	OutputName   = "fragColor"
	DaySampler   = "dayMap"
	NightSampler = "nightMap"
)

// Renderer owns the scene graph and draws it once per frame
type Renderer struct {
	camera *Camera
	root   *scene.Node

	program *shader.Core
	skybox  *texture.Skybox
	cube    *Cube
}

// NewRenderer loads the configured shaders and skybox faces and assembles the
// scene: one node carrying the shader and skybox cores that draws the cube.
func NewRenderer(dev gpu.Device, cfg config.Config, camera *Camera) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	searchPath := strings.Join(cfg.Assets.SearchPath, string(os.PathListSeparator))

	shaders := shader.NewFactory(dev, searchPath)
	program, err := shaders.BuildFromFiles(
		shader.File{Kind: gpu.VertexShader, Name: cfg.Shaders.Vertex},
		shader.File{Kind: gpu.FragmentShader, Name: cfg.Shaders.Fragment},
	)
	if err != nil {
		return nil, err
	}
	program.BindAttribLocation(PositionAttrib, PositionName)
	program.BindFragDataLocation(0, OutputName)
	if err := program.Init(); err != nil {
		program.Clear()
		return nil, err
	}
	program.SetUniform1i(DaySampler, int32(texture.DayUnit))
	program.SetUniform1i(NightSampler, int32(texture.NightUnit))

	textures := texture.NewFactory(dev, asset.ImageDecoder{},
		texture.WithSearchPath(searchPath),
		texture.WithSchedule(cfg.Sky.Schedule()),
	)
	skybox, err := textures.CreateSkyboxFromFiles(cfg.Skybox.Day, cfg.Skybox.Night)
	if err != nil {
		program.Clear()
		return nil, err
	}

	cube := NewCube()
	root := scene.NewNode("skybox", program, skybox)
	root.Draw = cube.Draw

	return &Renderer{
		camera:  camera,
		root:    root,
		program: program,
		skybox:  skybox,
		cube:    cube,
	}, nil
}

// Render clears the screen and traverses the scene at the given hour
func (r *Renderer) Render(hours float32) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	state := scene.NewRenderState()
	state.View.Load(r.camera.GetViewMatrix())
	state.Projection.Load(r.camera.GetProjectionMatrix())
	state.TimeOfDay = hours

	scene.Traverse(r.root, state)

	if depth := state.Depth(); depth != [4]int{1, 1, 1, 1} {
		logger.Warningf("render state not balanced after traversal: %v", depth)
	}
}

// Skybox returns the skybox core of the scene
func (r *Renderer) Skybox() *texture.Skybox {
	return r.skybox
}

// Dispose releases the scene's GPU objects if the context is still alive
func (r *Renderer) Dispose(alive gpu.Liveness) {
	if alive() {
		r.cube.Dispose()
	}
	r.skybox.Destroy(alive)
	r.program.Destroy(alive)
}
