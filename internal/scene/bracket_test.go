package scene_test

import (
	"bytes"
	"testing"

	"glscene/internal/gpu"
	"glscene/internal/gpu/gputest"
	"glscene/internal/scene"
	"glscene/internal/shader"
	"glscene/internal/texture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saved struct {
	snap   gputest.Snapshot
	shader scene.Program
	depth  [4]int
}

// checked wraps a core and asserts that its RenderPost puts the device and
// the render state back to what they were right before its Render.
type checked struct {
	t     *testing.T
	dev   *gputest.Device
	core  scene.Core
	stack []saved
	posts int
}

func (c *checked) Render(state *scene.RenderState) {
	c.stack = append(c.stack, saved{c.dev.Snapshot(), state.Shader(), state.Depth()})
	c.core.Render(state)
}

func (c *checked) RenderPost(state *scene.RenderState) {
	c.core.RenderPost(state)
	want := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.posts++
	assert.Equal(c.t, want.snap, c.dev.Snapshot())
	assert.Equal(c.t, want.shader, state.Shader())
	assert.Equal(c.t, want.depth, state.Depth())
}

func faces(w, h int) [][]byte {
	f := make([][]byte, 6)
	for i := range f {
		f[i] = bytes.Repeat([]byte{byte(i)}, w*h*4)
	}
	return f
}

func program(t *testing.T, dev *gputest.Device) *shader.Core {
	t.Helper()
	c, err := shader.NewFactory(dev).CreateFromSources(
		shader.Source{Kind: gpu.VertexShader, Name: "sky.vert", Code: "void main() {}"},
		shader.Source{Kind: gpu.FragmentShader, Name: "sky.frag", Code: "void main() {}"},
	)
	require.NoError(t, err)
	return c
}

func TestRenderPostRestoresStateAcrossNestedCores(t *testing.T) {
	dev := gputest.New()

	skyShader := program(t, dev)
	texShader := program(t, dev)

	sky := texture.NewSkybox(dev)
	require.NoError(t, sky.SetCubeMap(2, 2, faces(2, 2), 1, 1, faces(1, 1)))
	tex := texture.NewTexture2D(dev)
	require.NoError(t, tex.SetTexture(1, 1, make([]byte, 4), texture.DefaultSampling()))
	bump := texture.NewBumpMap(dev)
	require.NoError(t, bump.SetNormalMap(1, 1, make([]byte, 4), texture.DefaultSampling()))

	var wrapped []*checked
	wrap := func(cores ...scene.Core) []scene.Core {
		out := make([]scene.Core, len(cores))
		for i, c := range cores {
			w := &checked{t: t, dev: dev, core: c}
			wrapped = append(wrapped, w)
			out[i] = w
		}
		return out
	}

	draws := 0
	draw := func(*scene.RenderState) { draws++ }

	// the skybox and the sky shader appear at two depths
	root := &scene.Node{Name: "root", Cores: wrap(skyShader, scene.NewTransform().Scale(10, 10, 10), sky), Draw: draw}
	root.AddChild(
		&scene.Node{Name: "textured", Cores: wrap(texShader, tex, bump), Draw: draw, Children: []*scene.Node{
			{Name: "sky again", Cores: wrap(skyShader, sky), Draw: draw},
		}},
		&scene.Node{Name: "plain", Cores: wrap(scene.NewTransform().Translate(0, 1, 0)), Draw: draw},
	)

	dev.ActiveTexture(5)
	state := scene.NewRenderState()
	state.TimeOfDay = 8
	before := dev.Snapshot()

	for frame := 0; frame < 3; frame++ {
		scene.Traverse(root, state)
	}

	assert.Equal(t, 12, draws)
	for _, w := range wrapped {
		assert.Equal(t, 3, w.posts)
		assert.Empty(t, w.stack)
	}
	assert.Equal(t, before, dev.Snapshot())
	assert.Nil(t, state.Shader())
	assert.Equal(t, [4]int{1, 1, 1, 1}, state.Depth())

	// the skybox advanced twice per frame
	assert.InDelta(t, 6*0.002, sky.BlendFactor(), 1e-6)
	assert.Equal(t, 1, dev.UniformQueries(skyShader.Program(), texture.BlendFactorUniform))
}

func TestTraverseSkipsUnlinkedShader(t *testing.T) {
	dev := gputest.New()
	broken, err := shader.NewFactory(dev).BuildFromSources(
		shader.Source{Kind: gpu.VertexShader, Name: "broken.vert", Code: "#error"},
	)
	require.NoError(t, err)
	require.Error(t, broken.Init())

	drawn := false
	root := &scene.Node{Name: "broken", Cores: []scene.Core{broken}, Draw: func(*scene.RenderState) { drawn = true }}
	scene.Traverse(root, scene.NewRenderState())

	assert.False(t, drawn)
	assert.Zero(t, dev.CallCount("UseProgram"))
}
