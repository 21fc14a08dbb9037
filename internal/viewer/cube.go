package viewer

import (
	"glscene/internal/profiling"
	"glscene/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// PositionAttrib is the vertex attribute index of the cube positions.
const PositionAttrib = 0

// CubeVertices is a unit cube as 36 positions, wound to face inwards.
var CubeVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// Cube owns the vertex array of the skybox cube
type Cube struct {
	vao uint32
	vbo uint32
}

// NewCube uploads the cube vertices
func NewCube() *Cube {
	c := &Cube{}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(CubeVertices)*4, gl.Ptr(CubeVertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(PositionAttrib)
	gl.VertexAttribPointerWithOffset(PositionAttrib, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return c
}

// Draw renders the cube behind everything else. It is used as the Draw
// callback of the skybox node.
func (c *Cube) Draw(state *scene.RenderState) {
	defer profiling.Track("viewer.drawSkybox")()

	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(CubeVertices)/3))
	gl.BindVertexArray(0)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
}

// Dispose cleans up OpenGL resources
func (c *Cube) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
		c.vbo = 0
	}
}
