package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl32/matstack"
)

// ErrContractViolation marks programmer errors: wrong face counts, uniform
// queries on an unlinked program and similar misuse of the core API.
var ErrContractViolation = errors.New("scene: contract violation")

// Program is the active shader as seen by the render state. Cores that need
// to push uniforms into "whatever shader is bound" go through it.
type Program interface {
	SetUniform1i(name string, value int32)
	SetUniform1f(name string, value float32)
	SetUniformMatrix4fv(name string, values ...mgl32.Mat4)
}

// RenderState is the mutable context threaded through one traversal pass.
// It is owned by the traversal driver and only borrowed by the cores.
type RenderState struct {
	Model      *matstack.MatStack
	View       *matstack.MatStack
	Projection *matstack.MatStack
	Texture    *matstack.MatStack

	// TimeOfDay is the simulated hour in [0,24) for the current frame.
	TimeOfDay float32

	shader Program
}

// NewRenderState returns a state with identity matrices and no shader.
func NewRenderState() *RenderState {
	return &RenderState{
		Model:      matstack.NewMatStack(),
		View:       matstack.NewMatStack(),
		Projection: matstack.NewMatStack(),
		Texture:    matstack.NewMatStack(),
	}
}

// Shader returns the active shader program, nil if none.
func (s *RenderState) Shader() Program {
	return s.shader
}

// SetShader records p as active and returns the previous record.
func (s *RenderState) SetShader(p Program) Program {
	prev := s.shader
	s.shader = p
	return prev
}

func (s *RenderState) ModelMatrix() mgl32.Mat4 {
	return s.Model.Peek()
}

func (s *RenderState) ViewTransform() mgl32.Mat4 {
	return s.View.Peek()
}

func (s *RenderState) ProjectionMatrix() mgl32.Mat4 {
	return s.Projection.Peek()
}

func (s *RenderState) TextureMatrix() mgl32.Mat4 {
	return s.Texture.Peek()
}

// Depth returns the stack depths in model, view, projection, texture order.
func (s *RenderState) Depth() [4]int {
	return [4]int{len(*s.Model), len(*s.View), len(*s.Projection), len(*s.Texture)}
}
