package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform post-multiplies the model matrix for its subtree.
type Transform struct {
	Matrix mgl32.Mat4
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	return &Transform{Matrix: mgl32.Ident4()}
}

func (t *Transform) Translate(x, y, z float32) *Transform {
	t.Matrix = t.Matrix.Mul4(mgl32.Translate3D(x, y, z))
	return t
}

func (t *Transform) Scale(x, y, z float32) *Transform {
	t.Matrix = t.Matrix.Mul4(mgl32.Scale3D(x, y, z))
	return t
}

// Rotate rotates by angle radians around axis.
func (t *Transform) Rotate(angle float32, axis mgl32.Vec3) *Transform {
	t.Matrix = t.Matrix.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
	return t
}

func (t *Transform) Render(state *RenderState) {
	state.Model.Push()
	state.Model.RightMul(t.Matrix)
}

func (t *Transform) RenderPost(state *RenderState) {
	if err := state.Model.Pop(); err != nil {
		logger.Errorf("transform: %v", err)
	}
}
