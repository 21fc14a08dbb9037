package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type traceCore struct {
	name  string
	trace *[]string
	valid bool
}

func (c *traceCore) Render(*RenderState)     { *c.trace = append(*c.trace, c.name+".render") }
func (c *traceCore) RenderPost(*RenderState) { *c.trace = append(*c.trace, c.name+".post") }
func (c *traceCore) Valid() bool             { return c.valid }

func TestTraverseOrder(t *testing.T) {
	var trace []string
	core := func(name string) *traceCore { return &traceCore{name: name, trace: &trace, valid: true} }

	root := NewNode("root", core("a"), core("b"))
	root.Draw = func(*RenderState) { trace = append(trace, "root.draw") }
	child := NewNode("child", core("c"))
	child.Draw = func(*RenderState) { trace = append(trace, "child.draw") }
	root.AddChild(child, NewNode("empty"))

	Traverse(root, NewRenderState())

	assert.Equal(t, []string{
		"a.render", "b.render", "root.draw",
		"c.render", "child.draw", "c.post",
		"b.post", "a.post",
	}, trace)
}

func TestTraverseSkipsInvalidNodes(t *testing.T) {
	var trace []string
	bad := &traceCore{name: "bad", trace: &trace}
	root := NewNode("root").AddChild(NewNode("broken", bad).AddChild(NewNode("below", &traceCore{name: "below", trace: &trace, valid: true})))

	Traverse(root, NewRenderState())
	assert.Empty(t, trace)
	assert.False(t, root.Children[0].Valid())
	assert.True(t, root.Valid())
}

func TestTransformNests(t *testing.T) {
	state := NewRenderState()
	outer := NewTransform().Translate(1, 0, 0)
	inner := NewTransform().Scale(2, 2, 2)

	var seen mgl32.Mat4
	root := NewNode("outer", outer).AddChild(&Node{
		Name:  "inner",
		Cores: []Core{inner},
		Draw:  func(s *RenderState) { seen = s.ModelMatrix() },
	})
	Traverse(root, state)

	assert.Equal(t, mgl32.Translate3D(1, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2)), seen)
	assert.Equal(t, [4]int{1, 1, 1, 1}, state.Depth())
	assert.Equal(t, mgl32.Ident4(), state.ModelMatrix())
}

func TestSetShaderReturnsPrevious(t *testing.T) {
	state := NewRenderState()
	assert.Nil(t, state.SetShader(nil))
	assert.Nil(t, state.Shader())
}
