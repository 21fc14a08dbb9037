package scene

import (
	"glscene/internal/log"
	"glscene/internal/profiling"
)

var logger = log.New("scene")

// Core is a state-changing node. Render applies the change on descent;
// RenderPost must leave every GPU binding and RenderState field it touched
// exactly as it was right before the matching Render.
type Core interface {
	Render(state *RenderState)
	RenderPost(state *RenderState)
}

// Validator is implemented by cores that can end up unusable, e.g. a shader
// whose link failed. Traverse skips nodes holding an invalid core.
type Validator interface {
	Valid() bool
}

// Node groups cores, an optional draw callback and children.
type Node struct {
	Name     string
	Cores    []Core
	Draw     func(state *RenderState)
	Children []*Node
}

// NewNode creates a named node with the given cores.
func NewNode(name string, cores ...Core) *Node {
	return &Node{Name: name, Cores: cores}
}

// AddChild appends children and returns n for chaining scene construction.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Valid reports whether every core of n is usable.
func (n *Node) Valid() bool {
	for _, c := range n.Cores {
		if v, ok := c.(Validator); ok && !v.Valid() {
			return false
		}
	}
	return true
}

// Traverse walks the tree depth first. For each node the cores render in
// order, Draw runs, the children are visited and the cores' RenderPost run
// in reverse order, so state changes nest like a stack.
func Traverse(root *Node, state *RenderState) {
	defer profiling.Track("scene.Traverse")()
	traverse(root, state)
}

func traverse(n *Node, state *RenderState) {
	if n == nil {
		return
	}
	if !n.Valid() {
		logger.Debugf("skipping node %q: invalid core", n.Name)
		return
	}
	for _, c := range n.Cores {
		c.Render(state)
	}
	if n.Draw != nil {
		n.Draw(state)
	}
	for _, child := range n.Children {
		traverse(child, state)
	}
	for i := len(n.Cores) - 1; i >= 0; i-- {
		n.Cores[i].RenderPost(state)
	}
}
