// Package texture holds the texture cores of the scene graph: 2D textures,
// bump maps, cube maps and the day/night skybox, plus the factory that loads
// them from image files.
package texture

import (
	"errors"
	"fmt"

	"glscene/internal/gpu"
	"glscene/internal/log"
	"glscene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

var logger = log.New("texture")

var ErrFaceSizeMismatch = errors.New("texture: cube map faces differ in size")

// Core carries the texture matrix shared by every texture kind. Render
// post-multiplies it onto the state's texture stack.
type Core struct {
	matrix mgl32.Mat4
}

func newCore() Core {
	return Core{matrix: mgl32.Ident4()}
}

// Matrix returns the local texture matrix.
func (c *Core) Matrix() mgl32.Mat4 {
	return c.matrix
}

func (c *Core) SetMatrix(m mgl32.Mat4) {
	c.matrix = m
}

func (c *Core) Translate(x, y, z float32) {
	c.matrix = c.matrix.Mul4(mgl32.Translate3D(x, y, z))
}

func (c *Core) Scale(x, y, z float32) {
	c.matrix = c.matrix.Mul4(mgl32.Scale3D(x, y, z))
}

// Rotate rotates by angle radians around axis.
func (c *Core) Rotate(angle float32, axis mgl32.Vec3) {
	c.matrix = c.matrix.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
}

func (c *Core) Render(state *scene.RenderState) {
	state.Texture.Push()
	state.Texture.RightMul(c.matrix)
}

func (c *Core) RenderPost(state *scene.RenderState) {
	if err := state.Texture.Pop(); err != nil {
		logger.Errorf("texture matrix: %v", err)
	}
}

// slot is one texture bound to a target on a texture unit.
type slot struct {
	unit    uint32
	target  gpu.Enum
	texture uint32
}

type frame struct {
	active uint32
	prev   []slot
}

// binder binds a set of slots and puts back whatever was bound before, one
// frame per Render so nested renders of the same core unwind in order.
// Handles the driver no longer knows as textures are skipped.
type binder struct {
	saved []frame
}

func (b *binder) bind(dev gpu.Device, slots []slot) {
	f := frame{active: dev.ActiveTextureUnit(), prev: make([]slot, 0, len(slots))}
	for _, s := range slots {
		if s.texture != 0 && !dev.IsTexture(s.texture) {
			logger.Errorf("%d is not a texture object, unit %d left unbound", s.texture, s.unit)
			continue
		}
		dev.ActiveTexture(s.unit)
		f.prev = append(f.prev, slot{unit: s.unit, target: s.target, texture: dev.TextureBinding(s.target)})
		dev.BindTexture(s.target, s.texture)
	}
	b.saved = append(b.saved, f)
}

func (b *binder) restore(dev gpu.Device) bool {
	n := len(b.saved)
	if n == 0 {
		return false
	}
	f := b.saved[n-1]
	b.saved = b.saved[:n-1]
	for i := len(f.prev) - 1; i >= 0; i-- {
		s := f.prev[i]
		dev.ActiveTexture(s.unit)
		dev.BindTexture(s.target, s.texture)
	}
	dev.ActiveTexture(f.active)
	return true
}

// upload binds texture on unit just long enough to run fn, then restores the
// previous binding and active unit. Driver errors raised by fn are logged.
func upload(dev gpu.Device, unit uint32, target gpu.Enum, texture uint32, what string, fn func()) {
	active := dev.ActiveTextureUnit()
	dev.ActiveTexture(unit)
	prev := dev.TextureBinding(target)
	dev.BindTexture(target, texture)

	fn()

	dev.BindTexture(target, prev)
	dev.ActiveTexture(active)
	for _, code := range gpu.DrainErrors(dev) {
		logger.Warningf("GL error 0x%04x while uploading %s", code, what)
	}
}

func checkPixels(what string, width, height int, rgba []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %s has invalid size %dx%d", scene.ErrContractViolation, what, width, height)
	}
	if want := width * height * 4; len(rgba) != want {
		return fmt.Errorf("%w: %s holds %d bytes, want %d for %dx%d RGBA",
			scene.ErrContractViolation, what, len(rgba), want, width, height)
	}
	return nil
}

func release(dev gpu.Device, alive gpu.Liveness, handle *uint32) {
	if *handle != 0 && (alive == nil || alive()) {
		dev.DeleteTexture(*handle)
	}
	*handle = 0
}
