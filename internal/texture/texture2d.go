package texture

import (
	"glscene/internal/gpu"
	"glscene/internal/scene"
)

// Sampling selects wrap modes and filters of a 2D texture.
type Sampling struct {
	WrapS     gpu.Enum
	WrapT     gpu.Enum
	MinFilter gpu.Enum
	MagFilter gpu.Enum
}

// DefaultSampling repeats in both directions and uses trilinear filtering.
func DefaultSampling() Sampling {
	return Sampling{
		WrapS:     gpu.Repeat,
		WrapT:     gpu.Repeat,
		MinFilter: gpu.LinearMipmapLinear,
		MagFilter: gpu.Linear,
	}
}

func (s Sampling) apply(dev gpu.Device, target gpu.Enum) {
	dev.TexParameteri(target, gpu.TextureWrapS, int32(s.WrapS))
	dev.TexParameteri(target, gpu.TextureWrapT, int32(s.WrapT))
	dev.TexParameteri(target, gpu.TextureMinFilter, int32(s.MinFilter))
	dev.TexParameteri(target, gpu.TextureMagFilter, int32(s.MagFilter))
	if gpu.IsMipmapFilter(s.MinFilter) {
		dev.GenerateMipmap(target)
		dev.TexParameterf(target, gpu.TextureMaxAnisotropy, dev.MaxAnisotropy())
	}
}

// image2D is one 2D texture object and the unit it binds to.
type image2D struct {
	unit   uint32
	handle uint32
	width  int
	height int
}

func (im *image2D) set(dev gpu.Device, what string, width, height int, rgba []byte, s Sampling) error {
	if err := checkPixels(what, width, height, rgba); err != nil {
		return err
	}
	if im.handle == 0 {
		im.handle = dev.GenTexture()
	}
	im.width, im.height = width, height
	upload(dev, im.unit, gpu.Texture2D, im.handle, what, func() {
		dev.TexImage2D(gpu.Texture2D, width, height, rgba)
		s.apply(dev, gpu.Texture2D)
	})
	return nil
}

// Texture2D binds one 2D texture to unit 0 for its subtree.
type Texture2D struct {
	Core
	dev   gpu.Device
	image image2D
	binder
}

var _ scene.Core = (*Texture2D)(nil)

func NewTexture2D(dev gpu.Device) *Texture2D {
	return &Texture2D{Core: newCore(), dev: dev}
}

// SetTexture uploads width x height RGBA pixels, allocating the texture
// object on first use.
func (t *Texture2D) SetTexture(width, height int, rgba []byte, s Sampling) error {
	return t.image.set(t.dev, "2D texture", width, height, rgba, s)
}

func (t *Texture2D) Handle() uint32 {
	return t.image.handle
}

func (t *Texture2D) Size() (int, int) {
	return t.image.width, t.image.height
}

func (t *Texture2D) Valid() bool {
	return t.image.handle != 0
}

func (t *Texture2D) Render(state *scene.RenderState) {
	t.Core.Render(state)
	t.bind(t.dev, []slot{{unit: t.image.unit, target: gpu.Texture2D, texture: t.image.handle}})
}

func (t *Texture2D) RenderPost(state *scene.RenderState) {
	if !t.restore(t.dev) {
		logger.Errorf("2D texture %d: RenderPost without Render", t.image.handle)
	}
	t.Core.RenderPost(state)
}

// Destroy deletes the texture object if the context is alive.
func (t *Texture2D) Destroy(alive gpu.Liveness) {
	release(t.dev, alive, &t.image.handle)
}
