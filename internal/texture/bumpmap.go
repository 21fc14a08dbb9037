package texture

import (
	"glscene/internal/gpu"
	"glscene/internal/scene"
)

// Texture units of the bump map layers.
const (
	ColorUnit  uint32 = 0
	NormalUnit uint32 = 1
)

// BumpMap binds a color texture to unit 0 and a normal map to unit 1. Either
// layer may be absent; only present layers are bound.
type BumpMap struct {
	Core
	dev    gpu.Device
	color  image2D
	normal image2D
	binder
}

var _ scene.Core = (*BumpMap)(nil)

func NewBumpMap(dev gpu.Device) *BumpMap {
	return &BumpMap{
		Core:   newCore(),
		dev:    dev,
		color:  image2D{unit: ColorUnit},
		normal: image2D{unit: NormalUnit},
	}
}

// SetTexture uploads the color layer.
func (b *BumpMap) SetTexture(width, height int, rgba []byte, s Sampling) error {
	return b.color.set(b.dev, "bump map color layer", width, height, rgba, s)
}

// SetNormalMap uploads the normal layer.
func (b *BumpMap) SetNormalMap(width, height int, rgba []byte, s Sampling) error {
	return b.normal.set(b.dev, "bump map normal layer", width, height, rgba, s)
}

// Handles returns the color and normal texture objects, 0 when unset.
func (b *BumpMap) Handles() (color, normal uint32) {
	return b.color.handle, b.normal.handle
}

func (b *BumpMap) Valid() bool {
	return b.color.handle != 0 || b.normal.handle != 0
}

func (b *BumpMap) Render(state *scene.RenderState) {
	b.Core.Render(state)
	slots := make([]slot, 0, 2)
	for _, im := range []*image2D{&b.color, &b.normal} {
		if im.handle != 0 {
			slots = append(slots, slot{unit: im.unit, target: gpu.Texture2D, texture: im.handle})
		}
	}
	b.bind(b.dev, slots)
}

func (b *BumpMap) RenderPost(state *scene.RenderState) {
	if !b.restore(b.dev) {
		logger.Error("bump map: RenderPost without Render")
	}
	b.Core.RenderPost(state)
}

func (b *BumpMap) Destroy(alive gpu.Liveness) {
	release(b.dev, alive, &b.color.handle)
	release(b.dev, alive, &b.normal.handle)
}
