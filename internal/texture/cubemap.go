package texture

import (
	"fmt"

	"glscene/internal/gpu"
	"glscene/internal/scene"
)

// cubeImage is one cube map texture object and the unit it binds to.
type cubeImage struct {
	unit   uint32
	handle uint32
	width  int
	height int
}

func checkFaces(what string, width, height int, faces [][]byte) error {
	if len(faces) != len(gpu.CubeMapFaces) {
		return fmt.Errorf("%w: %s needs %d faces, got %d",
			scene.ErrContractViolation, what, len(gpu.CubeMapFaces), len(faces))
	}
	for i, face := range faces {
		if err := checkPixels(fmt.Sprintf("%s face %d", what, i), width, height, face); err != nil {
			return err
		}
	}
	return nil
}

// set uploads the six faces. Faces must have been checked with checkFaces.
func (c *cubeImage) set(dev gpu.Device, what string, width, height int, faces [][]byte, anisotropic bool) {
	if c.handle == 0 {
		c.handle = dev.GenTexture()
	}
	c.width, c.height = width, height
	upload(dev, c.unit, gpu.TextureCubeMap, c.handle, what, func() {
		for i, target := range gpu.CubeMapFaces {
			dev.TexImage2D(target, width, height, faces[i])
		}
		dev.TexParameteri(gpu.TextureCubeMap, gpu.TextureWrapS, int32(gpu.ClampToEdge))
		dev.TexParameteri(gpu.TextureCubeMap, gpu.TextureWrapT, int32(gpu.ClampToEdge))
		dev.TexParameteri(gpu.TextureCubeMap, gpu.TextureWrapR, int32(gpu.ClampToEdge))
		dev.TexParameteri(gpu.TextureCubeMap, gpu.TextureMinFilter, int32(gpu.Linear))
		dev.TexParameteri(gpu.TextureCubeMap, gpu.TextureMagFilter, int32(gpu.Linear))
		if anisotropic {
			dev.TexParameterf(gpu.TextureCubeMap, gpu.TextureMaxAnisotropy, dev.MaxAnisotropy())
		}
	})
}

// CubeMap binds a six-face cube map to unit 0.
type CubeMap struct {
	Core
	dev  gpu.Device
	cube cubeImage
	binder
}

var _ scene.Core = (*CubeMap)(nil)

func NewCubeMap(dev gpu.Device) *CubeMap {
	return &CubeMap{Core: newCore(), dev: dev}
}

// SetCubeMap uploads six width x height RGBA faces ordered +x, -x, +y, -y,
// +z, -z.
func (c *CubeMap) SetCubeMap(width, height int, faces [][]byte) error {
	if err := checkFaces("cube map", width, height, faces); err != nil {
		return err
	}
	c.cube.set(c.dev, "cube map", width, height, faces, true)
	return nil
}

func (c *CubeMap) Handle() uint32 {
	return c.cube.handle
}

func (c *CubeMap) Size() (int, int) {
	return c.cube.width, c.cube.height
}

func (c *CubeMap) Valid() bool {
	return c.cube.handle != 0
}

func (c *CubeMap) Render(state *scene.RenderState) {
	c.Core.Render(state)
	c.bind(c.dev, []slot{{unit: c.cube.unit, target: gpu.TextureCubeMap, texture: c.cube.handle}})
}

func (c *CubeMap) RenderPost(state *scene.RenderState) {
	if !c.restore(c.dev) {
		logger.Errorf("cube map %d: RenderPost without Render", c.cube.handle)
	}
	c.Core.RenderPost(state)
}

func (c *CubeMap) Destroy(alive gpu.Liveness) {
	release(c.dev, alive, &c.cube.handle)
}
