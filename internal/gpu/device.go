// Package gpu is the narrow boundary between scene-graph cores and the
// graphics driver. Cores only talk to a Device, which lets the render-state
// kernel run against the OpenGL 4.1 driver (package gl41) in the viewer and
// against an in-memory recorder (package gputest) in tests.
package gpu

// Enum mirrors an OpenGL enumerant. Values are the GL numeric constants so a
// driver implementation can pass them straight through.
type Enum uint32

// Shader kinds
const (
	FragmentShader       Enum = 0x8B30
	VertexShader         Enum = 0x8B31
	GeometryShader       Enum = 0x8DD9
	TessEvaluationShader Enum = 0x8E87
	TessControlShader    Enum = 0x8E88
)

// Texture targets
const (
	Texture2D      Enum = 0x0DE1
	TextureCubeMap Enum = 0x8513

	TextureCubeMapPositiveX Enum = 0x8515
	TextureCubeMapNegativeX Enum = 0x8516
	TextureCubeMapPositiveY Enum = 0x8517
	TextureCubeMapNegativeY Enum = 0x8518
	TextureCubeMapPositiveZ Enum = 0x8519
	TextureCubeMapNegativeZ Enum = 0x851A
)

// CubeMapFaces lists the face targets in upload order: +x, -x, +y, -y, +z, -z.
var CubeMapFaces = [6]Enum{
	TextureCubeMapPositiveX, TextureCubeMapNegativeX,
	TextureCubeMapPositiveY, TextureCubeMapNegativeY,
	TextureCubeMapPositiveZ, TextureCubeMapNegativeZ,
}

// Texture parameter names
const (
	TextureMagFilter     Enum = 0x2800
	TextureMinFilter     Enum = 0x2801
	TextureWrapS         Enum = 0x2802
	TextureWrapT         Enum = 0x2803
	TextureWrapR         Enum = 0x8072
	TextureMaxAnisotropy Enum = 0x84FE
)

// Texture parameter values
const (
	Nearest              Enum = 0x2600
	Linear               Enum = 0x2601
	NearestMipmapNearest Enum = 0x2700
	LinearMipmapNearest  Enum = 0x2701
	NearestMipmapLinear  Enum = 0x2702
	LinearMipmapLinear   Enum = 0x2703
	Repeat               Enum = 0x2901
	ClampToEdge          Enum = 0x812F
	MirroredRepeat       Enum = 0x8370
)

// NoError is returned by Device.Error when the driver error queue is empty.
const NoError uint32 = 0

// IsMipmapFilter reports whether a minification filter samples mip levels.
func IsMipmapFilter(filter Enum) bool {
	switch filter {
	case NearestMipmapNearest, LinearMipmapNearest, NearestMipmapLinear, LinearMipmapLinear:
		return true
	}
	return false
}

// Device exposes the driver calls the render cores need. All methods must be
// invoked on the thread that owns the graphics context.
type Device interface {
	CreateShader(kind Enum) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	// ShaderStatus returns the compile status and the driver's info log.
	ShaderStatus(shader uint32) (ok bool, log string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	BindAttribLocation(program, index uint32, name string)
	BindFragDataLocation(program, color uint32, name string)
	LinkProgram(program uint32)
	// ProgramStatus returns the link status and the driver's info log.
	ProgramStatus(program uint32) (ok bool, log string)
	DeleteProgram(program uint32)

	// CurrentProgram returns the globally bound program, 0 if none.
	CurrentProgram() uint32
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	ProgramUniform1i(program uint32, location int32, v int32)
	ProgramUniform1iv(program uint32, location int32, v []int32)
	ProgramUniform1f(program uint32, location int32, v float32)
	// ProgramUniformfv uploads len(v)/components vectors of 1 to 4 components.
	ProgramUniformfv(program uint32, location int32, components int, v []float32)
	// ProgramUniformMatrixfv uploads len(v)/(dim*dim) column-major square
	// matrices of dimension 2, 3 or 4, never transposed.
	ProgramUniformMatrixfv(program uint32, location int32, dim int, v []float32)

	GenTexture() uint32
	DeleteTexture(texture uint32)
	IsTexture(texture uint32) bool
	// ActiveTexture selects texture unit i (GL_TEXTURE0 + i).
	ActiveTexture(unit uint32)
	// ActiveTextureUnit returns the index of the selected texture unit.
	ActiveTextureUnit() uint32
	BindTexture(target Enum, texture uint32)
	// TextureBinding returns the texture bound to target on the active unit.
	TextureBinding(target Enum) uint32
	TexParameteri(target, pname Enum, param int32)
	TexParameterf(target, pname Enum, param float32)
	// MaxAnisotropy returns the largest anisotropy level the driver supports.
	MaxAnisotropy() float32
	// TexImage2D uploads level 0 of an 8-bit RGBA image to target.
	TexImage2D(target Enum, width, height int, rgba []byte)
	GenerateMipmap(target Enum)
	// ReadTexImage reads level 0 of target back as 8-bit RGBA.
	ReadTexImage(target Enum, width, height int) []byte

	// Error pops one entry off the driver error queue.
	Error() uint32
}

// Liveness reports whether the graphics context that owns GPU handles is
// still current. Destructors consult it before issuing deletion calls.
type Liveness func() bool

// Alive is a Liveness that always reports an active context.
func Alive() bool { return true }

// DrainErrors pops every pending driver error.
func DrainErrors(dev Device) []uint32 {
	var errs []uint32
	for i := 0; i < 16; i++ {
		code := dev.Error()
		if code == NoError {
			break
		}
		errs = append(errs, code)
	}
	return errs
}
