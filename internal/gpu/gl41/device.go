// Package gl41 implements gpu.Device on top of the OpenGL 4.1 core profile.
package gl41

import (
	"strings"

	"glscene/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Device forwards calls to the current OpenGL context. gl.Init must have
// succeeded on the calling thread before any method is used.
type Device struct{}

// New initializes the OpenGL bindings for the current context.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return &Device{}, nil
}

// ContextActive reports whether a glfw context is current on this thread.
func ContextActive() bool {
	return glfw.GetCurrentContext() != nil
}

var _ gpu.Device = (*Device)(nil)

func (d *Device) CreateShader(kind gpu.Enum) uint32 {
	return gl.CreateShader(uint32(kind))
}

func (d *Device) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (d *Device) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *Device) ShaderStatus(shader uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Device) BindAttribLocation(program, index uint32, name string) {
	gl.BindAttribLocation(program, index, gl.Str(name+"\x00"))
}

func (d *Device) BindFragDataLocation(program, color uint32, name string) {
	gl.BindFragDataLocation(program, color, gl.Str(name+"\x00"))
}

func (d *Device) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Device) ProgramStatus(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) CurrentProgram() uint32 {
	var program int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &program)
	return uint32(program)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) ProgramUniform1i(program uint32, location int32, v int32) {
	gl.ProgramUniform1i(program, location, v)
}

func (d *Device) ProgramUniform1iv(program uint32, location int32, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.ProgramUniform1iv(program, location, int32(len(v)), &v[0])
}

func (d *Device) ProgramUniform1f(program uint32, location int32, v float32) {
	gl.ProgramUniform1f(program, location, v)
}

func (d *Device) ProgramUniformfv(program uint32, location int32, components int, v []float32) {
	if len(v) < components {
		return
	}
	count := int32(len(v) / components)
	switch components {
	case 1:
		gl.ProgramUniform1fv(program, location, count, &v[0])
	case 2:
		gl.ProgramUniform2fv(program, location, count, &v[0])
	case 3:
		gl.ProgramUniform3fv(program, location, count, &v[0])
	case 4:
		gl.ProgramUniform4fv(program, location, count, &v[0])
	}
}

func (d *Device) ProgramUniformMatrixfv(program uint32, location int32, dim int, v []float32) {
	if len(v) < dim*dim {
		return
	}
	count := int32(len(v) / (dim * dim))
	switch dim {
	case 2:
		gl.ProgramUniformMatrix2fv(program, location, count, false, &v[0])
	case 3:
		gl.ProgramUniformMatrix3fv(program, location, count, false, &v[0])
	case 4:
		gl.ProgramUniformMatrix4fv(program, location, count, false, &v[0])
	}
}

func (d *Device) GenTexture() uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	return texture
}

func (d *Device) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (d *Device) IsTexture(texture uint32) bool {
	return gl.IsTexture(texture)
}

func (d *Device) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *Device) ActiveTextureUnit() uint32 {
	var unit int32
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &unit)
	return uint32(unit) - gl.TEXTURE0
}

func (d *Device) BindTexture(target gpu.Enum, texture uint32) {
	gl.BindTexture(uint32(target), texture)
}

func (d *Device) TextureBinding(target gpu.Enum) uint32 {
	var pname uint32
	switch target {
	case gpu.TextureCubeMap:
		pname = gl.TEXTURE_BINDING_CUBE_MAP
	default:
		pname = gl.TEXTURE_BINDING_2D
	}
	var texture int32
	gl.GetIntegerv(pname, &texture)
	return uint32(texture)
}

func (d *Device) TexParameteri(target, pname gpu.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (d *Device) TexParameterf(target, pname gpu.Enum, param float32) {
	gl.TexParameterf(uint32(target), uint32(pname), param)
}

func (d *Device) MaxAnisotropy() float32 {
	var maxAnisotropy float32
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &maxAnisotropy)
	return maxAnisotropy
}

func (d *Device) TexImage2D(target gpu.Enum, width, height int, rgba []byte) {
	var pix interface{}
	if len(rgba) > 0 {
		pix = rgba
	}
	gl.TexImage2D(
		uint32(target),
		0,
		gl.RGBA8,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pix),
	)
}

func (d *Device) GenerateMipmap(target gpu.Enum) {
	gl.GenerateMipmap(uint32(target))
}

func (d *Device) ReadTexImage(target gpu.Enum, width, height int) []byte {
	pix := make([]byte, width*height*4)
	if len(pix) == 0 {
		return pix
	}
	gl.GetTexImage(uint32(target), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return pix
}

func (d *Device) Error() uint32 {
	return gl.GetError()
}
