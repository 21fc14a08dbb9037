package shader

import (
	"errors"
	"fmt"
	"unsafe"

	"glscene/internal/gpu"
	"glscene/internal/log"
	"glscene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

var logger = log.New("shader")

// ShaderID identifies one shader unit. Name is only used in diagnostics,
// typically the source file name.
type ShaderID struct {
	Shader uint32
	Name   string
}

type savedProgram struct {
	program uint32
	shader  scene.Program
}

// Core binds a shader program for its subtree and restores the previously
// bound program afterwards. Uniform setters push straight to the program
// object, so they work whether or not the program is currently bound.
type Core struct {
	dev     gpu.Device
	program uint32
	units   []ShaderID
	linked  bool

	// name -> location memo. Filled on first query, valid while program is
	// linked, dropped by Clear. Not part of the observable state.
	locations map[string]int32

	saved []savedProgram
}

var _ scene.Core = (*Core)(nil)
var _ scene.Program = (*Core)(nil)

// New wraps a program handle and the units attached to it. Init must be
// called before the core is rendered or queried.
func New(dev gpu.Device, program uint32, units []ShaderID) *Core {
	return &Core{
		dev:       dev,
		program:   program,
		units:     append([]ShaderID(nil), units...),
		locations: make(map[string]int32),
	}
}

// Program returns the program handle, 0 once cleared.
func (c *Core) Program() uint32 {
	return c.program
}

// Units returns the shader units the program is built from.
func (c *Core) Units() []ShaderID {
	return append([]ShaderID(nil), c.units...)
}

// Valid reports whether Init linked the program successfully.
func (c *Core) Valid() bool {
	return c.linked && c.program != 0
}

// BindAttribLocation assigns a vertex attribute index before linking.
func (c *Core) BindAttribLocation(index uint32, name string) {
	c.dev.BindAttribLocation(c.program, index, name)
}

// BindFragDataLocation assigns a fragment output before linking.
func (c *Core) BindFragDataLocation(color uint32, name string) {
	c.dev.BindFragDataLocation(c.program, color, name)
}

// Init compiles every unit and links the program. Compile errors of all
// units are reported together; linking is only attempted when every unit
// compiled. On error the core stays unusable. Calling Init again after a
// successful link does nothing.
func (c *Core) Init() error {
	if c.linked {
		return nil
	}
	if c.program == 0 {
		return ErrInvalidState
	}
	if len(c.units) == 0 {
		return ErrNoUnits
	}

	var errs []error
	for _, unit := range c.units {
		c.dev.CompileShader(unit.Shader)
		if ok, msg := c.dev.ShaderStatus(unit.Shader); !ok {
			err := &CompileError{Unit: unit.Name, Log: msg}
			logger.Error(err.Error())
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.dev.LinkProgram(c.program)
	if ok, msg := c.dev.ProgramStatus(c.program); !ok {
		err := &LinkError{Units: c.unitNames(), Log: msg}
		logger.Error(err.Error())
		return err
	}
	c.linked = true
	logger.Debugf("linked program %d from %v", c.program, c.unitNames())
	return nil
}

func (c *Core) unitNames() []string {
	names := make([]string, len(c.units))
	for i, u := range c.units {
		names[i] = u.Name
	}
	return names
}

// UniformLocation returns the location of a uniform variable, -1 if the
// program has no active uniform of that name. The driver is asked at most
// once per name. Querying before a successful Init panics.
func (c *Core) UniformLocation(name string) int32 {
	if !c.Valid() {
		panic(fmt.Errorf("%w: uniform %q queried on unlinked program", scene.ErrContractViolation, name))
	}
	loc, ok := c.locations[name]
	if !ok {
		loc = c.dev.UniformLocation(c.program, name)
		c.locations[name] = loc
	}
	return loc
}

func (c *Core) SetUniform1i(name string, value int32) {
	c.dev.ProgramUniform1i(c.program, c.UniformLocation(name), value)
}

func (c *Core) SetUniform1iv(name string, values ...int32) {
	c.dev.ProgramUniform1iv(c.program, c.UniformLocation(name), values)
}

func (c *Core) SetUniform1f(name string, value float32) {
	c.dev.ProgramUniform1f(c.program, c.UniformLocation(name), value)
}

func (c *Core) SetUniform1fv(name string, values ...float32) {
	c.dev.ProgramUniformfv(c.program, c.UniformLocation(name), 1, values)
}

func (c *Core) SetUniform2fv(name string, values ...mgl32.Vec2) {
	c.dev.ProgramUniformfv(c.program, c.UniformLocation(name), 2, floats(values, 2))
}

func (c *Core) SetUniform3fv(name string, values ...mgl32.Vec3) {
	c.dev.ProgramUniformfv(c.program, c.UniformLocation(name), 3, floats(values, 3))
}

func (c *Core) SetUniform4fv(name string, values ...mgl32.Vec4) {
	c.dev.ProgramUniformfv(c.program, c.UniformLocation(name), 4, floats(values, 4))
}

func (c *Core) SetUniformMatrix2fv(name string, values ...mgl32.Mat2) {
	c.dev.ProgramUniformMatrixfv(c.program, c.UniformLocation(name), 2, floats(values, 4))
}

func (c *Core) SetUniformMatrix3fv(name string, values ...mgl32.Mat3) {
	c.dev.ProgramUniformMatrixfv(c.program, c.UniformLocation(name), 3, floats(values, 9))
}

func (c *Core) SetUniformMatrix4fv(name string, values ...mgl32.Mat4) {
	c.dev.ProgramUniformMatrixfv(c.program, c.UniformLocation(name), 4, floats(values, 16))
}

// floats views a slice of fixed-size float32 arrays as one flat slice.
func floats[T any](values []T, n int) []float32 {
	if len(values) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&values[0])), len(values)*n)
}

// Render binds the program and makes it the active shader of state.
func (c *Core) Render(state *scene.RenderState) {
	c.saved = append(c.saved, savedProgram{
		program: c.dev.CurrentProgram(),
		shader:  state.SetShader(c),
	})
	c.dev.UseProgram(c.program)
}

// RenderPost rebinds the program and active shader saved by Render.
func (c *Core) RenderPost(state *scene.RenderState) {
	n := len(c.saved)
	if n == 0 {
		logger.Errorf("program %d: RenderPost without Render", c.program)
		return
	}
	prev := c.saved[n-1]
	c.saved = c.saved[:n-1]
	c.dev.UseProgram(prev.program)
	state.SetShader(prev.shader)
}

// Clear deletes the shader units and the program. It is safe to call more
// than once.
func (c *Core) Clear() {
	for i := range c.units {
		if c.units[i].Shader != 0 {
			c.dev.DeleteShader(c.units[i].Shader)
			c.units[i].Shader = 0
		}
	}
	if c.program != 0 {
		c.dev.DeleteProgram(c.program)
	}
	c.forget()
}

// Destroy clears the core if the graphics context is still alive and only
// forgets the handles otherwise.
func (c *Core) Destroy(alive gpu.Liveness) {
	if alive == nil || alive() {
		c.Clear()
		return
	}
	for i := range c.units {
		c.units[i].Shader = 0
	}
	c.forget()
}

func (c *Core) forget() {
	c.program = 0
	c.linked = false
	c.locations = make(map[string]int32)
}
