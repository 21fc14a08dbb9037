// Package gputest provides an in-memory gpu.Device for tests. It tracks the
// same binding points a real driver does (bound program, active unit,
// per-unit texture bindings) and keeps texture images and uniform values so
// tests can read back what the cores pushed.
package gputest

import (
	"fmt"
	"strings"

	"glscene/internal/gpu"
)

// FailMarker makes a shader source fail to compile when present.
const FailMarker = "#error"

type shaderObject struct {
	kind     gpu.Enum
	source   string
	compiled bool
	log      string
}

type programObject struct {
	shaders   []uint32
	linked    bool
	log       string
	attribs   map[string]uint32
	fragData  map[string]uint32
	locations map[string]int32
	names     map[int32]string
	values    map[int32]interface{}
}

// Image is one uploaded texture level.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Texture is the recorded state of one texture object.
type Texture struct {
	Target  gpu.Enum
	Params  map[gpu.Enum]float32
	Images  map[gpu.Enum]Image
	Mipmaps bool
}

// Device is a recording gpu.Device. The zero value is not usable; call New.
type Device struct {
	// MaxAniso is reported by MaxAnisotropy.
	MaxAniso float32
	// LinkFails forces every link to fail.
	LinkFails bool

	next     uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	textures map[uint32]*Texture

	current  uint32
	unit     uint32
	bindings map[uint32]map[gpu.Enum]uint32

	queries         map[uint32]map[string]int
	texturesCreated int
	deleted         []uint32
	errors          []uint32
	calls           []string
}

var _ gpu.Device = (*Device)(nil)

// New returns an empty device with 16x anisotropy support.
func New() *Device {
	return &Device{
		MaxAniso: 16,
		next:     1,
		shaders:  make(map[uint32]*shaderObject),
		programs: make(map[uint32]*programObject),
		textures: make(map[uint32]*Texture),
		bindings: make(map[uint32]map[gpu.Enum]uint32),
		queries:  make(map[uint32]map[string]int),
	}
}

func (d *Device) record(call string) {
	d.calls = append(d.calls, call)
}

func (d *Device) handle() uint32 {
	h := d.next
	d.next++
	return h
}

// Calls returns the names of every method invoked, in order.
func (d *Device) Calls() []string {
	return append([]string(nil), d.calls...)
}

// ResetCalls clears the call log.
func (d *Device) ResetCalls() {
	d.calls = nil
}

// CallCount returns how often the named method was invoked.
func (d *Device) CallCount(call string) int {
	n := 0
	for _, c := range d.calls {
		if c == call {
			n++
		}
	}
	return n
}

// PushError queues a driver error code returned by Error.
func (d *Device) PushError(code uint32) {
	d.errors = append(d.errors, code)
}

func (d *Device) CreateShader(kind gpu.Enum) uint32 {
	d.record("CreateShader")
	h := d.handle()
	d.shaders[h] = &shaderObject{kind: kind}
	return h
}

func (d *Device) ShaderSource(shader uint32, source string) {
	d.record("ShaderSource")
	if s, ok := d.shaders[shader]; ok {
		s.source = source
	}
}

func (d *Device) CompileShader(shader uint32) {
	d.record("CompileShader")
	s, ok := d.shaders[shader]
	if !ok {
		return
	}
	if strings.Contains(s.source, FailMarker) {
		s.compiled = false
		s.log = "0:1(1): error: " + strings.TrimSpace(s.source)
		return
	}
	s.compiled = true
	s.log = ""
}

func (d *Device) ShaderStatus(shader uint32) (bool, string) {
	d.record("ShaderStatus")
	s, ok := d.shaders[shader]
	if !ok {
		return false, fmt.Sprintf("invalid shader %d", shader)
	}
	return s.compiled, s.log
}

func (d *Device) DeleteShader(shader uint32) {
	d.record("DeleteShader")
	delete(d.shaders, shader)
}

// ShaderExists reports whether a shader object is still allocated.
func (d *Device) ShaderExists(shader uint32) bool {
	_, ok := d.shaders[shader]
	return ok
}

func (d *Device) CreateProgram() uint32 {
	d.record("CreateProgram")
	h := d.handle()
	d.programs[h] = &programObject{
		attribs:   make(map[string]uint32),
		fragData:  make(map[string]uint32),
		locations: make(map[string]int32),
		names:     make(map[int32]string),
		values:    make(map[int32]interface{}),
	}
	return h
}

func (d *Device) AttachShader(program, shader uint32) {
	d.record("AttachShader")
	if p, ok := d.programs[program]; ok {
		p.shaders = append(p.shaders, shader)
	}
}

func (d *Device) BindAttribLocation(program, index uint32, name string) {
	d.record("BindAttribLocation")
	if p, ok := d.programs[program]; ok {
		p.attribs[name] = index
	}
}

func (d *Device) BindFragDataLocation(program, color uint32, name string) {
	d.record("BindFragDataLocation")
	if p, ok := d.programs[program]; ok {
		p.fragData[name] = color
	}
}

// AttribLocation returns a location bound with BindAttribLocation.
func (d *Device) AttribLocation(program uint32, name string) (uint32, bool) {
	p, ok := d.programs[program]
	if !ok {
		return 0, false
	}
	idx, ok := p.attribs[name]
	return idx, ok
}

// FragDataLocation returns a location bound with BindFragDataLocation.
func (d *Device) FragDataLocation(program uint32, name string) (uint32, bool) {
	p, ok := d.programs[program]
	if !ok {
		return 0, false
	}
	idx, ok := p.fragData[name]
	return idx, ok
}

func (d *Device) LinkProgram(program uint32) {
	d.record("LinkProgram")
	p, ok := d.programs[program]
	if !ok {
		return
	}
	p.linked = false
	if d.LinkFails {
		p.log = "error: linking failed"
		return
	}
	for _, sh := range p.shaders {
		s, ok := d.shaders[sh]
		if !ok || !s.compiled {
			p.log = fmt.Sprintf("error: shader %d not compiled", sh)
			return
		}
	}
	p.linked = true
	p.log = ""
}

func (d *Device) ProgramStatus(program uint32) (bool, string) {
	d.record("ProgramStatus")
	p, ok := d.programs[program]
	if !ok {
		return false, fmt.Sprintf("invalid program %d", program)
	}
	return p.linked, p.log
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram")
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

// ProgramExists reports whether a program object is still allocated.
func (d *Device) ProgramExists(program uint32) bool {
	_, ok := d.programs[program]
	return ok
}

func (d *Device) CurrentProgram() uint32 {
	d.record("CurrentProgram")
	return d.current
}

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram")
	d.current = program
}

// BoundProgram returns the bound program without recording a call.
func (d *Device) BoundProgram() uint32 {
	return d.current
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation")
	if d.queries[program] == nil {
		d.queries[program] = make(map[string]int)
	}
	d.queries[program][name]++
	p, ok := d.programs[program]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := int32(len(p.locations))
	p.locations[name] = loc
	p.names[loc] = name
	return loc
}

// UniformQueries returns how often the location of name was queried.
func (d *Device) UniformQueries(program uint32, name string) int {
	return d.queries[program][name]
}

func (d *Device) setUniform(program uint32, location int32, v interface{}) {
	p, ok := d.programs[program]
	if !ok || location < 0 {
		return
	}
	p.values[location] = v
}

// Uniform returns the last value pushed to the named uniform: an int32,
// float32, []int32 or []float32.
func (d *Device) Uniform(program uint32, name string) (interface{}, bool) {
	p, ok := d.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.locations[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

func (d *Device) ProgramUniform1i(program uint32, location int32, v int32) {
	d.record("ProgramUniform1i")
	d.setUniform(program, location, v)
}

func (d *Device) ProgramUniform1iv(program uint32, location int32, v []int32) {
	d.record("ProgramUniform1iv")
	d.setUniform(program, location, append([]int32(nil), v...))
}

func (d *Device) ProgramUniform1f(program uint32, location int32, v float32) {
	d.record("ProgramUniform1f")
	d.setUniform(program, location, v)
}

func (d *Device) ProgramUniformfv(program uint32, location int32, components int, v []float32) {
	d.record(fmt.Sprintf("ProgramUniform%dfv", components))
	d.setUniform(program, location, append([]float32(nil), v...))
}

func (d *Device) ProgramUniformMatrixfv(program uint32, location int32, dim int, v []float32) {
	d.record(fmt.Sprintf("ProgramUniformMatrix%dfv", dim))
	d.setUniform(program, location, append([]float32(nil), v...))
}

func (d *Device) GenTexture() uint32 {
	d.record("GenTexture")
	h := d.handle()
	d.textures[h] = &Texture{
		Params: make(map[gpu.Enum]float32),
		Images: make(map[gpu.Enum]Image),
	}
	d.texturesCreated++
	return h
}

// TexturesCreated returns how many texture objects were ever generated.
func (d *Device) TexturesCreated() int {
	return d.texturesCreated
}

// LiveTextures returns how many texture objects are currently allocated.
func (d *Device) LiveTextures() int {
	return len(d.textures)
}

// DeletedTextures returns every handle passed to DeleteTexture.
func (d *Device) DeletedTextures() []uint32 {
	return append([]uint32(nil), d.deleted...)
}

// Texture returns the recorded state of a texture object.
func (d *Device) Texture(texture uint32) (*Texture, bool) {
	t, ok := d.textures[texture]
	return t, ok
}

func (d *Device) DeleteTexture(texture uint32) {
	d.record("DeleteTexture")
	if texture == 0 {
		return
	}
	d.deleted = append(d.deleted, texture)
	delete(d.textures, texture)
	for _, targets := range d.bindings {
		for target, bound := range targets {
			if bound == texture {
				targets[target] = 0
			}
		}
	}
}

func (d *Device) IsTexture(texture uint32) bool {
	d.record("IsTexture")
	t, ok := d.textures[texture]
	return ok && t.Target != 0
}

func (d *Device) ActiveTexture(unit uint32) {
	d.record("ActiveTexture")
	d.unit = unit
}

func (d *Device) ActiveTextureUnit() uint32 {
	d.record("ActiveTextureUnit")
	return d.unit
}

// Unit returns the active texture unit without recording a call.
func (d *Device) Unit() uint32 {
	return d.unit
}

func (d *Device) BindTexture(target gpu.Enum, texture uint32) {
	d.record("BindTexture")
	if d.bindings[d.unit] == nil {
		d.bindings[d.unit] = make(map[gpu.Enum]uint32)
	}
	d.bindings[d.unit][target] = texture
	if t, ok := d.textures[texture]; ok && t.Target == 0 {
		t.Target = target
	}
}

func (d *Device) TextureBinding(target gpu.Enum) uint32 {
	d.record("TextureBinding")
	return d.Binding(d.unit, target)
}

// Binding returns the texture bound to target on unit without recording a call.
func (d *Device) Binding(unit uint32, target gpu.Enum) uint32 {
	return d.bindings[unit][target]
}

func (d *Device) bound(target gpu.Enum) *Texture {
	return d.textures[d.Binding(d.unit, target)]
}

func baseTarget(target gpu.Enum) gpu.Enum {
	if target >= gpu.TextureCubeMapPositiveX && target <= gpu.TextureCubeMapNegativeZ {
		return gpu.TextureCubeMap
	}
	return target
}

func (d *Device) TexParameteri(target, pname gpu.Enum, param int32) {
	d.record("TexParameteri")
	if t := d.bound(target); t != nil {
		t.Params[pname] = float32(param)
	}
}

func (d *Device) TexParameterf(target, pname gpu.Enum, param float32) {
	d.record("TexParameterf")
	if t := d.bound(target); t != nil {
		t.Params[pname] = param
	}
}

func (d *Device) MaxAnisotropy() float32 {
	d.record("MaxAnisotropy")
	return d.MaxAniso
}

func (d *Device) TexImage2D(target gpu.Enum, width, height int, rgba []byte) {
	d.record("TexImage2D")
	t := d.bound(baseTarget(target))
	if t == nil {
		return
	}
	t.Images[target] = Image{Width: width, Height: height, Pix: append([]byte(nil), rgba...)}
}

func (d *Device) GenerateMipmap(target gpu.Enum) {
	d.record("GenerateMipmap")
	if t := d.bound(target); t != nil {
		t.Mipmaps = true
	}
}

func (d *Device) ReadTexImage(target gpu.Enum, width, height int) []byte {
	d.record("ReadTexImage")
	t := d.bound(baseTarget(target))
	if t == nil {
		return nil
	}
	img, ok := t.Images[target]
	if !ok || img.Width != width || img.Height != height {
		return nil
	}
	return append([]byte(nil), img.Pix...)
}

func (d *Device) Error() uint32 {
	if len(d.errors) == 0 {
		return gpu.NoError
	}
	code := d.errors[0]
	d.errors = d.errors[1:]
	return code
}

// Snapshot captures the global binding points the render cores are required
// to restore: bound program, active unit and every unit's bindings.
type Snapshot struct {
	Program  uint32
	Unit     uint32
	Bindings map[uint32]map[gpu.Enum]uint32
}

// Snapshot returns a deep copy of the current binding state. Units and
// targets bound to zero are omitted so snapshots compare by content.
func (d *Device) Snapshot() Snapshot {
	s := Snapshot{
		Program:  d.current,
		Unit:     d.unit,
		Bindings: make(map[uint32]map[gpu.Enum]uint32),
	}
	for unit, targets := range d.bindings {
		for target, tex := range targets {
			if tex == 0 {
				continue
			}
			if s.Bindings[unit] == nil {
				s.Bindings[unit] = make(map[gpu.Enum]uint32)
			}
			s.Bindings[unit][target] = tex
		}
	}
	return s
}
