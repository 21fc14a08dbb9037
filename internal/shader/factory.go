package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"glscene/internal/asset"
	"glscene/internal/gpu"
	"glscene/internal/profiling"
)

// File names a shader source file and its kind.
type File struct {
	Kind gpu.Enum
	Name string
}

// Source is an in-memory shader unit. Name shows up in compile errors.
type Source struct {
	Kind gpu.Enum
	Name string
	Code string
}

var kindByExt = map[string]gpu.Enum{
	".vert": gpu.VertexShader,
	".vs":   gpu.VertexShader,
	".frag": gpu.FragmentShader,
	".fs":   gpu.FragmentShader,
	".geom": gpu.GeometryShader,
	".gs":   gpu.GeometryShader,
	".tesc": gpu.TessControlShader,
	".tese": gpu.TessEvaluationShader,
}

// Files builds File entries from names, deriving each kind from the file
// extension (.vert, .frag, .geom, .tesc, .tese).
func Files(names ...string) ([]File, error) {
	files := make([]File, 0, len(names))
	for _, name := range names {
		kind, ok := kindByExt[strings.ToLower(filepath.Ext(name))]
		if !ok {
			return nil, fmt.Errorf("shader: cannot derive shader kind of %s", name)
		}
		files = append(files, File{Kind: kind, Name: name})
	}
	return files, nil
}

// Factory creates shader cores from files found along a search path.
type Factory struct {
	dev   gpu.Device
	paths *asset.SearchPath
}

// NewFactory creates a factory; pathLists are list-separated directories.
func NewFactory(dev gpu.Device, pathLists ...string) *Factory {
	return &Factory{dev: dev, paths: asset.NewSearchPath(pathLists...)}
}

func (f *Factory) AddSearchPath(pathList string) {
	f.paths.Add(pathList)
}

// BuildFromFiles reads every file, then creates the units and the program
// with sources attached. The core is returned uninitialized so that
// attribute and fragment output locations can be bound before Init.
func (f *Factory) BuildFromFiles(files ...File) (*Core, error) {
	srcs := make([]Source, 0, len(files))
	for _, file := range files {
		path, err := f.paths.Resolve(file.Name)
		if err != nil {
			return nil, err
		}
		code, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("shader: could not read %s: %w", path, err)
		}
		srcs = append(srcs, Source{Kind: file.Kind, Name: file.Name, Code: string(code)})
	}
	return f.BuildFromSources(srcs...)
}

// BuildFromSources creates an uninitialized core from in-memory sources.
func (f *Factory) BuildFromSources(srcs ...Source) (*Core, error) {
	if len(srcs) == 0 {
		return nil, ErrNoUnits
	}
	program := f.dev.CreateProgram()
	units := make([]ShaderID, 0, len(srcs))
	for _, src := range srcs {
		sh := f.dev.CreateShader(src.Kind)
		f.dev.ShaderSource(sh, src.Code)
		f.dev.AttachShader(program, sh)
		units = append(units, ShaderID{Shader: sh, Name: src.Name})
	}
	return New(f.dev, program, units), nil
}

// CreateFromFiles builds and initializes a core. On a compile or link error
// the GPU objects are released and no core is returned.
func (f *Factory) CreateFromFiles(files ...File) (*Core, error) {
	defer profiling.Track("shader.CreateFromFiles")()
	c, err := f.BuildFromFiles(files...)
	if err != nil {
		return nil, err
	}
	return initOrClear(c)
}

// CreateFromSources builds and initializes a core from in-memory sources.
func (f *Factory) CreateFromSources(srcs ...Source) (*Core, error) {
	c, err := f.BuildFromSources(srcs...)
	if err != nil {
		return nil, err
	}
	return initOrClear(c)
}

func initOrClear(c *Core) (*Core, error) {
	if err := c.Init(); err != nil {
		c.Clear()
		return nil, err
	}
	return c, nil
}
