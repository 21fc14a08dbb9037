package texture

import (
	"errors"
	"fmt"

	"glscene/internal/asset"
	"glscene/internal/gpu"
	"glscene/internal/profiling"
	"glscene/internal/scene"
)

// Factory loads texture cores from image files resolved along a search path.
// Decoded pixel buffers are freed once uploaded, and no GPU object is
// created when any file of a request fails to load.
type Factory struct {
	dev      gpu.Device
	decoder  asset.Decoder
	paths    *asset.SearchPath
	schedule Schedule
}

type Option func(*Factory)

// WithSearchPath adds list-separated directories to the search path.
func WithSearchPath(pathList string) Option {
	return func(f *Factory) {
		f.paths.Add(pathList)
	}
}

// WithSchedule sets the blend schedule of every skybox the factory creates.
func WithSchedule(s Schedule) Option {
	return func(f *Factory) {
		f.schedule = s
	}
}

// NewFactory creates a factory. A nil decoder selects asset.ImageDecoder.
func NewFactory(dev gpu.Device, decoder asset.Decoder, opts ...Option) *Factory {
	if decoder == nil {
		decoder = asset.ImageDecoder{}
	}
	f := &Factory{
		dev:      dev,
		decoder:  decoder,
		paths:    asset.NewSearchPath(),
		schedule: DefaultSchedule(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) AddSearchPath(pathList string) {
	f.paths.Add(pathList)
}

// SearchPath returns the directories consulted for bare file names.
func (f *Factory) SearchPath() []string {
	return f.paths.Dirs()
}

func (f *Factory) load(name string) (*asset.Image, error) {
	path, err := f.paths.Resolve(name)
	if err != nil {
		return nil, err
	}
	img, err := f.decoder.Decode(path, asset.Channels)
	if err != nil {
		var de *asset.DecodeError
		if !errors.As(err, &de) {
			err = &asset.DecodeError{Path: path, Err: err}
		}
		return nil, err
	}
	return img, nil
}

// images collects decoded buffers so that one deferred call frees them all.
type images []*asset.Image

func (ims images) free() {
	for _, im := range ims {
		im.Free()
	}
}

// faces returns the pixel buffers of a cube map set after checking that all
// faces share the first face's size.
func faces(what string, names []string, set []*asset.Image) (int, int, [][]byte, error) {
	w, h := set[0].Width, set[0].Height
	pix := make([][]byte, len(set))
	for i, im := range set {
		if im.Width != w || im.Height != h {
			return 0, 0, nil, fmt.Errorf("%w: %s face %s is %dx%d, face %s is %dx%d",
				ErrFaceSizeMismatch, what, names[i], im.Width, im.Height, names[0], w, h)
		}
		pix[i] = im.Pix
	}
	return w, h, pix, nil
}

func checkNames(what string, names []string) error {
	if len(names) != len(gpu.CubeMapFaces) {
		return fmt.Errorf("%w: %s needs %d face files, got %d",
			scene.ErrContractViolation, what, len(gpu.CubeMapFaces), len(names))
	}
	return nil
}

// Create2DTextureFromFile loads one image into a 2D texture.
func (f *Factory) Create2DTextureFromFile(name string, s Sampling) (*Texture2D, error) {
	defer profiling.Track("texture.Create2DTextureFromFile")()

	img, err := f.load(name)
	if err != nil {
		return nil, err
	}
	defer img.Free()

	t := NewTexture2D(f.dev)
	if err := t.SetTexture(img.Width, img.Height, img.Pix, s); err != nil {
		t.Destroy(gpu.Alive)
		return nil, err
	}
	logger.Debugf("created 2D texture %d from %s (%v)", t.Handle(), name, img)
	return t, nil
}

// CreateBumpMapFromFiles loads a color and a normal image. An empty texName
// creates a bump map with only the normal layer.
func (f *Factory) CreateBumpMapFromFiles(texName, normalName string, s Sampling) (*BumpMap, error) {
	defer profiling.Track("texture.CreateBumpMapFromFiles")()

	var loaded images
	defer func() { loaded.free() }()

	var color *asset.Image
	if texName != "" {
		img, err := f.load(texName)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, img)
		color = img
	}
	normal, err := f.load(normalName)
	if err != nil {
		return nil, err
	}
	loaded = append(loaded, normal)

	b := NewBumpMap(f.dev)
	if color != nil {
		if err := b.SetTexture(color.Width, color.Height, color.Pix, s); err != nil {
			b.Destroy(gpu.Alive)
			return nil, err
		}
	}
	if err := b.SetNormalMap(normal.Width, normal.Height, normal.Pix, s); err != nil {
		b.Destroy(gpu.Alive)
		return nil, err
	}
	c, n := b.Handles()
	logger.Debugf("created bump map color=%d normal=%d from %q, %q", c, n, texName, normalName)
	return b, nil
}

// CreateCubeMapFromFiles loads six face images ordered +x, -x, +y, -y, +z,
// -z into a cube map.
func (f *Factory) CreateCubeMapFromFiles(names []string) (*CubeMap, error) {
	defer profiling.Track("texture.CreateCubeMapFromFiles")()

	if err := checkNames("cube map", names); err != nil {
		return nil, err
	}

	var loaded images
	defer func() { loaded.free() }()
	for _, name := range names {
		img, err := f.load(name)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, img)
	}

	w, h, pix, err := faces("cube map", names, loaded)
	if err != nil {
		return nil, err
	}
	c := NewCubeMap(f.dev)
	if err := c.SetCubeMap(w, h, pix); err != nil {
		return nil, err
	}
	logger.Debugf("created cube map %d (%dx%d) from %v", c.Handle(), w, h, names)
	return c, nil
}

// CreateSkyboxFromFiles loads six day and six night face images. Faces are
// read pairwise, day then night for each face index.
func (f *Factory) CreateSkyboxFromFiles(day, night []string) (*Skybox, error) {
	defer profiling.Track("texture.CreateSkyboxFromFiles")()

	if err := checkNames("day cube map", day); err != nil {
		return nil, err
	}
	if err := checkNames("night cube map", night); err != nil {
		return nil, err
	}

	var loaded images
	defer func() { loaded.free() }()
	daySet := make([]*asset.Image, 0, len(day))
	nightSet := make([]*asset.Image, 0, len(night))
	for i := range day {
		img, err := f.load(day[i])
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, img)
		daySet = append(daySet, img)

		img, err = f.load(night[i])
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, img)
		nightSet = append(nightSet, img)
	}

	wDay, hDay, dayPix, err := faces("day cube map", day, daySet)
	if err != nil {
		return nil, err
	}
	wNight, hNight, nightPix, err := faces("night cube map", night, nightSet)
	if err != nil {
		return nil, err
	}

	s := NewSkybox(f.dev)
	s.SetSchedule(f.schedule)
	if err := s.SetCubeMap(wDay, hDay, dayPix, wNight, hNight, nightPix); err != nil {
		return nil, err
	}
	d, n := s.Handles()
	logger.Debugf("created skybox day=%d (%dx%d) night=%d (%dx%d)", d, wDay, hDay, n, wNight, hNight)
	return s, nil
}
