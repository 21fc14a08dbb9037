package texture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"glscene/internal/asset"
	"glscene/internal/gpu"
	"glscene/internal/gpu/gputest"
	"glscene/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDecoder serves solid images whose size and fill byte are looked up by
// file base name. It records decode order and every image it hands out.
type fakeDecoder struct {
	sizes  map[string][2]int
	fail   map[string]bool
	order  []string
	images []*asset.Image
}

func (d *fakeDecoder) Decode(path string, channels int) (*asset.Image, error) {
	name := filepath.Base(path)
	d.order = append(d.order, name)
	if d.fail[name] {
		return nil, errors.New("corrupt data")
	}
	size, ok := d.sizes[name]
	if !ok {
		size = [2]int{2, 2}
	}
	img := asset.NewImage(size[0], size[1])
	for i := range img.Pix {
		img.Pix[i] = byte(len(d.order))
	}
	d.images = append(d.images, img)
	return img, nil
}

func (d *fakeDecoder) allFreed() bool {
	for _, img := range d.images {
		if !img.Freed() {
			return false
		}
	}
	return true
}

// touch creates empty files so the search path resolves them.
func touch(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	return dir
}

var (
	dayFaces   = []string{"d0.png", "d1.png", "d2.png", "d3.png", "d4.png", "d5.png"}
	nightFaces = []string{"n0.png", "n1.png", "n2.png", "n3.png", "n4.png", "n5.png"}
)

func TestCreateSkyboxFromFiles(t *testing.T) {
	dir := touch(t, append(append([]string{}, dayFaces...), nightFaces...)...)
	dev := gputest.New()
	dec := &fakeDecoder{sizes: map[string][2]int{}}
	for _, n := range nightFaces {
		dec.sizes[n] = [2]int{1, 1}
	}
	sched := DefaultSchedule()
	sched.Increment = 0.01
	f := NewFactory(dev, dec, WithSearchPath(dir), WithSchedule(sched))

	s, err := f.CreateSkyboxFromFiles(dayFaces, nightFaces)
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.Equal(t, sched, s.Schedule())

	// day and night are read pairwise per face
	assert.Equal(t, []string{
		"d0.png", "n0.png", "d1.png", "n1.png", "d2.png", "n2.png",
		"d3.png", "n3.png", "d4.png", "n4.png", "d5.png", "n5.png",
	}, dec.order)
	assert.True(t, dec.allFreed(), "decoded buffers are released after upload")

	// uploaded pixels match decode order: day face i was decoded (2i+1)th
	day, night := s.Handles()
	dev.ActiveTexture(0)
	dev.BindTexture(gpu.TextureCubeMap, day)
	for i, face := range gpu.CubeMapFaces {
		pix := dev.ReadTexImage(face, 2, 2)
		require.Len(t, pix, 16)
		assert.Equal(t, byte(2*i+1), pix[0])
	}
	dev.BindTexture(gpu.TextureCubeMap, night)
	pix := dev.ReadTexImage(gpu.TextureCubeMapNegativeZ, 1, 1)
	require.Len(t, pix, 4)
	assert.Equal(t, byte(12), pix[0])
}

func TestCreateSkyboxWrongNameCount(t *testing.T) {
	dev := gputest.New()
	dec := &fakeDecoder{}
	f := NewFactory(dev, dec)

	_, err := f.CreateSkyboxFromFiles(dayFaces[:5], nightFaces)
	assert.ErrorIs(t, err, scene.ErrContractViolation)
	_, err = f.CreateSkyboxFromFiles(dayFaces, append(nightFaces, "extra.png"))
	assert.ErrorIs(t, err, scene.ErrContractViolation)

	assert.Empty(t, dec.order, "no file is read")
	assert.Zero(t, dev.TexturesCreated())
}

func TestCreateSkyboxMissingFile(t *testing.T) {
	dir := touch(t, append(append([]string{}, dayFaces...), nightFaces[:4]...)...)
	dev := gputest.New()
	dec := &fakeDecoder{}
	f := NewFactory(dev, dec)
	f.AddSearchPath(dir)

	_, err := f.CreateSkyboxFromFiles(dayFaces, nightFaces)
	assert.ErrorIs(t, err, asset.ErrNotFound)
	assert.Contains(t, err.Error(), "n4.png")
	assert.NotEmpty(t, dec.images)
	assert.True(t, dec.allFreed(), "images decoded before the failure are released")
	assert.Zero(t, dev.TexturesCreated())
}

func TestCreateSkyboxDecodeFailure(t *testing.T) {
	dir := touch(t, append(append([]string{}, dayFaces...), nightFaces...)...)
	dev := gputest.New()
	dec := &fakeDecoder{fail: map[string]bool{"d3.png": true}}
	f := NewFactory(dev, dec, WithSearchPath(dir))

	_, err := f.CreateSkyboxFromFiles(dayFaces, nightFaces)
	var de *asset.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, filepath.Join(dir, "d3.png"), de.Path)
	assert.EqualError(t, de.Err, "corrupt data")
	assert.True(t, dec.allFreed())
	assert.Zero(t, dev.TexturesCreated())
}

func TestCreateSkyboxFaceSizeMismatch(t *testing.T) {
	dir := touch(t, append(append([]string{}, dayFaces...), nightFaces...)...)
	dev := gputest.New()
	dec := &fakeDecoder{sizes: map[string][2]int{"d2.png": {4, 4}}}
	f := NewFactory(dev, dec, WithSearchPath(dir))

	_, err := f.CreateSkyboxFromFiles(dayFaces, nightFaces)
	assert.ErrorIs(t, err, ErrFaceSizeMismatch)
	assert.True(t, dec.allFreed())
	assert.Zero(t, dev.TexturesCreated())
}

func TestCreateCubeMapFromFiles(t *testing.T) {
	dir := touch(t, dayFaces...)
	dev := gputest.New()
	dec := &fakeDecoder{}
	f := NewFactory(dev, dec, WithSearchPath(dir))

	c, err := f.CreateCubeMapFromFiles(dayFaces)
	require.NoError(t, err)
	assert.Equal(t, dayFaces, dec.order)
	assert.True(t, dec.allFreed())
	w, h := c.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)

	_, err = f.CreateCubeMapFromFiles(dayFaces[:1])
	assert.ErrorIs(t, err, scene.ErrContractViolation)
}

func TestCreateCubeMapSecondFaceFails(t *testing.T) {
	dir := touch(t, dayFaces...)
	dev := gputest.New()
	dec := &fakeDecoder{fail: map[string]bool{"d1.png": true}}
	f := NewFactory(dev, dec, WithSearchPath(dir))

	c, err := f.CreateCubeMapFromFiles(dayFaces)
	assert.Nil(t, c)
	var de *asset.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"d0.png", "d1.png"}, dec.order, "loading stops at the first failure")
	require.Len(t, dec.images, 1)
	assert.True(t, dec.images[0].Freed())
	assert.Zero(t, dev.TexturesCreated())
}

func TestCreateCubeMapReadsBackFaces(t *testing.T) {
	dir := touch(t, dayFaces...)
	dev := gputest.New()
	f := NewFactory(dev, &fakeDecoder{}, WithSearchPath(dir))

	c, err := f.CreateCubeMapFromFiles(dayFaces)
	require.NoError(t, err)

	dev.BindTexture(gpu.TextureCubeMap, c.Handle())
	for i, target := range gpu.CubeMapFaces {
		want := make([]byte, 2*2*4)
		for j := range want {
			want[j] = byte(i + 1)
		}
		assert.Equal(t, want, dev.ReadTexImage(target, 2, 2), "face %d", i)
	}
}

func TestCreate2DTextureFromFile(t *testing.T) {
	dir := touch(t, "wall.png")
	dev := gputest.New()
	dec := &fakeDecoder{sizes: map[string][2]int{"wall.png": {3, 1}}}
	f := NewFactory(dev, dec, WithSearchPath(dir))

	tex, err := f.Create2DTextureFromFile("wall.png", DefaultSampling())
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 1, h)
	assert.True(t, dec.allFreed())

	_, err = f.Create2DTextureFromFile("missing.png", DefaultSampling())
	assert.ErrorIs(t, err, asset.ErrNotFound)
}

func TestCreateBumpMapFromFiles(t *testing.T) {
	dir := touch(t, "color.png", "normal.png")
	dev := gputest.New()
	dec := &fakeDecoder{}
	f := NewFactory(dev, dec, WithSearchPath(dir))

	b, err := f.CreateBumpMapFromFiles("color.png", "normal.png", DefaultSampling())
	require.NoError(t, err)
	color, normal := b.Handles()
	assert.NotZero(t, color)
	assert.NotZero(t, normal)
	assert.True(t, dec.allFreed())

	b, err = f.CreateBumpMapFromFiles("", "normal.png", DefaultSampling())
	require.NoError(t, err)
	color, normal = b.Handles()
	assert.Zero(t, color)
	assert.NotZero(t, normal)

	_, err = f.CreateBumpMapFromFiles("color.png", "missing.png", DefaultSampling())
	assert.ErrorIs(t, err, asset.ErrNotFound)
	assert.True(t, dec.allFreed())
}

func TestFactorySearchPathSplitsLists(t *testing.T) {
	f := NewFactory(gputest.New(), nil)
	f.AddSearchPath("a" + string(os.PathListSeparator) + string(os.PathListSeparator) + "b")
	assert.Equal(t, []string{"a", "b"}, f.SearchPath())
}
