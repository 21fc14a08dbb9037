package asset

import (
	"fmt"
	"sync"
)

// Channels is the only pixel layout the decoders produce: 8-bit RGBA.
const Channels = 4

var pixPool = sync.Pool{
	New: func() interface{} { return new([]byte) },
}

// Image is a decoded RGBA pixel buffer. The caller that received it owns it
// and must hand the buffer back with Free once it has been uploaded.
type Image struct {
	Pix    []byte
	Width  int
	Height int

	buf   *[]byte
	freed bool
}

// NewImage returns a zeroed width x height RGBA buffer taken from the pool.
func NewImage(width, height int) *Image {
	n := width * height * Channels
	buf := pixPool.Get().(*[]byte)
	if cap(*buf) < n {
		*buf = make([]byte, n)
	}
	pix := (*buf)[:n]
	clear(pix)
	return &Image{Pix: pix, Width: width, Height: height, buf: buf}
}

// Free releases the pixel buffer. Pix is nil afterwards; a second call is a
// no-op.
func (im *Image) Free() {
	if im == nil || im.freed {
		return
	}
	im.freed = true
	im.Pix = nil
	if im.buf != nil {
		pixPool.Put(im.buf)
		im.buf = nil
	}
}

// Freed reports whether Free was called.
func (im *Image) Freed() bool {
	return im.freed
}

func (im *Image) String() string {
	return fmt.Sprintf("%dx%d RGBA", im.Width, im.Height)
}
