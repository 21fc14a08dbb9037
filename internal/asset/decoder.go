package asset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeError wraps a decoder failure for one file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("asset: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder turns an image file into a pixel buffer. Ownership of the returned
// Image passes to the caller.
type Decoder interface {
	Decode(path string, channels int) (*Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string, channels int) (*Image, error)

func (f DecoderFunc) Decode(path string, channels int) (*Image, error) {
	return f(path, channels)
}

// ImageDecoder decodes PNG, JPEG, GIF, BMP, TIFF and WebP files into RGBA.
type ImageDecoder struct{}

func (ImageDecoder) Decode(path string, channels int) (*Image, error) {
	if channels != Channels {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("unsupported channel count %d", channels)}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return ToImage(img), nil
}

// ToImage copies any image into a pooled RGBA buffer with its origin at 0,0.
func ToImage(src image.Image) *Image {
	b := src.Bounds()
	out := NewImage(b.Dx(), b.Dy())
	dst := &image.RGBA{
		Pix:    out.Pix,
		Stride: out.Width * Channels,
		Rect:   image.Rect(0, 0, out.Width, out.Height),
	}
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return out
}
