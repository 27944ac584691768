package raster

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	// Register the image formats the pipeline accepts as source material.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any registered format and returns it as a buffer
// with the requested channel count. Corrupt or unsupported input is an error.
func Decode(r io.Reader, channels int) (*Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return FromImage(img, channels), nil
}

// FromImage converts any image.Image into a buffer with the requested channel
// count. Premultiplied sources are converted through non-premultiplied RGBA so
// channel values survive untouched where possible.
func FromImage(img image.Image, channels int) *Buffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	full := fromNRGBA(nrgba)
	if channels == RGBA {
		return full
	}
	return full.Convert(channels)
}

// fromNRGBA copies an NRGBA image into a 4-channel buffer, row by row so
// sub-images and padded strides are handled.
func fromNRGBA(img *image.NRGBA) *Buffer {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	b := New(width, height, RGBA)
	for y := 0; y < height; y++ {
		src := img.Pix[img.PixOffset(img.Bounds().Min.X, img.Bounds().Min.Y+y):]
		copy(b.Pix[y*width*RGBA:(y+1)*width*RGBA], src[:width*RGBA])
	}
	return b
}

// NRGBA exposes a 4-channel buffer as an image without copying pixel data.
// Buffers with fewer channels are converted first (and therefore copied).
func (b *Buffer) NRGBA() *image.NRGBA {
	src := b
	if b.Channels != RGBA {
		src = b.Convert(RGBA)
	}
	return &image.NRGBA{
		Pix:    src.Pix,
		Stride: src.Width * RGBA,
		Rect:   image.Rect(0, 0, src.Width, src.Height),
	}
}

// Gray exposes a mono buffer as an image without copying pixel data.
// Buffers with more channels are converted first (and therefore copied).
func (b *Buffer) Gray() *image.Gray {
	src := b
	if b.Channels != Mono {
		src = b.Convert(Mono)
	}
	return &image.Gray{
		Pix:    src.Pix,
		Stride: src.Width,
		Rect:   image.Rect(0, 0, src.Width, src.Height),
	}
}
