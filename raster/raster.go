// Package raster implements the fixed-point pixel buffers the texture
// pipeline operates on, along with channel-arity conversion, decoding of
// common image formats, high-quality resampling and mip pyramid generation.
package raster

// Channel counts supported by a Buffer.
const (
	Mono = 1 // single luminance/height/gloss channel
	RGB  = 3
	RGBA = 4
)

// Buffer is a 2D grid of fixed-point 8-bit pixels with 1, 3 or 4 channels,
// stored row-major in a flat byte slice. A Buffer with zero pixels is a valid
// "absent" sentinel (see Empty). Buffers are never resized after construction;
// pipeline stages that need other dimensions allocate new ones.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	// Pix holds the pixel data; its length is always Width*Height*Channels.
	// Pixel (x, y) starts at (y*Width+x)*Channels.
	Pix []byte
}

func validChannels(channels int) bool {
	return channels == Mono || channels == RGB || channels == RGBA
}

// New returns a zero-filled buffer of the given dimensions. channels must be
// 1, 3 or 4; width and height must not be negative.
func New(width, height, channels int) *Buffer {
	if !validChannels(channels) {
		panic("raster: channel count must be 1, 3 or 4")
	}
	if width < 0 || height < 0 {
		panic("raster: negative dimensions")
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// NewFilled returns a buffer with every channel of every pixel set to fill.
// The default height map is NewFilled(w, h, Mono, 128).
func NewFilled(width, height, channels int, fill byte) *Buffer {
	b := New(width, height, channels)
	for i := range b.Pix {
		b.Pix[i] = fill
	}
	return b
}

// Empty reports whether the buffer holds no pixels. Empty buffers stand in
// for absent inputs (e.g. no gloss map was supplied).
func (b *Buffer) Empty() bool {
	return b == nil || b.Width == 0 || b.Height == 0
}

// PixOffset returns the index of the first channel of pixel (x, y) in Pix.
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * b.Channels
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Pix:      make([]byte, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
