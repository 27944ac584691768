// Package bc3 compresses and decompresses 4-channel rasters in the BC3 (DXT5)
// block format: each 4x4 pixel tile becomes 16 bytes, an 8-byte interpolated
// alpha block followed by an 8-byte RGB565 color block.
//
// Encoding dispatches between three interchangeable strategies selected by a
// quality level. Decoding is a single exact algorithm: the pipeline measures
// per-channel quantization error by diffing a raster against its decoded
// round trip, so decode output must be bit-stable across builds and hosts.
package bc3

import (
	"fmt"

	"github.com/iOrange/bumpx/raster"
)

// BlockSize is the compressed size of one 4x4 tile in bytes.
const BlockSize = 16

// Quality selects the encoding strategy. Higher levels trade speed for lower
// quantization error; all levels emit valid, mutually decodable blocks.
type Quality int

const (
	// QualityFast is a single-pass bounding-box fit. Fastest, worst quality.
	QualityFast Quality = iota
	// QualityBalanced runs squish cluster fit.
	QualityBalanced
	// QualityMax runs squish iterative cluster fit. Slowest; the default.
	QualityMax
)

// Encoder carries the process-wide encoding configuration. Construct it once
// and pass it by value; there is deliberately no package-level state.
type Encoder struct {
	Quality Quality
	// Perceptual applies perceptual color weights in the squish-backed
	// strategies. The fast strategy measures uniform distance regardless.
	Perceptual bool
}

// CompressedSize returns the compressed byte size of a raster with the given
// dimensions: one BlockSize block per 4x4 tile, partial tiles rounded up.
func CompressedSize(width, height int) int {
	return ((width + 3) / 4) * ((height + 3) / 4) * BlockSize
}

// Compress encodes a 4-channel raster whose dimensions are multiples of 4.
// The returned slice holds the tiles in row-major order. Malformed input is
// a precondition violation surfaced as an error at this boundary; encoding
// itself cannot fail for well-formed input.
func (e Encoder) Compress(buf *raster.Buffer) ([]byte, error) {
	if buf.Empty() {
		return nil, fmt.Errorf("bc3: cannot compress an empty raster")
	}
	if buf.Channels != raster.RGBA {
		return nil, fmt.Errorf("bc3: raster must have 4 channels, got %d", buf.Channels)
	}
	if buf.Width%4 != 0 || buf.Height%4 != 0 {
		return nil, fmt.Errorf(
			"bc3: raster dimensions must be multiples of 4, got %dx%d", buf.Width, buf.Height)
	}

	switch e.Quality {
	case QualityFast:
		return compressFast(buf), nil
	case QualityBalanced:
		return e.compressSquish(buf, false)
	default:
		return e.compressSquish(buf, true)
	}
}
