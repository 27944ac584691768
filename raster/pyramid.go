package raster

import "math"

// MinMipSize is the smallest mip dimension ever generated. The outputs are
// block compressed in 4x4 tiles, so no level may shrink below a single tile.
const MinMipSize = 4

// Pyramid is an ordered mip chain. Levels[0] is the base resolution; each
// following level halves both dimensions, floored at MinMipSize, which means
// the tail of a non-square (or small) chain can repeat the same dimensions.
type Pyramid struct {
	Levels []*Buffer
}

// LevelCount returns the number of mip levels generated for a base of the
// given dimensions: floor(log2(max(width, height))), counting the base level.
// The count is never less than 1; even a degenerate base is its own level 0.
func LevelCount(width, height int) int {
	v := width
	if height > v {
		v = height
	}
	count := 0
	for v >>= 1; v != 0; v >>= 1 {
		count++
	}
	if count < 1 {
		count = 1
	}
	return count
}

// mipDims returns the dimensions of the given mip level.
func mipDims(width, height, level int) (int, int) {
	for i := 0; i < level; i++ {
		if width /= 2; width < MinMipSize {
			width = MinMipSize
		}
		if height /= 2; height < MinMipSize {
			height = MinMipSize
		}
	}
	return width, height
}

// NewPyramid allocates a zero-filled mip chain. The pipeline uses this for
// absent gloss maps, where every level must read as zero contribution.
func NewPyramid(width, height, channels int) *Pyramid {
	count := LevelCount(width, height)
	p := &Pyramid{Levels: make([]*Buffer, count)}
	for i := range p.Levels {
		w, h := mipDims(width, height, i)
		p.Levels[i] = New(w, h, channels)
	}
	return p
}

// NewFilledPyramid allocates a mip chain with every channel of every level
// set to fill. The pipeline uses this for absent height maps, which read as
// the neutral mid-level everywhere.
func NewFilledPyramid(width, height, channels int, fill byte) *Pyramid {
	p := NewPyramid(width, height, channels)
	for _, level := range p.Levels {
		for i := range level.Pix {
			level.Pix[i] = fill
		}
	}
	return p
}

// BuildPyramid derives the full mip chain from base. The base buffer is moved
// into level 0, not copied. Each generated level is resampled from level
// max(0, i-3) rather than its immediate predecessor, so repeated halving does
// not compound its blur across the whole chain.
//
// When renormalize is set (normal-map content), every generated level has its
// first three channels re-unit-length'd after resampling; see Renormalize.
func BuildPyramid(base *Buffer, renormalize bool) *Pyramid {
	count := LevelCount(base.Width, base.Height)
	p := &Pyramid{Levels: make([]*Buffer, count)}
	p.Levels[0] = base

	for i := 1; i < count; i++ {
		src := p.Levels[max(0, i-3)]
		w, h := mipDims(base.Width, base.Height, i)
		level := Resize(src, w, h)
		if renormalize && level.Channels >= RGB {
			Renormalize(level)
		}
		p.Levels[i] = level
	}
	return p
}

// Renormalize reinterprets the first three channels of every pixel as an
// encoded unit vector (c/255*2-1), restores unit length and re-encodes with
// clamping. Resampling filters shorten the encoded vectors, which reads as a
// flattened normal map; this pass undoes that. The fourth channel, if any,
// is left untouched. Applying the pass to already-unit data is stable to
// within one quantization step per channel.
func Renormalize(b *Buffer) {
	if b.Channels < RGB {
		return
	}
	for i := 0; i < len(b.Pix); i += b.Channels {
		x := float64(b.Pix[i+0])/255.0*2.0 - 1.0
		y := float64(b.Pix[i+1])/255.0*2.0 - 1.0
		z := float64(b.Pix[i+2])/255.0*2.0 - 1.0

		// Resampled normal data never collapses to exact zero length, but the
		// inverse length is still guarded rather than trusted.
		if lenSq := x*x + y*y + z*z; lenSq > 0 {
			inv := 1.0 / math.Sqrt(lenSq)
			x *= inv
			y *= inv
			z *= inv
		}

		b.Pix[i+0] = clampByte((x*0.5 + 0.5) * 255.0)
		b.Pix[i+1] = clampByte((y*0.5 + 0.5) * 255.0)
		b.Pix[i+2] = clampByte((z*0.5 + 0.5) * 255.0)
	}
}
