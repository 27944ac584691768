package bumpx

import (
	"fmt"
	"math"

	"github.com/iOrange/bumpx/raster"
)

// The channel layouts below are the renderer's contract, not a convention of
// this tool. The "bump" texture packs the normal so that its X component
// lands in DXT5's high-precision alpha block, and the "bump#" texture stores
// the compressor's error in complementary channels so the shader can undo
// most of the quantization.

// glossCurve maps a linear gloss byte to its stored value. The sqrt curve
// spends the format's precision on the low end.
var glossCurve = func() (t [256]byte) {
	for i := range t {
		t[i] = byte(math.Round(math.Sqrt(float64(i)/255.0) * 255.0))
	}
	return
}()

// PackBump swizzles one mip level of the normal and gloss pyramids into the
// bump layout: R = gloss, G = normal Z, B = normal Y, A = normal X. The
// normal must be 4-channel and the gloss 1-channel of the same dimensions;
// an empty gloss reads as zero everywhere.
func PackBump(normal, gloss *raster.Buffer, linearGloss bool) *raster.Buffer {
	if normal.Channels != raster.RGBA {
		panic(fmt.Sprintf("bumpx: normal level must have 4 channels, got %d", normal.Channels))
	}
	hasGloss := !gloss.Empty()
	if hasGloss {
		if gloss.Channels != raster.Mono {
			panic(fmt.Sprintf("bumpx: gloss level must have 1 channel, got %d", gloss.Channels))
		}
		if gloss.Width != normal.Width || gloss.Height != normal.Height {
			panic(fmt.Sprintf("bumpx: gloss level is %dx%d, normal level is %dx%d",
				gloss.Width, gloss.Height, normal.Width, normal.Height))
		}
	}

	out := raster.New(normal.Width, normal.Height, raster.RGBA)
	n := normal.Width * normal.Height
	for i := 0; i < n; i++ {
		var g byte
		if hasGloss {
			g = gloss.Pix[i]
			if !linearGloss {
				g = glossCurve[g]
			}
		}
		o := i * 4
		out.Pix[o+0] = g
		out.Pix[o+1] = normal.Pix[o+2]
		out.Pix[o+2] = normal.Pix[o+1]
		out.Pix[o+3] = normal.Pix[o+0]
	}
	return out
}

// PackError diffs a bump level against its compressed round trip and packs
// the biased residuals into the bump# layout: each output channel holds
// (original - decoded) * 2 + 128, clamped, taken from the channel one step
// down the precision ladder (R from the A pair, G from B, B from G). Alpha
// is left zero for MergeHeight to fill.
func PackError(orig, decoded *raster.Buffer) *raster.Buffer {
	if orig.Channels != raster.RGBA || decoded.Channels != raster.RGBA {
		panic("bumpx: error pack needs two 4-channel levels")
	}
	if orig.Width != decoded.Width || orig.Height != decoded.Height {
		panic(fmt.Sprintf("bumpx: decoded level is %dx%d, original is %dx%d",
			decoded.Width, decoded.Height, orig.Width, orig.Height))
	}

	out := raster.New(orig.Width, orig.Height, raster.RGBA)
	n := orig.Width * orig.Height
	for i := 0; i < n; i++ {
		o := i * 4
		out.Pix[o+0] = biasedDiff(orig.Pix[o+3], decoded.Pix[o+3])
		out.Pix[o+1] = biasedDiff(orig.Pix[o+2], decoded.Pix[o+2])
		out.Pix[o+2] = biasedDiff(orig.Pix[o+1], decoded.Pix[o+1])
	}
	return out
}

func biasedDiff(orig, decoded byte) byte {
	v := (int(orig)-int(decoded))*2 + 128
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// MergeHeight copies a height level into the alpha channel of a bump# level,
// leaving RGB untouched. Both levels must share dimensions; height must be
// 1-channel.
func MergeHeight(bumpX, height *raster.Buffer) *raster.Buffer {
	if bumpX.Channels != raster.RGBA || height.Channels != raster.Mono {
		panic("bumpx: height merge needs a 4-channel level and a 1-channel level")
	}
	if bumpX.Width != height.Width || bumpX.Height != height.Height {
		panic(fmt.Sprintf("bumpx: height level is %dx%d, bump# level is %dx%d",
			height.Width, height.Height, bumpX.Width, bumpX.Height))
	}

	out := bumpX.Clone()
	n := out.Width * out.Height
	for i := 0; i < n; i++ {
		out.Pix[i*4+3] = height.Pix[i]
	}
	return out
}
