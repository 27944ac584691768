package bc3

import "github.com/iOrange/bumpx/raster"

// The fast strategy is a classic single-pass fit: alpha endpoints are the
// block's min/max with the standard 8-value ramp, color endpoints are the
// corners of the block's RGB bounding box quantized to RGB565, indices pick
// the nearest palette entry. No endpoint refinement is attempted; this is
// the "preview quality" path.

// compressFast walks the raster in 4x4 tiles, row-major, gathering the 16
// RGBA pixels of each tile into a contiguous 64-byte block before encoding.
func compressFast(buf *raster.Buffer) []byte {
	out := make([]byte, CompressedSize(buf.Width, buf.Height))
	dst := out

	var block [16 * 4]byte
	rowBytes := buf.Width * 4

	for y := 0; y < buf.Height; y += 4 {
		for x := 0; x < buf.Width; x += 4 {
			src := buf.PixOffset(x, y)
			for row := 0; row < 4; row++ {
				copy(block[row*16:row*16+16], buf.Pix[src:src+16])
				src += rowBytes
			}

			encodeAlphaBlock(dst[0:8], &block)
			encodeColorBlock(dst[8:16], &block)
			dst = dst[BlockSize:]
		}
	}
	return out
}

// encodeAlphaBlock emits the 8-byte interpolated alpha block: two reference
// values followed by 16 3-bit indices, LSB first in pixel order.
func encodeAlphaBlock(dst []byte, block *[16 * 4]byte) {
	minA, maxA := byte(255), byte(0)
	for i := 0; i < 16; i++ {
		a := block[i*4+3]
		if a < minA {
			minA = a
		}
		if a > maxA {
			maxA = a
		}
	}

	// a0 > a1 selects the 8-value ramp (no 0/255 sentinels needed: the
	// endpoints already bracket every value in the block).
	a0, a1 := maxA, minA
	dst[0], dst[1] = a0, a1

	var ramp [8]int
	ramp[0], ramp[1] = int(a0), int(a1)
	for i := 2; i < 8; i++ {
		ramp[i] = ((8-i)*int(a0) + (i-1)*int(a1)) / 7
	}

	var bits uint64
	for i := 15; i >= 0; i-- {
		a := int(block[i*4+3])
		best, bestDist := 0, 1<<30
		for k, v := range ramp {
			d := (a - v) * (a - v)
			if d < bestDist {
				best, bestDist = k, d
			}
		}
		bits = bits<<3 | uint64(best)
	}
	for i := 0; i < 6; i++ {
		dst[2+i] = byte(bits >> (8 * i))
	}
}

// encodeColorBlock emits the 8-byte color block: two RGB565 endpoints and 16
// 2-bit indices over the four-color palette. Endpoints are ordered c0 >= c1;
// BC3 always decodes in four-color mode, so the order carries no meaning
// beyond convention.
func encodeColorBlock(dst []byte, block *[16 * 4]byte) {
	minC := [3]byte{255, 255, 255}
	maxC := [3]byte{0, 0, 0}
	for i := 0; i < 16; i++ {
		for c := 0; c < 3; c++ {
			v := block[i*4+c]
			if v < minC[c] {
				minC[c] = v
			}
			if v > maxC[c] {
				maxC[c] = v
			}
		}
	}

	c0 := pack565(maxC[0], maxC[1], maxC[2])
	c1 := pack565(minC[0], minC[1], minC[2])
	if c0 < c1 {
		c0, c1 = c1, c0
	}
	dst[0], dst[1] = byte(c0), byte(c0>>8)
	dst[2], dst[3] = byte(c1), byte(c1>>8)

	// Palette derived exactly the way the decoder derives it, so index
	// selection minimizes the real reconstruction error.
	var palette [4][3]int
	palette[0] = unpack565(c0)
	palette[1] = unpack565(c1)
	for c := 0; c < 3; c++ {
		palette[2][c] = (2*palette[0][c] + palette[1][c] + 1) / 3
		palette[3][c] = (palette[0][c] + 2*palette[1][c] + 1) / 3
	}

	for row := 0; row < 4; row++ {
		var bits byte
		for col := 3; col >= 0; col-- {
			p := (row*4 + col) * 4
			best, bestDist := 0, 1<<30
			for k := range palette {
				d := 0
				for c := 0; c < 3; c++ {
					dc := int(block[p+c]) - palette[k][c]
					d += dc * dc
				}
				if d < bestDist {
					best, bestDist = k, d
				}
			}
			bits = bits<<2 | byte(best)
		}
		dst[4+row] = bits
	}
}

func pack565(r, g, b byte) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// unpack565 expands an RGB565 endpoint by plain shifts, matching the decoder
// (which deliberately does not replicate the high bits downward).
func unpack565(c uint16) [3]int {
	return [3]int{
		int((c >> 11 & 0x1F) << 3),
		int((c >> 5 & 0x3F) << 2),
		int((c & 0x1F) << 3),
	}
}
