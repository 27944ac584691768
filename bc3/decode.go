package bc3

import (
	"encoding/binary"
	"fmt"

	"github.com/iOrange/bumpx/raster"
)

// Decompress decodes BC3 blocks back into a 4-channel raster of the given
// dimensions. Decoding is exact: integer ramp division truncates and RGB565
// endpoints expand by plain shifts, so a value representable in the block
// format comes back unchanged. Partial edge tiles decode into a scratch tile
// and only the in-bounds pixels are copied out.
func Decompress(blocks []byte, width, height int) (*raster.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bc3: cannot decompress to %dx%d", width, height)
	}
	if want := CompressedSize(width, height); len(blocks) != want {
		return nil, fmt.Errorf(
			"bc3: got %d compressed bytes for %dx%d, want %d", len(blocks), width, height, want)
	}

	out := raster.New(width, height, raster.RGBA)

	var tile [16 * 4]byte
	for y := 0; y < height; y += 4 {
		for x := 0; x < width; x += 4 {
			decodeAlphaBlock(&tile, blocks[0:8])
			decodeColorBlock(&tile, blocks[8:16])
			blocks = blocks[BlockSize:]

			rows := min4(height - y)
			cols := min4(width - x)
			for row := 0; row < rows; row++ {
				dst := out.PixOffset(x, y+row)
				copy(out.Pix[dst:dst+cols*4], tile[row*16:row*16+cols*4])
			}
		}
	}
	return out, nil
}

// decodeAlphaBlock fills the alpha channel of a 4x4 tile from the 8-byte
// interpolated alpha block. The eight-entry ramp depends on the reference
// ordering: a0 > a1 interpolates all six midpoints, otherwise four midpoints
// plus the 0 and 255 sentinels.
func decodeAlphaBlock(tile *[16 * 4]byte, src []byte) {
	a0, a1 := int(src[0]), int(src[1])

	var ramp [8]int
	ramp[0], ramp[1] = a0, a1
	if a0 > a1 {
		for i := 2; i < 8; i++ {
			ramp[i] = ((8-i)*a0 + (i-1)*a1) / 7
		}
	} else {
		for i := 2; i < 6; i++ {
			ramp[i] = ((6-i)*a0 + (i-1)*a1) / 5
		}
		ramp[6] = 0
		ramp[7] = 255
	}

	bits := binary.LittleEndian.Uint64(src[0:8]) >> 16
	for i := 0; i < 16; i++ {
		tile[i*4+3] = byte(ramp[bits&0x7])
		bits >>= 3
	}
}

// decodeColorBlock fills the RGB channels of a 4x4 tile from the 8-byte
// color block. BC3 always decodes in four-color mode regardless of the
// endpoint ordering.
func decodeColorBlock(tile *[16 * 4]byte, src []byte) {
	c0 := binary.LittleEndian.Uint16(src[0:2])
	c1 := binary.LittleEndian.Uint16(src[2:4])

	var palette [4][3]int
	palette[0] = unpack565(c0)
	palette[1] = unpack565(c1)
	for c := 0; c < 3; c++ {
		palette[2][c] = (2*palette[0][c] + palette[1][c] + 1) / 3
		palette[3][c] = (palette[0][c] + 2*palette[1][c] + 1) / 3
	}

	for row := 0; row < 4; row++ {
		bits := src[4+row]
		for col := 0; col < 4; col++ {
			p := palette[bits&0x3]
			bits >>= 2

			o := (row*4 + col) * 4
			tile[o+0] = byte(p[0])
			tile[o+1] = byte(p[1])
			tile[o+2] = byte(p[2])
		}
	}
}

func min4(n int) int {
	if n > 4 {
		return 4
	}
	return n
}
