package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iOrange/bumpx/raster"
)

type convertTestCase struct {
	Name     string
	Src      []byte
	SrcCh    int
	DstCh    int
	Expected []byte
}

func TestConvert(t *testing.T) {
	cases := []convertTestCase{
		{
			Name:     "MonoToRGB",
			Src:      []byte{5, 200},
			SrcCh:    raster.Mono,
			DstCh:    raster.RGB,
			Expected: []byte{5, 5, 5, 200, 200, 200},
		},
		{
			Name:     "MonoToRGBA",
			Src:      []byte{5},
			SrcCh:    raster.Mono,
			DstCh:    raster.RGBA,
			Expected: []byte{5, 5, 5, 255},
		},
		{
			// (2*10 + 5*20 + 30) / 8 = 150/8 = 18, truncating.
			Name:     "RGBToMonoTruncates",
			Src:      []byte{10, 20, 30, 255, 255, 255},
			SrcCh:    raster.RGB,
			DstCh:    raster.Mono,
			Expected: []byte{18, 255},
		},
		{
			// Alpha has no weight in the luminance approximation.
			Name:     "RGBAToMonoIgnoresAlpha",
			Src:      []byte{10, 20, 30, 0},
			SrcCh:    raster.RGBA,
			DstCh:    raster.Mono,
			Expected: []byte{18},
		},
		{
			Name:     "RGBToRGBAAddsOpaqueAlpha",
			Src:      []byte{1, 2, 3},
			SrcCh:    raster.RGB,
			DstCh:    raster.RGBA,
			Expected: []byte{1, 2, 3, 255},
		},
		{
			Name:     "RGBAToRGBDropsAlpha",
			Src:      []byte{1, 2, 3, 77},
			SrcCh:    raster.RGBA,
			DstCh:    raster.RGB,
			Expected: []byte{1, 2, 3},
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.Name, func(t *testing.T) {
			width := len(testCase.Src) / testCase.SrcCh
			src := raster.New(width, 1, testCase.SrcCh)
			copy(src.Pix, testCase.Src)

			dst := src.Convert(testCase.DstCh)
			assert.Equal(t, testCase.Expected, dst.Pix)
			assert.Equal(t, testCase.DstCh, dst.Channels)
			assert.Equal(t, width, dst.Width)
		})
	}
}

func TestConvertSameArityCopies(t *testing.T) {
	src := raster.NewFilled(2, 2, raster.RGBA, 9)
	dst := src.Convert(raster.RGBA)

	require.Equal(t, src.Pix, dst.Pix)
	dst.Pix[0] = 200
	assert.EqualValues(t, 9, src.Pix[0], "conversion must not alias the source")
}

func TestNewFilled(t *testing.T) {
	b := raster.NewFilled(3, 2, raster.Mono, 128)
	require.Len(t, b.Pix, 6)
	for _, v := range b.Pix {
		assert.EqualValues(t, 128, v)
	}
}

func TestEmpty(t *testing.T) {
	var nilBuf *raster.Buffer
	assert.True(t, nilBuf.Empty())
	assert.True(t, (&raster.Buffer{}).Empty())
	assert.True(t, raster.New(0, 16, raster.RGBA).Empty())
	assert.False(t, raster.New(4, 4, raster.Mono).Empty())
}

func TestPixOffset(t *testing.T) {
	b := raster.New(8, 8, raster.RGBA)
	assert.Equal(t, 0, b.PixOffset(0, 0))
	assert.Equal(t, (2*8+5)*4, b.PixOffset(5, 2))
}

func TestCloneIsDeep(t *testing.T) {
	src := raster.NewFilled(2, 2, raster.RGB, 7)
	dst := src.Clone()
	dst.Pix[0] = 1
	assert.EqualValues(t, 7, src.Pix[0])
}

func TestNewPanicsOnBadChannelCount(t *testing.T) {
	assert.Panics(t, func() { raster.New(4, 4, 2) })
}
