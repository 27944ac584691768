package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iOrange/bumpx/raster"
	bumpxtesting "github.com/iOrange/bumpx/testing"
)

func TestLevelCount(t *testing.T) {
	cases := []struct {
		Width, Height int
		Expected      int
	}{
		{256, 256, 8},
		{512, 512, 9},
		{512, 64, 9},
		{64, 512, 9},
		{4, 4, 2},
		{8, 4, 3},
		{2, 2, 1},
		{1, 1, 1},
	}
	for _, testCase := range cases {
		assert.Equal(
			t, testCase.Expected, raster.LevelCount(testCase.Width, testCase.Height),
			"level count for %dx%d", testCase.Width, testCase.Height)
	}
}

func TestBuildPyramidDimensions(t *testing.T) {
	base := bumpxtesting.NoiseRaster(t, 256, 256, raster.RGBA, 1)
	p := raster.BuildPyramid(base, false)

	expected := [][2]int{
		{256, 256}, {128, 128}, {64, 64}, {32, 32}, {16, 16}, {8, 8}, {4, 4}, {4, 4},
	}
	require.Len(t, p.Levels, len(expected))
	for i, level := range p.Levels {
		assert.Equal(t, expected[i][0], level.Width, "level %d width", i)
		assert.Equal(t, expected[i][1], level.Height, "level %d height", i)
		assert.Equal(t, raster.RGBA, level.Channels, "level %d channels", i)
	}
}

func TestBuildPyramidNonSquareFloorsAtMinMipSize(t *testing.T) {
	base := bumpxtesting.NoiseRaster(t, 64, 8, raster.Mono, 2)
	p := raster.BuildPyramid(base, false)

	expected := [][2]int{{64, 8}, {32, 4}, {16, 4}, {8, 4}, {4, 4}, {4, 4}}
	require.Len(t, p.Levels, len(expected))
	for i, level := range p.Levels {
		assert.Equal(t, expected[i][0], level.Width, "level %d width", i)
		assert.Equal(t, expected[i][1], level.Height, "level %d height", i)
		assert.GreaterOrEqual(t, level.Width, raster.MinMipSize)
		assert.GreaterOrEqual(t, level.Height, raster.MinMipSize)
	}
}

func TestBuildPyramidDegenerateBase(t *testing.T) {
	// A base below the mip floor still forms a one-level chain of itself.
	base := bumpxtesting.SolidRaster(t, 1, 1, 128, 128, 255, 255)
	p := raster.BuildPyramid(base, true)

	require.Len(t, p.Levels, 1)
	assert.Same(t, base, p.Levels[0])
}

func TestBuildPyramidMovesBaseIntoLevelZero(t *testing.T) {
	base := bumpxtesting.NoiseRaster(t, 16, 16, raster.RGBA, 3)
	p := raster.BuildPyramid(base, true)
	assert.Same(t, base, p.Levels[0], "level 0 must be the base buffer, untouched")
}

func TestNewPyramidIsZeroFilled(t *testing.T) {
	p := raster.NewPyramid(64, 64, raster.Mono)
	require.Len(t, p.Levels, 6)
	for i, level := range p.Levels {
		for _, v := range level.Pix {
			require.EqualValues(t, 0, v, "level %d", i)
		}
	}
}

func TestNewFilledPyramid(t *testing.T) {
	p := raster.NewFilledPyramid(32, 32, raster.Mono, 128)
	require.Len(t, p.Levels, 5)
	for i, level := range p.Levels {
		for _, v := range level.Pix {
			require.EqualValues(t, 128, v, "level %d", i)
		}
	}
}

func TestRenormalizeIsStable(t *testing.T) {
	// Unit-length input must survive a second pass to within one
	// quantization step per channel.
	b := bumpxtesting.NormalNoiseRaster(t, 16, 16, 255, 4)
	before := b.Clone()

	raster.Renormalize(b)
	for i := range b.Pix {
		diff := int(b.Pix[i]) - int(before.Pix[i])
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqual(t, diff, 1, "channel %d drifted from %d to %d",
			i, before.Pix[i], b.Pix[i])
	}
}

func TestRenormalizeLeavesAlphaUntouched(t *testing.T) {
	b := bumpxtesting.NoiseRaster(t, 8, 8, raster.RGBA, 5)
	var alphas []byte
	for i := 3; i < len(b.Pix); i += 4 {
		alphas = append(alphas, b.Pix[i])
	}

	raster.Renormalize(b)
	for i, j := 3, 0; i < len(b.Pix); i, j = i+4, j+1 {
		require.Equal(t, alphas[j], b.Pix[i], "alpha of pixel %d", j)
	}
}

func TestRenormalizeRestoresUnitLength(t *testing.T) {
	// A flattened normal (shortened vector) must come back to unit length.
	b := raster.New(1, 1, raster.RGB)
	b.Pix[0], b.Pix[1], b.Pix[2] = 128, 128, 170 // roughly (0, 0, 0.33)

	raster.Renormalize(b)
	assert.EqualValues(t, 128, b.Pix[0])
	assert.EqualValues(t, 128, b.Pix[1])
	assert.InDelta(t, 255, int(b.Pix[2]), 1, "z must re-encode to full length")
}

func TestResizePreservesConstantRegions(t *testing.T) {
	base := bumpxtesting.SolidRaster(t, 64, 64, 10, 20, 30, 40)
	small := raster.Resize(base, 16, 16)

	require.Equal(t, 16, small.Width)
	require.Equal(t, 16, small.Height)
	for i := 0; i < len(small.Pix); i += 4 {
		require.Equal(t, []byte{10, 20, 30, 40}, small.Pix[i:i+4], "pixel %d", i/4)
	}
}
