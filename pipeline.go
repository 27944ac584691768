package bumpx

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/iOrange/bumpx/bc3"
	"github.com/iOrange/bumpx/dds"
	"github.com/iOrange/bumpx/raster"
)

// neutralHeight is the mid-level byte an absent height map reads as.
const neutralHeight = 128

// Result holds the two serialized containers a run produces, plus any
// warnings about inputs that were dropped along the way.
type Result struct {
	// Bump is the complete "bump" DDS container (gloss + swizzled normal).
	Bump []byte
	// BumpX is the complete "bump#" DDS container (quantization error +
	// height).
	BumpX []byte
	// Warnings lists the non-fatal input problems the run degraded around.
	Warnings []Warning
}

// Produce runs the full pipeline: mip pyramids for every input, per-level
// channel packing and block compression for the bump texture, then the
// compress-decompress-diff pass that derives the bump# texture.
//
// The normal map is required and must have power-of-two dimensions. The
// gloss and height maps are optional; pass an empty buffer (or nil-pixel
// zero-size buffer) for either. An optional map whose dimensions do not
// match the normal map is dropped with a warning rather than failing the
// run.
func Produce(normal, gloss, height *raster.Buffer, opts Options) (*Result, error) {
	if normal.Empty() {
		return nil, ErrEmptyNormalMap
	}
	if !isPow2(normal.Width) || !isPow2(normal.Height) {
		return nil, ErrNotPowerOfTwo.WithDetail("%dx%d", normal.Width, normal.Height)
	}
	if normal.Width < raster.MinMipSize || normal.Height < raster.MinMipSize {
		return nil, ErrTooSmall.WithDetail("%dx%d", normal.Width, normal.Height)
	}

	result := &Result{}
	gloss = dropMismatched(gloss, normal, "gloss", result)
	height = dropMismatched(height, normal, "height", result)

	normals := raster.BuildPyramid(normal.Convert(raster.RGBA), true)

	var glosses *raster.Pyramid
	if gloss.Empty() {
		glosses = raster.NewPyramid(normal.Width, normal.Height, raster.Mono)
	} else {
		glosses = raster.BuildPyramid(gloss.Convert(raster.Mono), false)
	}

	var heights *raster.Pyramid
	if height.Empty() {
		heights = raster.NewFilledPyramid(normal.Width, normal.Height, raster.Mono, neutralHeight)
	} else {
		heights = raster.BuildPyramid(height.Convert(raster.Mono), false)
	}

	enc := bc3.Encoder{Quality: opts.Quality, Perceptual: opts.Perceptual}

	bumpMips := make([][]byte, len(normals.Levels))
	bumpXMips := make([][]byte, len(normals.Levels))
	for i, level := range normals.Levels {
		bump := PackBump(level, glosses.Levels[i], opts.LinearGloss)

		compressed, err := enc.Compress(bump)
		if err != nil {
			return nil, fmt.Errorf("compressing bump mip %d: %w", i, err)
		}
		bumpMips[i] = compressed

		decoded, err := bc3.Decompress(compressed, bump.Width, bump.Height)
		if err != nil {
			return nil, fmt.Errorf("decoding bump mip %d: %w", i, err)
		}

		bumpX := MergeHeight(PackError(bump, decoded), heights.Levels[i])
		if bumpXMips[i], err = enc.Compress(bumpX); err != nil {
			return nil, fmt.Errorf("compressing bump# mip %d: %w", i, err)
		}
	}

	var err error
	if result.Bump, err = serialize(normal.Width, normal.Height, bumpMips); err != nil {
		return nil, fmt.Errorf("serializing bump texture: %w", err)
	}
	if result.BumpX, err = serialize(normal.Width, normal.Height, bumpXMips); err != nil {
		return nil, fmt.Errorf("serializing bump# texture: %w", err)
	}
	return result, nil
}

// dropMismatched validates an optional input against the normal map's
// dimensions, recording a warning and returning an empty buffer when it
// cannot be used.
func dropMismatched(buf, normal *raster.Buffer, name string, result *Result) *raster.Buffer {
	if buf == nil {
		return &raster.Buffer{}
	}
	if !buf.Empty() && (buf.Width != normal.Width || buf.Height != normal.Height) {
		result.Warnings = append(result.Warnings, warnf(
			"%s map is %dx%d but the normal map is %dx%d; ignoring it",
			name, buf.Width, buf.Height, normal.Width, normal.Height))
		return &raster.Buffer{}
	}
	return buf
}

func serialize(width, height int, mips [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(dds.HeaderSize + totalLen(mips))
	if err := dds.Write(&buf, width, height, dds.FourCCDXT5, mips); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func totalLen(mips [][]byte) int {
	n := 0
	for _, m := range mips {
		n += len(m)
	}
	return n
}

// WriteTextures saves both containers of a result. Both writes are always
// attempted even if the first fails, and any failures come back combined.
func WriteTextures(result *Result, bumpPath, bumpXPath string) error {
	var combined error
	if err := writeFile(bumpPath, result.Bump); err != nil {
		combined = multierror.Append(combined, err)
	}
	if err := writeFile(bumpXPath, result.BumpX); err != nil {
		combined = multierror.Append(combined, err)
	}
	return combined
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func isPow2(v int) bool {
	return v > 0 && v&(v-1) == 0
}
