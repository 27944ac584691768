// Package bumpx converts a tangent-space normal map, with optional gloss and
// height maps, into the pair of mip-mapped DXT5 textures the renderer
// consumes: the "bump" texture carrying the swizzled normal plus gloss, and
// the "bump#" texture carrying per-channel quantization error plus height.
//
// The package is a pure in-memory pipeline. Callers decode their inputs into
// raster.Buffer values (the raster package can do this from any registered
// image format), call Produce, and write or ship the resulting container
// blobs however they like; WriteTextures covers the common save-two-files
// case. The cmd/bumpx command wraps all of this in a CLI.
package bumpx

import "github.com/iOrange/bumpx/bc3"

// Options configures a pipeline run. The zero value is not the default
// configuration; use DefaultOptions.
type Options struct {
	// Quality selects the block compression strategy for both output
	// textures.
	Quality bc3.Quality

	// LinearGloss stores gloss values as-is. By default gloss is
	// sqrt-compressed to spend precision on the low end, where the shading
	// model is most sensitive.
	LinearGloss bool

	// Perceptual weights the compressor's color metric for human viewing.
	// Off by default: the channels hold vector and scalar data, not color.
	Perceptual bool
}

// DefaultOptions returns the settings the original tooling shipped with:
// highest quality, sqrt-compressed gloss, uniform metric.
func DefaultOptions() Options {
	return Options{Quality: bc3.QualityMax}
}
