package raster

import (
	"image"

	"github.com/disintegration/gift"
)

// Resize resamples the buffer to the given dimensions with a Lanczos filter,
// preserving the channel count. Lanczos is the windowed-sinc family the
// pipeline standardizes on for mip generation; cheaper filters blur the
// normal data too aggressively.
func Resize(src *Buffer, width, height int) *Buffer {
	filter := gift.Resize(width, height, gift.LanczosResampling)

	switch src.Channels {
	case Mono:
		dst := image.NewGray(image.Rect(0, 0, width, height))
		filter.Draw(dst, src.Gray(), nil)
		return &Buffer{Width: width, Height: height, Channels: Mono, Pix: dst.Pix}
	case RGB:
		// Resample through RGBA; the synthesized opaque alpha is dropped again.
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		filter.Draw(dst, src.NRGBA(), nil)
		four := &Buffer{Width: width, Height: height, Channels: RGBA, Pix: dst.Pix}
		return four.Convert(RGB)
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		filter.Draw(dst, src.NRGBA(), nil)
		return &Buffer{Width: width, Height: height, Channels: RGBA, Pix: dst.Pix}
	}
}
