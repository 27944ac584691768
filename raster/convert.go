package raster

// luminance is the fast integer approximation (2r + 5g + b) / 8 of the usual
// 0.299/0.587/0.114 weights. The truncating division is intentional and must
// not be "fixed": downstream consumers expect these exact values.
func luminance(r, g, b byte) byte {
	l := (uint32(r) << 1) + (uint32(g) << 2) + uint32(g) + uint32(b)
	return byte((l >> 3) & 0xFF)
}

// Convert returns a copy of the buffer with the requested channel count.
// Mono expands by replicating the value into R, G and B; color collapses to
// mono via the fast luminance approximation; alpha is dropped silently and
// synthesized as fully opaque (255). Converting to the buffer's own channel
// count returns a plain copy.
func (b *Buffer) Convert(channels int) *Buffer {
	if !validChannels(channels) {
		panic("raster: channel count must be 1, 3 or 4")
	}
	if channels == b.Channels {
		return b.Clone()
	}

	out := New(b.Width, b.Height, channels)
	n := b.Width * b.Height
	for i := 0; i < n; i++ {
		src := b.Pix[i*b.Channels:]
		dst := out.Pix[i*channels:]

		var r, g, bb, a byte
		switch b.Channels {
		case Mono:
			r, g, bb, a = src[0], src[0], src[0], 0xFF
		case RGB:
			r, g, bb, a = src[0], src[1], src[2], 0xFF
		case RGBA:
			r, g, bb, a = src[0], src[1], src[2], src[3]
		}

		switch channels {
		case Mono:
			dst[0] = luminance(r, g, bb)
		case RGB:
			dst[0], dst[1], dst[2] = r, g, bb
		case RGBA:
			dst[0], dst[1], dst[2], dst[3] = r, g, bb, a
		}
	}
	return out
}
