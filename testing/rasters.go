// Package testing provides synthetic rasters and stream helpers shared by
// the pipeline's test suites.
package testing

import (
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/iOrange/bumpx/raster"
)

// SolidRaster builds a raster with every pixel set to the given channel
// values. The channel count is the number of values passed.
func SolidRaster(t *testing.T, width, height int, pixel ...byte) *raster.Buffer {
	t.Helper()
	buf := raster.New(width, height, len(pixel))
	for i := range buf.Pix {
		buf.Pix[i] = pixel[i%len(pixel)]
	}
	return buf
}

// NoiseRaster builds a raster of deterministic pseudo-random bytes. The same
// seed always produces the same pixels, so failures reproduce.
func NoiseRaster(t *testing.T, width, height, channels int, seed int64) *raster.Buffer {
	t.Helper()
	buf := raster.New(width, height, channels)
	rng := rand.New(rand.NewSource(seed))
	_, err := rng.Read(buf.Pix)
	require.NoError(t, err, "filling noise raster")
	return buf
}

// NormalNoiseRaster builds a raster of deterministic pseudo-random encoded
// unit vectors with the given alpha, for exercising code that expects
// normal-map content rather than arbitrary bytes.
func NormalNoiseRaster(t *testing.T, width, height int, alpha byte, seed int64) *raster.Buffer {
	t.Helper()
	buf := NoiseRaster(t, width, height, raster.RGBA, seed)
	for i := 3; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = alpha
	}
	raster.Renormalize(buf)
	return buf
}

// ContainerStream wraps serialized container bytes in a fixed-size seekable
// stream, the shape file-oriented readers expect.
func ContainerStream(t *testing.T, data []byte) io.ReadWriteSeeker {
	t.Helper()
	require.Greater(t, len(data), 0, "container is empty")
	return bytesextra.NewReadWriteSeeker(data)
}
