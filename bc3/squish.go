package bc3

import (
	"fmt"

	"github.com/InfinityTools/go-squish"

	"github.com/iOrange/bumpx/raster"
)

// compressSquish hands the whole mip to libsquish. Cluster fit evaluates
// least-squares endpoint candidates per tile; the iterative variant repeats
// the fit until the error stops improving.
func (e Encoder) compressSquish(buf *raster.Buffer, iterative bool) ([]byte, error) {
	flags := squish.FLAGS_DXT5
	if iterative {
		flags |= squish.FLAGS_ITERATIVE_CLUSTER_FIT
	} else {
		flags |= squish.FLAGS_CLUSTER_FIT
	}

	metric := squish.METRIC_UNIFORM
	if e.Perceptual {
		metric = squish.METRIC_PERCEPTUAL
	}

	out := squish.CompressImage(buf.NRGBA(), flags, metric)
	if want := squish.GetStorageRequirements(buf.Width, buf.Height, flags); len(out) != want {
		return nil, fmt.Errorf("bc3: squish produced %d bytes, want %d", len(out), want)
	}
	return out, nil
}
