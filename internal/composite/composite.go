package composite

import (
	"fmt"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// BandTriple selects the source bands for the R, G and B channels of a
// composite, in that order.
type BandTriple [3]int

func (t BandTriple) String() string {
	return fmt.Sprintf("(%d,%d,%d)", t[0], t[1], t[2])
}

// BandIndexError reports a composite band triple referencing a band the
// source image does not have.
type BandIndexError struct {
	Index int
	Bands int
}

func (e *BandIndexError) Error() string {
	return fmt.Sprintf("band index %d out of range for %d-band image", e.Index, e.Bands)
}

// Compose builds a 3-band composite from the given band triple.
//
// With normalize true each selected band is independently rescaled to
// [0, 1] with 2/98 percentile clipping; with normalize false the raw sample
// values are copied through. Either way the result is a fresh 3-band
// float64 raster of the source's height and width, channel order R, G, B.
//
// A triple index outside [0, bands) yields a *BandIndexError.
func Compose(img *raster.Image, triple BandTriple, normalize bool) (*raster.Image, error) {
	for _, idx := range triple {
		if idx < 0 || idx >= img.Bands {
			return nil, &BandIndexError{Index: idx, Bands: img.Bands}
		}
	}

	out := raster.New(raster.Float64, 3, img.Height, img.Width)
	for ch, idx := range triple {
		src := img.Band(idx)
		if normalize {
			src = raster.NormalizeBand(src)
		}
		copy(out.Band(ch).Pix, src.Pix)
	}
	return out, nil
}
