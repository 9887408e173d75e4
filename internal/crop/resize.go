package crop

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// ResizeToSquare resamples a crop to exactly (size, size), preserving band
// count, band order and element type. A crop already at the target size is
// returned as-is.
//
// Bands are resampled one at a time with a Lanczos kernel, never jointly:
// a single multi-channel interpolation would bleed values across bands and
// flatten each band's native dynamic range. Non-8-bit bands round-trip
// through [0, 255] using their own min/max, are resampled at 8-bit
// precision, then mapped back to the original range and cast to the
// original element type. The resampler only operates on 8-bit data, so the
// round-trip loses precision for wide types; that loss is accepted.
func ResizeToSquare(cropImg *raster.Image, size int) *raster.Image {
	if cropImg.Height == size && cropImg.Width == size {
		return cropImg
	}

	out := raster.New(cropImg.DType, cropImg.Bands, size, size)
	for c := 0; c < cropImg.Bands; c++ {
		resizeBand(cropImg.Band(c), out.Band(c), cropImg.DType, size)
	}
	return out
}

func resizeBand(src, dst *raster.Band, dtype raster.DType, size int) {
	lo, hi := bandRange(src)

	// Quantize to 8-bit. Uint8 bands go straight through; everything else
	// is min/max normalized first. A constant band quantizes to zeros and
	// denormalizes back to its own value.
	gray := image.NewGray(image.Rect(0, 0, src.Width, src.Height))
	for i, v := range src.Pix {
		if dtype == raster.Uint8 {
			gray.Pix[i] = uint8(v)
		} else if hi > lo {
			gray.Pix[i] = uint8((v - lo) / (hi - lo) * 255)
		}
	}

	resized := imaging.Resize(gray, size, size, imaging.Lanczos)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := float64(resized.Pix[(y*resized.Stride)+x*4])
			if dtype != raster.Uint8 {
				v = dtype.Cast(v/255*(hi-lo) + lo)
			}
			dst.Set(y, x, v)
		}
	}
}

func bandRange(b *raster.Band) (lo, hi float64) {
	if len(b.Pix) == 0 {
		return 0, 0
	}
	lo, hi = b.Pix[0], b.Pix[0]
	for _, v := range b.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
