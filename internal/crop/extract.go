package crop

import "github.com/ironsheep/raster-tools-mcp/internal/raster"

// Extract copies the region at bounds out of a band-major image.
//
// With preserveBands true every band is kept. Otherwise only the first
// min(3, bands) bands are copied: a source with fewer than three bands
// yields that smaller band count rather than an error, and extra bands are
// truncated, never padded.
//
// The source image is never modified; the result owns its storage.
func Extract(img *raster.Image, b Bounds, preserveBands bool) *raster.Image {
	bands := img.Bands
	if !preserveBands {
		bands = min(3, img.Bands)
	}

	out := raster.New(img.DType, bands, b.Dy(), b.Dx())
	for c := 0; c < bands; c++ {
		for y := b.Y1; y < b.Y2; y++ {
			for x := b.X1; x < b.X2; x++ {
				out.Set(c, y-b.Y1, x-b.X1, img.At(c, y, x))
			}
		}
	}
	return out
}

// Square resolves, extracts and, if needed, resizes a size x size crop
// centered on (centerX, centerY). This is the full geometry pipeline; it
// performs no I/O.
//
// The returned image is guaranteed to be exactly size x size with the band
// count implied by preserveBands. An image smaller than size on either axis
// yields an *InfeasibleError.
func Square(img *raster.Image, centerX, centerY, size int, preserveBands bool) (*raster.Image, Resolution, error) {
	res := Resolve(centerX, centerY, size, img.Width, img.Height)
	if !res.Feasible {
		return nil, res, &InfeasibleError{
			CenterX: centerX,
			CenterY: centerY,
			Size:    size,
			Width:   img.Width,
			Height:  img.Height,
		}
	}

	out := Extract(img, res.Bounds, preserveBands)
	if out.Height != size || out.Width != size {
		out = ResizeToSquare(out, size)
	}
	return out, res, nil
}
