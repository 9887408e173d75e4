package composite

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// RenderRGB converts a 3-band [0, 1] composite to an 8-bit RGBA image for
// encoding. Values outside [0, 1] are clipped.
func RenderRGB(comp *raster.Image) (*image.RGBA, error) {
	if comp.Bands != 3 {
		return nil, fmt.Errorf("composite must have 3 bands, got %d", comp.Bands)
	}

	out := image.NewRGBA(image.Rect(0, 0, comp.Width, comp.Height))
	for y := 0; y < comp.Height; y++ {
		for x := 0; x < comp.Width; x++ {
			i := y*out.Stride + x*4
			out.Pix[i+0] = to8bit(comp.At(0, y, x))
			out.Pix[i+1] = to8bit(comp.At(1, y, x))
			out.Pix[i+2] = to8bit(comp.At(2, y, x))
			out.Pix[i+3] = 255
		}
	}
	return out, nil
}

// RenderGray converts a normalized [0, 1] band to an 8-bit grayscale image.
func RenderGray(b *raster.Band) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for i, v := range b.Pix {
		out.Pix[i] = to8bit(v)
	}
	return out
}

// Band ramp stops: dark blue through green and yellow to red. Blending
// happens in Lab space so the perceived brightness increases evenly.
var rampStops = []colorful.Color{
	{R: 0.05, G: 0.03, B: 0.53},
	{R: 0.0, G: 0.6, B: 0.45},
	{R: 0.99, G: 0.91, B: 0.14},
	{R: 0.84, G: 0.1, B: 0.11},
}

// RenderColormap converts a normalized [0, 1] band to a false-color image
// using the package ramp. Useful for eyeballing a single band (e.g. the
// near-infrared response) where grayscale hides subtle structure.
func RenderColormap(b *raster.Band) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := rampColor(b.At(y, x))
			r, g, bl := c.RGB255()
			i := y*out.Stride + x*4
			out.Pix[i+0] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = bl
			out.Pix[i+3] = 255
		}
	}
	return out
}

func rampColor(t float64) colorful.Color {
	if t <= 0 {
		return rampStops[0]
	}
	if t >= 1 {
		return rampStops[len(rampStops)-1]
	}
	segments := len(rampStops) - 1
	pos := t * float64(segments)
	i := int(pos)
	return rampStops[i].BlendLab(rampStops[i+1], pos-float64(i)).Clamped()
}

// Thumbnail scales an image down so its longer edge is at most maxSize,
// preserving aspect ratio. Images already within the limit pass through
// unchanged.
func Thumbnail(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	if w >= h {
		h = h * maxSize / w
		w = maxSize
	} else {
		w = w * maxSize / h
		h = maxSize
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return transform.Resize(img, w, h, transform.Lanczos)
}

func to8bit(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
