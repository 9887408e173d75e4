package raster

import (
	"fmt"
	"math"
)

// DType identifies the native element type of a raster's samples.
type DType uint8

// Supported element types. Uint8 is the common case for RGB imagery;
// multispectral sensors typically deliver Uint16. Float32/Float64 cover
// derived products such as index rasters.
const (
	Uint8 DType = iota
	Uint16
	Float32
	Float64
)

// String returns the conventional name of the element type (e.g. "uint16").
func (d DType) String() string {
	switch d {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// Size returns the width of one sample in bytes.
func (d DType) Size() int {
	switch d {
	case Uint8:
		return 1
	case Uint16:
		return 2
	case Float32:
		return 4
	default:
		return 8
	}
}

// Cast converts a float64 sample back to the value it would hold after a
// round-trip through this element type. Integer types clamp to their range
// and truncate the fraction; Float32 loses the extra mantissa bits; Float64
// is the identity.
func (d DType) Cast(v float64) float64 {
	switch d {
	case Uint8:
		return clampTrunc(v, 0, 255)
	case Uint16:
		return clampTrunc(v, 0, 65535)
	case Float32:
		return float64(float32(v))
	default:
		return v
	}
}

func clampTrunc(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return math.Trunc(v)
}

// Image is a band-major multi-band raster: shape (Bands, Height, Width).
//
// Pix holds samples band by band, each band row by row. The slice length is
// always Bands*Height*Width.
type Image struct {
	DType  DType
	Bands  int
	Height int
	Width  int
	Pix    []float64
}

// New allocates a zero-filled image with the given shape.
func New(dtype DType, bands, height, width int) *Image {
	return &Image{
		DType:  dtype,
		Bands:  bands,
		Height: height,
		Width:  width,
		Pix:    make([]float64, bands*height*width),
	}
}

// At returns the sample at (band, y, x). No bounds checking beyond the
// underlying slice; callers validating external coordinates should use
// ValidCoords first.
func (p *Image) At(band, y, x int) float64 {
	return p.Pix[(band*p.Height+y)*p.Width+x]
}

// Set stores a sample at (band, y, x).
func (p *Image) Set(band, y, x int, v float64) {
	p.Pix[(band*p.Height+y)*p.Width+x] = v
}

// Band returns a view of one band. The view shares storage with the image;
// writing through it writes the image.
func (p *Image) Band(i int) *Band {
	n := p.Height * p.Width
	return &Band{
		Height: p.Height,
		Width:  p.Width,
		Pix:    p.Pix[i*n : (i+1)*n],
	}
}

// ValidCoords reports whether (x, y) addresses a pixel inside the image.
func (p *Image) ValidCoords(x, y int) bool {
	return x >= 0 && x < p.Width && y >= 0 && y < p.Height
}

// Stats holds summary statistics over every sample of an image.
type Stats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Stats computes min, max and mean over all bands.
func (p *Image) Stats() Stats {
	if len(p.Pix) == 0 {
		return Stats{}
	}
	min, max, sum := p.Pix[0], p.Pix[0], 0.0
	for _, v := range p.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return Stats{Min: min, Max: max, Mean: sum / float64(len(p.Pix))}
}

// Band is a single 2-D plane of an image. It may be a view into an Image's
// storage or a standalone array (e.g. a normalization result).
type Band struct {
	Height int
	Width  int
	Pix    []float64
}

// NewBand allocates a zero-filled standalone band.
func NewBand(height, width int) *Band {
	return &Band{Height: height, Width: width, Pix: make([]float64, height*width)}
}

// At returns the sample at (y, x).
func (b *Band) At(y, x int) float64 {
	return b.Pix[y*b.Width+x]
}

// Set stores a sample at (y, x).
func (b *Band) Set(y, x int, v float64) {
	b.Pix[y*b.Width+x] = v
}

// FromAxes normalizes a decoded sample array of arbitrary axis order into a
// band-major Image. The data is in C order for the given dims.
//
// Accepted layouts:
//   - 2 axes (H, W): promoted to a single-band 1xHxW image.
//   - 3 axes: if the last axis is both smaller than the first axis and at
//     most 5, the array is treated as row-major (H, W, bands) and transposed
//     to (bands, H, W); otherwise it is assumed already band-major.
//
// Any other axis count yields a *ShapeError.
//
// The row-major detection is a compatibility shim for interchange with
// row-major image libraries. It is ambiguous for images with no more than 5
// rows or columns; explicit band-count metadata would be needed to resolve
// those, and such inputs may be misinterpreted.
func FromAxes(dtype DType, dims []int, data []float64) (*Image, error) {
	switch len(dims) {
	case 2:
		h, w := dims[0], dims[1]
		return &Image{DType: dtype, Bands: 1, Height: h, Width: w, Pix: data}, nil
	case 3:
		if dims[2] < dims[0] && dims[2] <= 5 {
			// Row-major (H, W, bands): transpose to band-major.
			h, w, bands := dims[0], dims[1], dims[2]
			out := New(dtype, bands, h, w)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					for c := 0; c < bands; c++ {
						out.Set(c, y, x, data[(y*w+x)*bands+c])
					}
				}
			}
			return out, nil
		}
		return &Image{DType: dtype, Bands: dims[0], Height: dims[1], Width: dims[2], Pix: data}, nil
	default:
		return nil, &ShapeError{Axes: len(dims)}
	}
}

// PixelValues returns the sample values at (x, y) for every band, in band
// order. Out-of-image coordinates yield an error naming the offending
// coordinate.
func (p *Image) PixelValues(x, y int) ([]float64, error) {
	if !p.ValidCoords(x, y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image %dx%d", x, y, p.Width, p.Height)
	}
	vals := make([]float64, p.Bands)
	for i := 0; i < p.Bands; i++ {
		vals[i] = p.At(i, y, x)
	}
	return vals, nil
}
