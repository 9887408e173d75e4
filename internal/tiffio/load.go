package tiffio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Kind classifies a raster source by its container format.
type Kind string

const (
	KindMultispectral Kind = "multispectral"
	KindRGB           Kind = "rgb"
	KindUnknown       Kind = "unknown"
)

// KindForPath classifies a file by extension: TIFF containers are treated
// as multispectral, PNG/JPEG as RGB.
func KindForPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return KindMultispectral
	case ".png", ".jpg", ".jpeg":
		return KindRGB
	default:
		return KindUnknown
	}
}

// Load reads a raster from disk and normalizes it to band-major order.
//
// TIFF files go through the native multi-band decoder first and fall back
// to golang.org/x/image/tiff for layouts the native reader rejects
// (compression, palettes). PNG and JPEG decode to 3-band uint8 RGB.
// Unsupported extensions are an error.
func Load(path string) (*raster.Image, Kind, error) {
	kind := KindForPath(path)
	if kind == KindUnknown {
		return nil, KindUnknown, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kind, fmt.Errorf("failed to read raster: %w", err)
	}

	if kind == KindMultispectral {
		img, err := Decode(data)
		if err == nil {
			return img, kind, nil
		}
		decoded, fbErr := tiff.Decode(bytes.NewReader(data))
		if fbErr != nil {
			return nil, kind, fmt.Errorf("failed to decode TIFF %s: %w", path, err)
		}
		img, fbErr = fromStdImage(decoded)
		if fbErr != nil {
			return nil, kind, fbErr
		}
		return img, kind, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, kind, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return rgbRaster(decoded), kind, nil
}

// fromStdImage converts a decoded standard-library image to a band-major
// raster. Grayscale images keep their bit depth as a single band; anything
// else goes through the row-major layout heuristic as (H, W, 3) RGB.
func fromStdImage(img image.Image) (*raster.Image, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch g := img.(type) {
	case *image.Gray:
		data := make([]float64, h*w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				data[y*w+x] = float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
		return raster.FromAxes(raster.Uint8, []int{h, w}, data)
	case *image.Gray16:
		data := make([]float64, h*w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				data[y*w+x] = float64(g.Gray16At(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
		return raster.FromAxes(raster.Uint16, []int{h, w}, data)
	default:
		data := make([]float64, h*w*3)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				i := (y*w + x) * 3
				data[i+0] = float64(r >> 8)
				data[i+1] = float64(g >> 8)
				data[i+2] = float64(bl >> 8)
			}
		}
		return raster.FromAxes(raster.Uint8, []int{h, w, 3}, data)
	}
}

// rgbRaster converts a standard image directly to a 3-band band-major uint8
// raster. The RGB path always has a known layout, so no heuristic applies.
func rgbRaster(img image.Image) *raster.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := raster.New(raster.Uint8, 3, h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Set(0, y, x, float64(r>>8))
			out.Set(1, y, x, float64(g>>8))
			out.Set(2, y, x, float64(bl>>8))
		}
	}
	return out
}

// Save writes a band-major raster as a multi-band TIFF, creating parent
// directories as needed. The on-disk element type equals the raster's.
func Save(path string, img *raster.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write TIFF %s: %w", path, err)
	}
	return f.Close()
}
