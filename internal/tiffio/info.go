package tiffio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// ImageInfo describes a raster file: shape, element type, value statistics
// and file size.
type ImageInfo struct {
	Filename string  `json:"filename"`
	Path     string  `json:"path"`
	Kind     Kind    `json:"kind"`
	Bands    int     `json:"bands"`
	Height   int     `json:"height"`
	Width    int     `json:"width"`
	DType    string  `json:"dtype"`
	SizeMB   float64 `json:"size_mb"`
	Min      float64 `json:"min_value"`
	Max      float64 `json:"max_value"`
	Mean     float64 `json:"mean_value"`
}

// InfoFor summarizes an already loaded raster.
func InfoFor(path string, img *raster.Image, kind Kind) (*ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	s := img.Stats()
	return &ImageInfo{
		Filename: filepath.Base(path),
		Path:     path,
		Kind:     kind,
		Bands:    img.Bands,
		Height:   img.Height,
		Width:    img.Width,
		DType:    img.DType.String(),
		SizeMB:   float64(stat.Size()) / (1024 * 1024),
		Min:      s.Min,
		Max:      s.Max,
		Mean:     s.Mean,
	}, nil
}
