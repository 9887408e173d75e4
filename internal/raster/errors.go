package raster

import "fmt"

// ShapeError reports a sample array whose axis count cannot be normalized
// into band-major (bands, height, width) order.
type ShapeError struct {
	Axes int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("raster must have 2 or 3 axes, got %d", e.Axes)
}
