// Package raster provides the in-memory representation of multi-band
// raster images and the band-level operations built on top of it.
//
// Images are always stored in band-major order, shape (bands, height, width).
// Input arrays arriving in other layouts are normalized once at load time;
// after that, every operation in this package and its dependents assumes
// band-major order and never mutates the source image.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with origin at the top-left:
//   - X: column index (0 = leftmost pixel)
//   - Y: row index (0 = topmost pixel)
//
// # Sample Storage
//
// Samples are held as float64 regardless of the on-disk element type. This
// representation is exact for every supported element type (8/16-bit unsigned
// integers, 32/64-bit floats), so no precision is lost in memory. The DType
// tag records the native element type and drives on-disk sample width and
// the resampler's dtype round-trip.
//
// # Error Handling
//
// Layout normalization failures are reported as *ShapeError so callers can
// distinguish malformed input from I/O problems. Band and pixel accessors
// on valid images do not fail; index validation happens at the call sites
// that accept external coordinates.
package raster
