// Package tiffio handles raster file I/O: decoding source imagery into
// band-major rasters and writing crops back out as multi-band TIFFs.
//
// Multispectral imagery does not fit the 1-4 channel model of the standard
// image libraries, so the package carries its own minimal TIFF codec for
// the band-major case: uncompressed strips, one grayscale IFD page per
// band, photometric min-is-black, with SampleFormat recording integer vs
// floating-point samples. The written element width always equals the
// raster's native element type; saving never converts bit depth.
//
// Reading is layered: the native reader handles the multi-band layout the
// package writes (plus plain uncompressed grayscale and chunky TIFFs), and
// anything it cannot parse falls back to golang.org/x/image/tiff, which
// covers compressed RGB/gray TIFFs from conventional tools. PNG and JPEG
// inputs decode through the standard library into 3-band RGB rasters.
//
// A thread-safe Cache avoids re-reading source rasters across requests.
package tiffio
