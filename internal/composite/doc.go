// Package composite builds 3-band display composites from multi-band
// rasters by selecting a triple of source bands for the R, G and B channels.
//
// Each selected band is normalized independently with percentile clipping
// before stacking. Per-channel (rather than joint) normalization is
// intentional: it maximizes contrast in each channel, which is what makes
// false-color composites visually distinct. Do not replace it with a joint
// normalization.
//
// The well-known band triples for 5-band multispectral imagery are exposed
// as the Preset enumeration; the compositor itself accepts any triple.
//
// Composites are display artifacts and are never written back to raster
// storage; the preview helpers render them to standard 8-bit images for
// encoding as PNG.
package composite
