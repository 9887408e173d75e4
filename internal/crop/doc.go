// Package crop implements boundary-safe square crops of multi-band rasters
// centered on arbitrary pixel coordinates.
//
// A crop request flows through three stages:
//
//  1. Resolve: compute a clamped bounding box for the requested center and
//     size. When clamping at an image edge shrinks the box below the target,
//     a shift adjustment slides the box back inside the image, axis by axis.
//     If the image itself is smaller than the target on either axis, the
//     request is infeasible.
//  2. Extract: slice the source array at the resolved bounds, keeping all
//     bands or only the leading RGB bands, per the preserve-bands policy.
//  3. Resize (fallback): if the extracted slice does not match the requested
//     square size, each band is independently resampled with a Lanczos
//     kernel to the exact target dimensions.
//
// Resolution never produces bounds outside [0, width) x [0, height), and for
// any image at least as large as the requested size the resolved box is
// exactly size x size, no matter how close the center is to an edge.
//
// Infeasible requests are reported as *InfeasibleError, which callers can
// match with errors.As to distinguish geometry failures from I/O failures.
package crop
