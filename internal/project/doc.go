// Package project manages labeling project directories: a project owns an
// images/ directory for source rasters, a crops/ directory for extracted
// crops, a JSON metadata file recording what was cropped from where, and
// per-session activity logs.
//
// Everything here is plain bookkeeping around the crop pipeline; the
// geometry and raster code never depends on it.
package project
