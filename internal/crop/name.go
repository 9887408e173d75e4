package crop

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputName derives the conventional crop filename for a source raster:
// {basename}_crop_{x}_{y}_{size}x{size}.tif. The convention is informational
// only; nothing in this package parses it back.
func OutputName(srcPath string, centerX, centerY, size int) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return fmt.Sprintf("%s_crop_%d_%d_%dx%d.tif", base, centerX, centerY, size, size)
}
