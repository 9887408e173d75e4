package tiffio

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindImageFiles lists the supported raster files (TIFF, PNG, JPEG) directly
// inside a directory, sorted by name. Extension matching is
// case-insensitive; subdirectories are not descended into.
func FindImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if KindForPath(e.Name()) == KindUnknown {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// FindTIFFFiles lists only the TIFF files in a directory, sorted by name.
func FindTIFFFiles(dir string) ([]string, error) {
	files, err := FindImageFiles(dir)
	if err != nil {
		return nil, err
	}
	var tiffs []string
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		if ext == ".tif" || ext == ".tiff" {
			tiffs = append(tiffs, f)
		}
	}
	return tiffs, nil
}
