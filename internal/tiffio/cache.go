package tiffio

import (
	"sync"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Cache provides thread-safe caching of loaded rasters to avoid redundant
// disk reads and decodes. Rasters are keyed by the exact path string used
// to load them; relative and absolute paths to the same file are separate
// entries.
//
// Cached rasters stay in memory until evicted. Multispectral scenes are
// large, so long-running processes should Evict or Clear between batches.
type Cache struct {
	mu      sync.RWMutex
	rasters map[string]cacheEntry
}

type cacheEntry struct {
	img  *raster.Image
	kind Kind
}

// NewCache creates an empty raster cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{rasters: make(map[string]cacheEntry)}
}

// Load returns the cached raster for path, reading and decoding it on the
// first access.
func (c *Cache) Load(path string) (*raster.Image, Kind, error) {
	c.mu.RLock()
	if e, ok := c.rasters[path]; ok {
		c.mu.RUnlock()
		return e.img, e.kind, nil
	}
	c.mu.RUnlock()

	img, kind, err := Load(path)
	if err != nil {
		return nil, kind, err
	}

	c.mu.Lock()
	c.rasters[path] = cacheEntry{img: img, kind: kind}
	c.mu.Unlock()

	return img, kind, nil
}

// Evict removes one raster from the cache. Unknown paths are a no-op.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.rasters, path)
	c.mu.Unlock()
}

// Clear drops every cached raster.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.rasters = make(map[string]cacheEntry)
	c.mu.Unlock()
}
