package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ImageCache keeps decoded floor-plan images keyed by path so that repeated
// tool calls and pipeline variants do not decode the same file twice.
//
// ImageCache is safe for concurrent use. Cached images stay in memory until
// Evict or Clear is called.
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("plans/level1.png")
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, decoding it from disk on the
// first request. PNG, JPEG and GIF are supported. Paths are used verbatim as
// keys.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a single image. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Decode reads and decodes an image file without caching it.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// IsImageFile reports whether path has a supported image extension.
func IsImageFile(path string) bool {
	return formatOf(path) != "unknown"
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	}
	return "unknown"
}

// ImageInfo describes a loaded image.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"` // By extension: png, jpeg, gif or unknown

	// MinRectArea is the smallest rectangle area the detector accepts for
	// this image at scale 1.
	MinRectArea float64 `json:"min_rect_area"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and describes it. areaFactor is
// the divisor applied to the image area to obtain MinRectArea.
func LoadImageInfo(cache *ImageCache, path string, areaFactor float64) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	b := img.Bounds()
	info := &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        formatOf(path),
		FileSizeBytes: stat.Size(),
	}
	if areaFactor > 0 {
		info.MinRectArea = float64(b.Dx()*b.Dy()) / areaFactor
	}
	return info, nil
}
