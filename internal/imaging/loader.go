package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// entry is one cached photograph together with the format name reported
// by the decoder.
type entry struct {
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant disk reads.
//
// Wall photographs are large and the analyzer touches the same file more
// than once per run (analysis, then overlay rendering), so decoded
// image.Image values are kept in memory keyed by the exact path string
// used to load them. Different paths to the same file (relative vs
// absolute) result in separate cache entries.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Long-running processes handling many photographs should clear
// between batches to prevent unbounded growth.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]entry
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]entry),
	}
}

// Load retrieves an image from the cache or loads it from disk if not
// cached.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported
//     formats are PNG, JPEG, and GIF.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the
//     format and color model (e.g., *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the file cannot be opened or decoded.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (entry, error) {
	c.mu.RLock()
	if e, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return entry{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return entry{}, fmt.Errorf("failed to decode image: %w", err)
	}

	e := entry{img: img, format: format}
	c.mu.Lock()
	c.images[path] = e
	c.mu.Unlock()

	return e, nil
}

// Clear removes all images from the cache, freeing the associated memory.
// After Clear(), subsequent Load() calls read from disk again.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]entry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. If the path
// is not in the cache, Evict does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Info contains metadata about a loaded photograph, reported alongside
// analysis results so operators can sanity-check what was measured.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format the decoder recognized: "png", "jpeg" or
	// "gif". Unlike the file extension, this cannot lie about the bytes.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Info loads the photograph at path through the cache and returns its
// metadata: dimensions, decoded format, color depth, alpha presence, and
// file size. The analyzer attaches this to every path-based report.
//
// The color depth comes from the decoded Go image type (*image.RGBA64,
// *image.NRGBA64 and *image.Gray16 count as 16-bit, everything else as
// 8-bit).
func (c *ImageCache) Info(path string) (*Info, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch e.img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := e.img.Bounds()
	return &Info{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        e.format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
