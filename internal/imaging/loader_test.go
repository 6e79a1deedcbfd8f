package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// writeTestPhoto encodes a width x height PNG filled with c into the
// test's temp directory and returns its path.
func writeTestPhoto(t *testing.T, name string, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test photo: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test photo: %v", err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPhoto(t, "wall.png", 120, 80, color.RGBA{200, 190, 180, 255})

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	bounds := first.Bounds()
	if bounds.Dx() != 120 || bounds.Dy() != 80 {
		t.Errorf("dimensions: got %dx%d, want 120x80", bounds.Dx(), bounds.Dy())
	}

	// The second load must hand back the decoded value already in memory.
	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if first != second {
		t.Error("second Load did not return the cached image")
	}
}

func TestImageCache_Load_Missing(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestImageCache_Load_Undecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cache := NewImageCache()
	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for undecodable data")
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPhoto(t, "wall.png", 10, 10, color.White)

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(path)
	cache.mu.RLock()
	_, cached := cache.images[path]
	cache.mu.RUnlock()
	if cached {
		t.Error("Evict left the image in the cache")
	}

	// Evicting an unknown path is a no-op.
	cache.Evict(filepath.Join(t.TempDir(), "never-loaded.png"))

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	cache.Clear()
	cache.mu.RLock()
	remaining := len(cache.images)
	cache.mu.RUnlock()
	if remaining != 0 {
		t.Errorf("Clear left %d images in the cache", remaining)
	}
}

func TestImageCache_ConcurrentLoads(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPhoto(t, "wall.png", 40, 40, color.Gray{Y: 128})

	var wg sync.WaitGroup
	loadErrs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				loadErrs <- err
			}
		}()
	}
	wg.Wait()
	close(loadErrs)

	for err := range loadErrs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestImageCache_Info(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPhoto(t, "wall.png", 200, 150, color.RGBA{180, 170, 160, 255})

	info, err := cache.Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Width != 200 || info.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %q, want png", info.Format)
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("ColorDepth: got %q, want 8-bit", info.ColorDepth)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}
}

func TestImageCache_Info_FormatFromDecoder(t *testing.T) {
	// The reported format follows the decoded bytes, so a PNG hiding
	// behind a .jpg extension is still "png".
	path := writeTestPhoto(t, "mislabeled.jpg", 10, 10, color.White)

	info, err := NewImageCache().Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %q, want png", info.Format)
	}
}

func TestImageCache_Info_UsesCache(t *testing.T) {
	// Info after Load must not read the file again: the decoded entry
	// already carries everything except the file size.
	cache := NewImageCache()
	path := writeTestPhoto(t, "wall.png", 30, 40, color.White)

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	info, err := cache.Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Width != img.Bounds().Dx() || info.Height != img.Bounds().Dy() {
		t.Errorf("dimensions: got %dx%d, want %dx%d",
			info.Width, info.Height, img.Bounds().Dx(), img.Bounds().Dy())
	}

	cache.mu.RLock()
	cached := len(cache.images)
	cache.mu.RUnlock()
	if cached != 1 {
		t.Errorf("cache entries: got %d, want 1", cached)
	}
}

func TestImageCache_Info_Missing(t *testing.T) {
	if _, err := NewImageCache().Info(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Info should fail for a missing file")
	}
}
