package imaging

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestSave_RoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 8), uint8(y * 12), 40, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "overlay.png")
	if err := Save(img, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := NewImageCache().Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	bounds := loaded.Bounds()
	if bounds.Dx() != 30 || bounds.Dy() != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", bounds.Dx(), bounds.Dy())
	}
}

func TestSave_UnknownExtension(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := Save(img, filepath.Join(t.TempDir(), "overlay.nope")); err == nil {
		t.Error("Save should fail for an unsupported extension")
	}
}
