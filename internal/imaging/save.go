package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Save writes img to path, inferring the format from the file extension.
// PNG, JPEG, GIF, TIFF and BMP are supported by the underlying encoder.
// Annotated overlays go through here so they can sit next to the source
// photograph in whatever format the operator prefers.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
