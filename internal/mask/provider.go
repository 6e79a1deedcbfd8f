package mask

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Provider produces a binary mask from a source image. Implementations
// must return a mask with the same width and height as img, with non-zero
// bytes marking foreground.
type Provider interface {
	Mask(img image.Image) (*image.Gray, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(img image.Image) (*image.Gray, error)

// Mask calls f.
func (f ProviderFunc) Mask(img image.Image) (*image.Gray, error) {
	return f(img)
}

// Union combines masks with a pixel-wise OR: a pixel is foreground in the
// result when it is foreground in any input. All masks must share the same
// width and height; bounds origins may differ and are normalized to zero.
func Union(masks ...*image.Gray) (*image.Gray, error) {
	if len(masks) == 0 {
		return nil, errors.New("no masks to combine")
	}
	for i, m := range masks {
		if m == nil {
			return nil, fmt.Errorf("mask %d is nil", i)
		}
	}
	width := masks[0].Bounds().Dx()
	height := masks[0].Bounds().Dy()
	for i, m := range masks[1:] {
		if m.Bounds().Dx() != width || m.Bounds().Dy() != height {
			return nil, fmt.Errorf("mask %d is %dx%d, want %dx%d",
				i+1, m.Bounds().Dx(), m.Bounds().Dy(), width, height)
		}
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	for _, m := range masks {
		min := m.Bounds().Min
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if m.GrayAt(min.X+x, min.Y+y).Y != 0 {
					out.SetGray(x, y, color.Gray{Y: 255})
				}
			}
		}
	}
	return out, nil
}

// Composite is a Provider that ORs the masks of its members, in order.
// The wall pipeline composes a CrackDetector with a ReferenceDetector so
// the damage blobs and the reference object land in one mask.
type Composite struct {
	Providers []Provider
}

// Mask runs every member provider and unions the results. The first
// provider error aborts the composite.
func (c Composite) Mask(img image.Image) (*image.Gray, error) {
	if len(c.Providers) == 0 {
		return nil, errors.New("composite has no providers")
	}
	masks := make([]*image.Gray, 0, len(c.Providers))
	for _, p := range c.Providers {
		m, err := p.Mask(img)
		if err != nil {
			return nil, err
		}
		masks = append(masks, m)
	}
	return Union(masks...)
}

// CountForeground returns the number of non-zero pixels in m.
func CountForeground(m *image.Gray) int {
	if m == nil {
		return 0
	}
	b := m.Bounds()
	count := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.GrayAt(x, y).Y != 0 {
				count++
			}
		}
	}
	return count
}
