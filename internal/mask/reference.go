package mask

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"wallgauge/internal/regions"
)

// DefaultReferenceThreshold separates a white reference sheet from typical
// wall tones.
const DefaultReferenceThreshold = 150

// ReferenceDetector isolates the known-size reference object, assumed to
// be the brightest large object in the scene. The image is thresholded,
// the largest bright component is kept and its enclosed holes are filled
// so glare and print on the sheet do not punch gaps into the region.
type ReferenceDetector struct {
	// Threshold is the grayscale cut above which a pixel counts as
	// bright; zero falls back to DefaultReferenceThreshold.
	Threshold uint8

	// Logger, when set, receives the chosen component's pixel area.
	Logger *slog.Logger
}

// Mask implements Provider. It fails when no pixel clears the threshold,
// since calibration without a reference object is meaningless.
func (d ReferenceDetector) Mask(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, errors.New("source image is nil")
	}
	threshold := d.Threshold
	if threshold == 0 {
		threshold = DefaultReferenceThreshold
	}

	gray := effect.Grayscale(img)
	bright := segment.Threshold(gray, threshold)

	labeled, err := regions.Label(bright, regions.DefaultConnectivity)
	if err != nil {
		return nil, fmt.Errorf("label bright pixels: %w", err)
	}
	if labeled.Count == 0 {
		return nil, errors.New("no bright region above threshold")
	}

	areas := make([]int, labeled.Count+1)
	for row := 0; row < labeled.Height; row++ {
		for col := 0; col < labeled.Width; col++ {
			areas[labeled.Labels[row][col]]++
		}
	}
	largest := 1
	for id := 2; id <= labeled.Count; id++ {
		if areas[id] > areas[largest] {
			largest = id
		}
	}

	out := image.NewGray(image.Rect(0, 0, labeled.Width, labeled.Height))
	for row := 0; row < labeled.Height; row++ {
		for col := 0; col < labeled.Width; col++ {
			if labeled.Labels[row][col] == largest {
				out.SetGray(col, row, color.Gray{Y: 255})
			}
		}
	}
	fillHoles(out)

	if d.Logger != nil {
		d.Logger.Debug("reference mask ready",
			slog.Int("bright_components", labeled.Count),
			slog.Int("reference_area", areas[largest]))
	}
	return out, nil
}

// fillHoles converts enclosed background pockets of m into foreground, in
// place. Background reachable from the image border through 4-neighbor
// steps is genuine background; everything else is a hole.
func fillHoles(m *image.Gray) {
	b := m.Bounds()
	width, height := b.Dx(), b.Dy()
	outside := make([]bool, width*height)

	at := func(x, y int) uint8 {
		return m.GrayAt(b.Min.X+x, b.Min.Y+y).Y
	}

	var stack []image.Point
	push := func(x, y int) {
		if x < 0 || y < 0 || x >= width || y >= height {
			return
		}
		idx := y*width + x
		if outside[idx] || at(x, y) != 0 {
			return
		}
		outside[idx] = true
		stack = append(stack, image.Pt(x, y))
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X-1, p.Y)
		push(p.X+1, p.Y)
		push(p.X, p.Y-1)
		push(p.X, p.Y+1)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if at(x, y) == 0 && !outside[y*width+x] {
				m.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: 255})
			}
		}
	}
}
