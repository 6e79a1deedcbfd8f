package mask

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// Canny hysteresis thresholds tuned for crack edges on painted walls.
const (
	DefaultCannyLow  = 82
	DefaultCannyHigh = 172
)

// DefaultMaxKeypoints caps the corner diagnostics reported per mask.
const DefaultMaxKeypoints = 1500

// CrackDetector extracts crack-like damage from a wall photograph.
//
// The pipeline smooths sensor noise with a small box blur, stretches dark
// detail with a logarithmic transform so faint cracks separate from the
// paint, median-filters to flatten surface texture while keeping edges,
// runs Canny, and finally dilates and closes the edge fragments into solid
// blobs that labeling can measure.
type CrackDetector struct {
	// CannyLow and CannyHigh override the hysteresis thresholds; zero
	// values fall back to the package defaults.
	CannyLow  int
	CannyHigh int

	// Logger, when set, receives per-stage diagnostics: foreground pixel
	// counts and a corner-keypoint summary of the final mask. Diagnostics
	// never influence the mask itself.
	Logger *slog.Logger
}

// Mask implements Provider.
func (d CrackDetector) Mask(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, errors.New("source image is nil")
	}
	low, high := d.CannyLow, d.CannyHigh
	if low <= 0 {
		low = DefaultCannyLow
	}
	if high <= 0 {
		high = DefaultCannyHigh
	}

	smoothed := blur.Box(img, 1)
	stretched := logStretch(smoothed)
	flattened := effect.Median(stretched, 5)
	edges := DetectEdges(flattened, low, high)

	// Crack edges come out fragmented; grow them twice and close the
	// result so each crack becomes one measurable blob.
	grown := effect.Dilate(edges, 4)
	grown = effect.Dilate(grown, 4)
	closed := effect.Erode(effect.Dilate(grown, 4), 4)

	m := segment.Threshold(closed, 128)

	if d.Logger != nil {
		corners := DetectCorners(m, 20, DefaultMaxKeypoints)
		d.Logger.Debug("crack mask ready",
			slog.Int("edge_pixels", CountForeground(edges)),
			slog.Int("foreground", CountForeground(m)),
			slog.Int("keypoints", len(corners)))
	}
	return m, nil
}

// logStretch remaps luminance through v' = log(1+v) / log(1+max) * 255,
// expanding the dark end of the range where cracks live. An all-black
// image maps to itself.
func logStretch(img image.Image) *image.Gray {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))

	lum := make([]float64, width*height)
	maxLum := 0.0
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			v := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			lum[i] = v
			if v > maxLum {
				maxLum = v
			}
			i++
		}
	}
	if maxLum == 0 {
		return out
	}

	scale := 255 / math.Log(1+maxLum)
	i = 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := math.Log(1+lum[i]) * scale
			out.SetGray(x, y, color.Gray{Y: uint8(math.Min(v, 255))})
			i++
		}
	}
	return out
}
