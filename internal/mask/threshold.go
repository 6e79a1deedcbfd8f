package mask

import (
	"errors"
	"image"
	"log/slog"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/anthonynsimon/bild/segment"
)

// DefaultCloseRadius sets the morphological closing applied after
// automatic thresholding.
const DefaultCloseRadius = 7.0

// AutoBinarizer thresholds a scene with a strongly bimodal gray
// distribution, such as dark damage patches on uniform paint. It cuts at
// the midpoint between the two most populated histogram levels, flips the
// polarity when the dominant level is bright (so objects, not background,
// come out as foreground) and closes small gaps.
//
// It needs no reference object and makes no calibration promises; the wall
// pipeline uses it as the fallback when crack and reference detection do
// not apply.
type AutoBinarizer struct {
	// CloseRadius overrides the closing radius; zero falls back to
	// DefaultCloseRadius and a negative value disables closing.
	CloseRadius float64

	// Logger, when set, receives the chosen threshold level.
	Logger *slog.Logger
}

// Mask implements Provider.
func (d AutoBinarizer) Mask(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, errors.New("source image is nil")
	}

	gray := effect.Grayscale(img)

	// After Grayscale every channel carries luminance, so the red
	// histogram is the luminance histogram.
	hist := histogram.NewRGBAHistogram(gray)
	first, second := dominantBins(hist.R.Bins)
	level := uint8((first + second) / 2)

	bin := segment.Threshold(gray, level)
	if first > 127 {
		// The dominant gray level sits on the bright side, so the
		// threshold marked the background; flip it.
		bin = segment.Threshold(effect.Invert(bin), 128)
	}

	if d.Logger != nil {
		d.Logger.Debug("auto threshold chosen",
			slog.Int("dominant_level", first),
			slog.Int("secondary_level", second),
			slog.Int("threshold", int(level)))
	}

	radius := d.CloseRadius
	if radius == 0 {
		radius = DefaultCloseRadius
	}
	if radius < 0 {
		return bin, nil
	}
	closed := effect.Erode(effect.Dilate(bin, radius), radius)
	return segment.Threshold(closed, 128), nil
}

// dominantBins returns the indexes of the two most populated histogram
// bins, most populated first. Ties resolve to the brighter bin.
func dominantBins(bins []int) (int, int) {
	first, second := -1, -1
	for i, n := range bins {
		switch {
		case first < 0 || n >= bins[first]:
			second = first
			first = i
		case second < 0 || n >= bins[second]:
			second = i
		}
	}
	if second < 0 {
		second = first
	}
	return first, second
}
