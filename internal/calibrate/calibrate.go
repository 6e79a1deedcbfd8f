package calibrate

import (
	"errors"
	"fmt"

	"wallgauge/internal/regions"
)

var (
	// ErrNoRegions reports an empty region set; without at least the
	// reference object there is nothing to calibrate against.
	ErrNoRegions = errors.New("no regions to calibrate against")

	// ErrDegenerateReference reports a reference region whose pixel area
	// is too small to divide by.
	ErrDegenerateReference = errors.New("degenerate reference region")

	// ErrConfiguration reports non-positive image or reference dimensions.
	ErrConfiguration = errors.New("invalid calibration configuration")
)

// CalibrationResult carries the physical-unit estimates for one image.
type CalibrationResult struct {
	// Reference is the region chosen as the reference object.
	Reference regions.Region `json:"reference_region"`

	// ReferenceIndex is the position of Reference within the input set.
	ReferenceIndex int `json:"reference_index"`

	// ConversionFactor is the calibrated scale in cm² per pixel.
	ConversionFactor float64 `json:"conversion_factor"`

	// TotalWallAreaCm2 scales the full image extent by the factor.
	TotalWallAreaCm2 float64 `json:"total_wall_area_cm2"`

	// DamagedAreasCm2 holds one physical area per non-reference region,
	// in region order. Empty when the reference is the only region.
	DamagedAreasCm2 []float64 `json:"damaged_areas_cm2"`
}

// Estimate calibrates the region set against a reference object of known
// physical size and converts every other region's pixel area into cm².
//
// Parameters:
//   - set: extracted regions; the largest by pixel area is taken as the
//     reference object, ties resolving to the earliest region
//   - imageHeight, imageWidth: source image dimensions in pixels
//   - refWidthCm, refHeightCm: physical size of the reference object
//
// Returns ErrConfiguration when any dimension is non-positive,
// ErrNoRegions for an empty set and ErrDegenerateReference when the chosen
// reference has no pixel area to divide by. The reference is excluded from
// the damaged list by its position in the set, so other regions with the
// same pixel area are still counted as damage.
func Estimate(set regions.RegionSet, imageHeight, imageWidth int, refWidthCm, refHeightCm float64) (*CalibrationResult, error) {
	if imageHeight <= 0 || imageWidth <= 0 {
		return nil, fmt.Errorf("%w: image is %dx%d px", ErrConfiguration, imageWidth, imageHeight)
	}
	if refWidthCm <= 0 || refHeightCm <= 0 {
		return nil, fmt.Errorf("%w: reference object is %gx%g cm", ErrConfiguration, refWidthCm, refHeightCm)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: region set is empty", ErrNoRegions)
	}

	refIndex := 0
	for i, r := range set {
		if r.Area > set[refIndex].Area {
			refIndex = i
		}
	}
	reference := set[refIndex]
	if reference.Area <= 0 {
		return nil, fmt.Errorf("%w: largest region has area %d px", ErrDegenerateReference, reference.Area)
	}

	factor := refWidthCm * refHeightCm / float64(reference.Area)

	damaged := make([]float64, 0, len(set)-1)
	for i, r := range set {
		if i == refIndex {
			continue
		}
		damaged = append(damaged, factor*float64(r.Area))
	}

	return &CalibrationResult{
		Reference:        reference,
		ReferenceIndex:   refIndex,
		ConversionFactor: factor,
		TotalWallAreaCm2: float64(imageHeight) * float64(imageWidth) * factor,
		DamagedAreasCm2:  damaged,
	}, nil
}
