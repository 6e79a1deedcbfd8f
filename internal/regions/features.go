package regions

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Centroid is the mean pixel position of a region in (row, col) order.
type Centroid struct {
	Row float64 `json:"row"`
	Col float64 `json:"col"`
}

// BBox is the axis-aligned bounding box of a region. Min coordinates are
// inclusive, Max coordinates exclusive.
type BBox struct {
	MinRow int `json:"min_row"`
	MinCol int `json:"min_col"`
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`
}

// Area returns the number of pixels the box covers.
func (b BBox) Area() int {
	return (b.MaxRow - b.MinRow) * (b.MaxCol - b.MinCol)
}

// Region holds the geometric descriptors of one connected component.
type Region struct {
	// Label is the component's number in its LabeledImage.
	Label int `json:"label"`

	// Area is the pixel count.
	Area int `json:"area"`

	// Perimeter is the length of the closed path through the centers of
	// the boundary pixels. A single-pixel region has perimeter 0.
	Perimeter float64 `json:"perimeter"`

	Centroid Centroid `json:"centroid"`
	BBox     BBox     `json:"bounding_box"`

	// BBoxArea is BBox.Area, kept denormalized for reporting.
	BBoxArea int `json:"bbox_area"`

	// Extent is Area / BBoxArea, in (0, 1]. A filled rectangle scores 1.
	Extent float64 `json:"extent"`

	// Solidity is Area divided by the area of the region's convex hull,
	// in (0, 1]. The hull is taken over pixel corners, so a filled
	// rectangle scores exactly 1.
	Solidity float64 `json:"solidity"`

	// Orientation is the angle of the major axis in radians, measured
	// from the positive column axis toward the positive row axis and
	// folded into (-pi/2, pi/2]. Regions with no preferred direction
	// report 0.
	Orientation float64 `json:"orientation"`

	// MajorAxisLength and MinorAxisLength are the axes of the ellipse
	// with the same second central moments as the region. For a filled
	// disk both approach its diameter.
	MajorAxisLength float64 `json:"major_axis_length"`
	MinorAxisLength float64 `json:"minor_axis_length"`
}

// RegionSet is an ordered collection of regions, ascending by label.
type RegionSet []Region

// Extract computes a Region descriptor for every component of labeled with
// at least minArea pixels.
//
// Parameters:
//   - labeled: output of Label
//   - minArea: smallest pixel count to keep; must be positive
//
// Returns the kept regions ordered by ascending label. Components below
// minArea are skipped entirely; skipping every component yields an empty,
// non-nil set. The error is ErrInvalidMask for a nil labeled image and
// ErrConfiguration for a non-positive minArea.
func Extract(labeled *LabeledImage, minArea int) (RegionSet, error) {
	if labeled == nil {
		return nil, fmt.Errorf("%w: labeled image is nil", ErrInvalidMask)
	}
	if minArea <= 0 {
		return nil, fmt.Errorf("%w: minimum area must be positive, got %d", ErrConfiguration, minArea)
	}

	type accumulator struct {
		area                   int
		sumRow, sumCol         int64
		sumRR, sumCC, sumRC    int64
		minCol, maxRow, maxCol int
		firstRow, firstCol     int
	}
	accs := make([]accumulator, labeled.Count+1)

	for row := 0; row < labeled.Height; row++ {
		for col := 0; col < labeled.Width; col++ {
			id := labeled.Labels[row][col]
			if id == 0 {
				continue
			}
			a := &accs[id]
			if a.area == 0 {
				a.firstRow, a.firstCol = row, col
				a.minCol, a.maxCol = col, col
				a.maxRow = row
			} else {
				if col < a.minCol {
					a.minCol = col
				}
				if col > a.maxCol {
					a.maxCol = col
				}
				if row > a.maxRow {
					a.maxRow = row
				}
			}
			a.area++
			a.sumRow += int64(row)
			a.sumCol += int64(col)
			a.sumRR += int64(row) * int64(row)
			a.sumCC += int64(col) * int64(col)
			a.sumRC += int64(row) * int64(col)
		}
	}

	set := make(RegionSet, 0, labeled.Count)
	for id := 1; id <= labeled.Count; id++ {
		a := &accs[id]
		if a.area < minArea {
			continue
		}

		n := float64(a.area)
		meanRow := float64(a.sumRow) / n
		meanCol := float64(a.sumCol) / n

		// Second central moments via the raw sums.
		momRR := float64(a.sumRR)/n - meanRow*meanRow
		momCC := float64(a.sumCC)/n - meanCol*meanCol
		momRC := float64(a.sumRC)/n - meanRow*meanCol

		orientation, major, minor := momentEllipse(momCC, momRC, momRR)

		boundary := traceBoundary(labeled, id, a.firstRow, a.firstCol)
		hull := convexHull(pixelCorners(boundary))
		hullArea := polygonArea(hull)
		solidity := 1.0
		if hullArea > 0 {
			solidity = math.Min(n/hullArea, 1)
		}

		// firstRow is the component's topmost row by scan order.
		box := BBox{
			MinRow: a.firstRow,
			MinCol: a.minCol,
			MaxRow: a.maxRow + 1,
			MaxCol: a.maxCol + 1,
		}

		set = append(set, Region{
			Label:           id,
			Area:            a.area,
			Perimeter:       polylinePerimeter(boundary),
			Centroid:        Centroid{Row: meanRow, Col: meanCol},
			BBox:            box,
			BBoxArea:        box.Area(),
			Extent:          n / float64(box.Area()),
			Solidity:        solidity,
			Orientation:     orientation,
			MajorAxisLength: major,
			MinorAxisLength: minor,
		})
	}
	return set, nil
}

// momentEllipse derives the best-fit ellipse from the second central
// moments: the eigenvalues of the covariance matrix give the axis lengths
// (4 times the standard deviation along each principal direction, so a
// filled disk of radius r reports a major axis near 2r) and the principal
// eigenvector gives the orientation. Eigenvalues are clamped at zero
// before the square root so single-row and single-column regions stay
// finite. When both eigenvalues coincide the orientation is undefined and
// reported as 0.
func momentEllipse(momCC, momRC, momRR float64) (orientation, major, minor float64) {
	const eps = 1e-12
	if momCC < eps && momRR < eps && math.Abs(momRC) < eps {
		return 0, 0, 0
	}

	cov := mat.NewSymDense(2, []float64{
		momCC, momRC,
		momRC, momRR,
	})
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return 0, 0, 0
	}
	vals := eig.Values(nil)
	small, large := vals[0], vals[1]
	if small < 0 {
		small = 0
	}
	if large < 0 {
		large = 0
	}
	major = 4 * math.Sqrt(large)
	minor = 4 * math.Sqrt(small)

	if large-small < eps {
		return 0, major, minor
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	orientation = math.Atan2(vecs.At(1, 1), vecs.At(0, 1))
	if orientation > math.Pi/2 {
		orientation -= math.Pi
	} else if orientation <= -math.Pi/2 {
		orientation += math.Pi
	}
	return orientation, major, minor
}
