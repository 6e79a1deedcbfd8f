package regions

import (
	"image"
	"math"
)

// mooreNeighbors lists the 8-neighborhood as (deltaRow, deltaCol) in
// clockwise order starting due north. Tracing scans this ring.
var mooreNeighbors = [8][2]int{
	{-1, 0},  // N
	{-1, 1},  // NE
	{0, 1},   // E
	{1, 1},   // SE
	{1, 0},   // S
	{1, -1},  // SW
	{0, -1},  // W
	{-1, -1}, // NW
}

// mooreIndex maps a (deltaRow+1)*3 + (deltaCol+1) offset to its position in
// mooreNeighbors; the center cell is unused.
var mooreIndex = [9]int{7, 0, 1, 6, -1, 2, 5, 4, 3}

// traceBoundary walks the outer boundary of the component with the given
// label using Moore-neighbor tracing, starting from the component's
// topmost-leftmost pixel at (startRow, startCol). The walk scans each
// pixel's 8-neighborhood clockwise from the last background position and
// stops once it re-enters the start pixel the same way it first left it,
// so spurs and one-pixel-wide arms are traversed in both directions and the
// full outline is covered.
//
// Points are returned in visit order as (X=col, Y=row). A single isolated
// pixel yields exactly one point.
func traceBoundary(labeled *LabeledImage, label, startRow, startCol int) []image.Point {
	inside := func(row, col int) bool {
		if row < 0 || col < 0 || row >= labeled.Height || col >= labeled.Width {
			return false
		}
		return labeled.Labels[row][col] == label
	}

	start := image.Pt(startCol, startRow)
	points := []image.Point{start}

	// The start pixel is the first of its component in row-major order,
	// so its west neighbor is guaranteed background.
	firstRow, firstCol, backRow, backCol, ok := nextBoundary(inside, startRow, startCol, startRow, startCol-1)
	if !ok {
		return points
	}

	row, col := firstRow, firstCol
	bRow, bCol := backRow, backCol
	maxSteps := 8 * labeled.Width * labeled.Height
	for steps := 0; steps < maxSteps; steps++ {
		if row == startRow && col == startCol {
			nRow, nCol, nbRow, nbCol, _ := nextBoundary(inside, row, col, bRow, bCol)
			if nRow == firstRow && nCol == firstCol && nbRow == backRow && nbCol == backCol {
				break
			}
		}
		points = append(points, image.Pt(col, row))
		row, col, bRow, bCol, _ = nextBoundary(inside, row, col, bRow, bCol)
	}
	return points
}

// nextBoundary scans the 8-neighborhood of (row, col) clockwise, starting
// just past the background position (backRow, backCol), and returns the
// first component pixel found together with the background position
// examined immediately before it. ok is false when the pixel has no
// component neighbor at all.
func nextBoundary(inside func(row, col int) bool, row, col, backRow, backCol int) (nRow, nCol, nbRow, nbCol int, ok bool) {
	from := mooreIndex[(backRow-row+1)*3+(backCol-col+1)]
	prevRow, prevCol := backRow, backCol
	for i := 1; i <= 8; i++ {
		d := mooreNeighbors[(from+i)%8]
		cRow, cCol := row+d[0], col+d[1]
		if inside(cRow, cCol) {
			return cRow, cCol, prevRow, prevCol, true
		}
		prevRow, prevCol = cRow, cCol
	}
	return 0, 0, 0, 0, false
}

// polylinePerimeter measures the closed path through the given boundary
// points in order, including the segment from the last point back to the
// first. Fewer than two points measure 0.
func polylinePerimeter(points []image.Point) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := range points {
		next := points[(i+1)%len(points)]
		total += math.Hypot(float64(next.X-points[i].X), float64(next.Y-points[i].Y))
	}
	return total
}
