package mask

import "image"

// fastCircle is the Bresenham circle of radius 3 around a candidate
// corner, as (dx, dy) offsets in clockwise order from due north. The
// FAST-9 segment test walks this ring.
var fastCircle = [16][2]int{
	{0, -3}, {1, -3}, {2, -2}, {3, -1},
	{3, 0}, {3, 1}, {2, 2}, {1, 3},
	{0, 3}, {-1, 3}, {-2, 2}, {-3, 1},
	{-3, 0}, {-3, -1}, {-2, -2}, {-1, -3},
}

// fastSegment is the contiguous arc length required by the segment test.
const fastSegment = 9

// DetectCorners runs a FAST-9 corner detector over a grayscale image.
// A pixel is a corner when at least 9 contiguous ring pixels are all
// brighter or all darker than the center by more than threshold. Corner
// scores feed a 3x3 non-maximum suppression, and survivors are returned
// in row-major order, at most limit of them (limit <= 0 means no cap).
//
// The analysis pipeline uses corner counts purely as a texture diagnostic
// for mask quality; nothing downstream consumes the points.
func DetectCorners(gray *image.Gray, threshold uint8, limit int) []image.Point {
	if gray == nil {
		return nil
	}
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()
	if width < 7 || height < 7 {
		return nil
	}

	scores := make([][]int, height)
	for y := range scores {
		scores[y] = make([]int, width)
	}
	for y := 3; y < height-3; y++ {
		for x := 3; x < width-3; x++ {
			scores[y][x] = cornerScore(gray, b.Min.X+x, b.Min.Y+y, int(threshold))
		}
	}

	var corners []image.Point
	for y := 3; y < height-3; y++ {
		for x := 3; x < width-3; x++ {
			s := scores[y][x]
			if s == 0 || !localMax(scores, x, y, s) {
				continue
			}
			corners = append(corners, image.Pt(x, y))
			if limit > 0 && len(corners) == limit {
				return corners
			}
		}
	}
	return corners
}

// cornerScore runs the segment test at (x, y) in the image's own
// coordinates and returns the summed absolute ring contrast when it
// passes, 0 otherwise.
func cornerScore(gray *image.Gray, x, y, threshold int) int {
	center := int(gray.GrayAt(x, y).Y)
	var brighter, darker [16]bool
	score := 0
	for i, off := range fastCircle {
		diff := int(gray.GrayAt(x+off[0], y+off[1]).Y) - center
		if diff >= threshold {
			brighter[i] = true
		} else if diff <= -threshold {
			darker[i] = true
		}
		if diff < 0 {
			diff = -diff
		}
		score += diff
	}
	if hasArc(brighter[:]) || hasArc(darker[:]) {
		return score
	}
	return 0
}

// hasArc reports whether the ring contains fastSegment contiguous set
// positions, wrapping around the seam.
func hasArc(ring []bool) bool {
	run := 0
	for i := 0; i < 2*len(ring); i++ {
		if !ring[i%len(ring)] {
			run = 0
			continue
		}
		run++
		if run >= fastSegment {
			return true
		}
	}
	return false
}

// localMax reports whether score s at (x, y) beats every already-scanned
// 3x3 neighbor strictly and every upcoming one at least; scan order then
// keeps exactly one corner per plateau.
func localMax(scores [][]int, x, y, s int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := scores[y+dy][x+dx]
			before := dy < 0 || (dy == 0 && dx < 0)
			if before && n >= s {
				return false
			}
			if !before && n > s {
				return false
			}
		}
	}
	return true
}
