package regions

import (
	"image"
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

// pixelCorners expands boundary pixels into their four corner points on the
// half-integer lattice, with X carrying the column and Y the row. A pixel
// center sits at integer coordinates, so its corners are offset by 0.5 in
// each direction. Hull areas computed over corners count whole pixels: a
// single pixel encloses exactly 1.
func pixelCorners(boundary []image.Point) []r2.Point {
	corners := make([]r2.Point, 0, 4*len(boundary))
	for _, p := range boundary {
		x, y := float64(p.X), float64(p.Y)
		corners = append(corners,
			r2.Point{X: x - 0.5, Y: y - 0.5},
			r2.Point{X: x + 0.5, Y: y - 0.5},
			r2.Point{X: x - 0.5, Y: y + 0.5},
			r2.Point{X: x + 0.5, Y: y + 0.5},
		)
	}
	return corners
}

// convexHull computes the convex hull of pts with the monotone chain
// algorithm, dropping collinear points. The input slice is sorted in
// place. The hull is returned in traversal order; fewer than three
// distinct input points come back as-is after sorting.
func convexHull(pts []r2.Point) []r2.Point {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	if len(pts) < 3 {
		return pts
	}

	hull := make([]r2.Point, 0, len(pts)+1)
	for _, p := range pts {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// turn is the cross product of o->a and o->b; positive means b lies
// counterclockwise of a around o.
func turn(o, a, b r2.Point) float64 {
	return a.Sub(o).Cross(b.Sub(o))
}

// polygonArea is the shoelace area of the polygon, independent of
// traversal direction. Degenerate polygons measure 0.
func polygonArea(poly []r2.Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}
