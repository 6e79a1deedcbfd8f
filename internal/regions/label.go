package regions

import (
	"errors"
	"fmt"
	"image"
)

// Connectivity selects the adjacency rule used when grouping foreground
// pixels into connected components.
type Connectivity int

const (
	// Connect4 treats only horizontal and vertical neighbors as adjacent.
	Connect4 Connectivity = 4

	// Connect8 additionally treats the four diagonal neighbors as adjacent.
	Connect8 Connectivity = 8
)

// DefaultConnectivity is the rule used when a caller has no reason to pick
// one: 8-connectivity keeps thin diagonal structures such as cracks in a
// single component.
const DefaultConnectivity = Connect8

var (
	// ErrInvalidMask reports a nil or zero-area binary mask.
	ErrInvalidMask = errors.New("invalid binary mask")

	// ErrConfiguration reports an unusable labeling or extraction parameter.
	ErrConfiguration = errors.New("invalid configuration")
)

// LabeledImage assigns a component label to every pixel of a mask.
type LabeledImage struct {
	// Width and Height are the mask dimensions in pixels.
	Width  int
	Height int

	// Labels holds one row per mask row. Labels[row][col] is 0 for
	// background and 1..Count for foreground components.
	Labels [][]int

	// Count is the number of connected components found.
	Count int
}

// At returns the label at (row, col); 0 is background.
func (l *LabeledImage) At(row, col int) int {
	return l.Labels[row][col]
}

// Label groups the foreground pixels of mask into connected components
// using the classic two-pass algorithm with a union-find over provisional
// labels.
//
// Parameters:
//   - mask: binary mask; any non-zero byte is foreground
//   - conn: Connect4 or Connect8
//
// Returns a LabeledImage whose components are numbered 1..Count in
// row-major order of each component's topmost-leftmost pixel, or an error:
// ErrConfiguration for an unsupported connectivity, ErrInvalidMask for a
// nil or zero-area mask. An all-background mask is valid and yields
// Count == 0.
func Label(mask *image.Gray, conn Connectivity) (*LabeledImage, error) {
	if conn != Connect4 && conn != Connect8 {
		return nil, fmt.Errorf("%w: connectivity must be 4 or 8, got %d", ErrConfiguration, int(conn))
	}
	if mask == nil {
		return nil, fmt.Errorf("%w: mask is nil", ErrInvalidMask)
	}
	bounds := mask.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: mask has zero-area bounds %v", ErrInvalidMask, bounds)
	}

	labels := make([][]int, height)
	for row := range labels {
		labels[row] = make([]int, width)
	}

	// First pass: assign provisional labels, recording equivalences
	// between labels that meet across a pixel's already-scanned neighbors.
	parent := []int{0}
	next := 1
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if mask.GrayAt(bounds.Min.X+col, bounds.Min.Y+row).Y == 0 {
				continue
			}

			var neighbors [4]int
			n := 0
			if col > 0 && labels[row][col-1] != 0 {
				neighbors[n] = labels[row][col-1]
				n++
			}
			if row > 0 {
				if labels[row-1][col] != 0 {
					neighbors[n] = labels[row-1][col]
					n++
				}
				if conn == Connect8 {
					if col > 0 && labels[row-1][col-1] != 0 {
						neighbors[n] = labels[row-1][col-1]
						n++
					}
					if col < width-1 && labels[row-1][col+1] != 0 {
						neighbors[n] = labels[row-1][col+1]
						n++
					}
				}
			}

			if n == 0 {
				parent = append(parent, next)
				labels[row][col] = next
				next++
				continue
			}

			lowest := findRoot(parent, neighbors[0])
			for i := 1; i < n; i++ {
				if r := findRoot(parent, neighbors[i]); r < lowest {
					lowest = r
				}
			}
			labels[row][col] = lowest
			for i := 0; i < n; i++ {
				mergeRoots(parent, lowest, neighbors[i])
			}
		}
	}

	// Second pass: collapse equivalence classes and renumber components
	// in row-major order of their first pixel, so labels come out
	// contiguous and deterministic.
	remap := make(map[int]int)
	count := 0
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			provisional := labels[row][col]
			if provisional == 0 {
				continue
			}
			root := findRoot(parent, provisional)
			id, ok := remap[root]
			if !ok {
				count++
				id = count
				remap[root] = id
			}
			labels[row][col] = id
		}
	}

	return &LabeledImage{Width: width, Height: height, Labels: labels, Count: count}, nil
}

// findRoot follows parent links to the representative label, halving the
// path as it goes.
func findRoot(parent []int, x int) int {
	for parent[x] != x {
		parent[x] = parent[parent[x]]
		x = parent[x]
	}
	return x
}

// mergeRoots joins the equivalence classes of a and b, keeping the lower
// root as representative.
func mergeRoots(parent []int, a, b int) {
	ra, rb := findRoot(parent, a), findRoot(parent, b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	parent[rb] = ra
}
