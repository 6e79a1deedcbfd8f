// Package regions implements connected-component labeling and per-region
// geometric feature extraction over binary masks.
//
// The package is the numerical core of the wall-analysis pipeline: masks
// arrive from the detectors, Label groups their foreground pixels into
// components, and Extract turns each component into an immutable Region
// descriptor (area, perimeter, centroid, bounding box, extent, solidity,
// best-fit ellipse). Both operations are pure functions over their inputs.
//
// # Coordinate System
//
// Pixel positions are addressed as (row, col) with 0-based indexes: row 0 is
// the topmost image row and col 0 the leftmost column. Bounding boxes are
// half-open, (MinRow, MinCol) inclusive and (MaxRow, MaxCol) exclusive,
// matching the convention of image.Rectangle.
//
// # Masks
//
// A mask is an *image.Gray of the same dimensions as the source image. A
// zero byte is background; any non-zero byte is foreground. Masks with a
// non-zero bounds origin are handled; all reported coordinates are relative
// to the mask's top-left corner.
//
// # Determinism
//
// Labeling is deterministic: components are numbered 1..Count in row-major
// scan order of each component's first (topmost, then leftmost) pixel, and
// Extract returns regions ordered by ascending label. Running either
// operation twice over the same input yields identical results.
//
// # Degenerate Geometry
//
// Trivial regions never fail feature extraction; they take documented
// fallback values instead. A single-pixel region has perimeter 0, solidity
// 1.0 (its corner hull is the unit square), orientation 0 and axis lengths
// 0. Regions whose covariance eigenvalues are equal (disks, squares) report
// orientation 0 because the major-axis direction is undefined.
//
// # Error Handling
//
// Label reports ErrInvalidMask for nil or zero-area masks and
// ErrConfiguration for an unsupported connectivity. Extract reports
// ErrConfiguration for a non-positive minimum area. Both wrap the sentinel
// with fmt.Errorf("%w"), so callers test with errors.Is.
package regions
