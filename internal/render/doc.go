// Package render draws analysis results back onto the source photograph.
//
// Overlay annotates each extracted region with its bounding box in a
// per-label hue, a centroid marker and the label number, and emphasizes
// the calibration reference with a heavier stroke. The output is a new
// image; sources are never modified.
package render
