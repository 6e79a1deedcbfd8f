// Package mask turns wall photographs into binary damage masks.
//
// Detectors are deliberately separated from the measurement pipeline: a
// Provider consumes a decoded image and produces an *image.Gray in which
// any non-zero byte marks foreground. Downstream labeling and calibration
// never know which detector produced a mask, so detectors can be swapped,
// stacked with Composite, or replaced by a ProviderFunc in tests.
//
// # Detectors
//
// CrackDetector follows the crack-extraction pipeline tuned for painted
// walls: smoothing, logarithmic contrast stretch, Canny edges, then
// morphological dilation and closing to fuse fragmented edge responses
// into solid damage blobs.
//
// ReferenceDetector isolates the brightest object in the scene, assumed to
// be the known-size reference sheet, by thresholding, keeping the largest
// connected component and filling its enclosed holes.
//
// AutoBinarizer is the scene-agnostic fallback: it picks a threshold at
// the midpoint of the two dominant histogram peaks, flips the polarity
// when the background is the bright side, and closes small gaps.
//
// # Mask Geometry
//
// All detectors return masks with zero-origin bounds and the same width
// and height as the source image, so Union can combine their outputs
// without translation.
package mask
