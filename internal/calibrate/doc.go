// Package calibrate converts pixel measurements into physical wall areas.
//
// The pipeline places a reference object of known physical size on the wall
// before photographing it. Calibration assumes the reference shows up as
// the largest extracted region: its pixel area against its known physical
// area yields a cm² per pixel conversion factor, which then scales the
// full image into an estimated wall area and every remaining region into a
// damaged-area estimate.
//
// The factor is only meaningful while the wall is photographed roughly
// head-on and the reference lies flat on it; perspective distortion is not
// corrected here.
package calibrate
