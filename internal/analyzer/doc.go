// Package analyzer wires the wall-analysis stages into one pipeline:
// mask generation, connected-component labeling, feature extraction and
// physical calibration.
//
// An Analyzer owns an image cache and a report cache, so repeated analyses
// of the same photograph cost one decode and one pipeline run. The mask
// stage is injected as a mask.Provider, which keeps the pipeline moving
// parts testable with synthetic masks.
package analyzer
