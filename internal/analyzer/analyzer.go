package analyzer

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"

	"wallgauge/internal/calibrate"
	"wallgauge/internal/imaging"
	"wallgauge/internal/mask"
	"wallgauge/internal/regions"
)

// Default calibration parameters. The reference object is an A4 document
// wallet of 26x36 cm; regions under 2500 px are treated as texture noise
// at typical photograph resolutions.
const (
	DefaultReferenceWidthCm  = 26.0
	DefaultReferenceHeightCm = 36.0
	DefaultMinArea           = 2500
)

// Config carries the calibration parameters for a wall analysis.
type Config struct {
	// ReferenceWidthCm and ReferenceHeightCm are the physical dimensions
	// of the reference object placed on the wall.
	ReferenceWidthCm  float64
	ReferenceHeightCm float64

	// MinArea drops labeled components smaller than this many pixels.
	MinArea int

	// Connectivity selects the labeling adjacency rule.
	Connectivity regions.Connectivity
}

// DefaultConfig returns the parameters used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		ReferenceWidthCm:  DefaultReferenceWidthCm,
		ReferenceHeightCm: DefaultReferenceHeightCm,
		MinArea:           DefaultMinArea,
		Connectivity:      regions.DefaultConnectivity,
	}
}

// Report is the complete outcome of one wall analysis.
type Report struct {
	// ImagePath identifies the analyzed photograph. Empty for reports
	// produced from an already-decoded image without a path.
	ImagePath string `json:"image_path,omitempty"`

	// Info carries the photograph's file metadata. Nil for reports
	// produced from an already-decoded image without a path.
	Info *imaging.Info `json:"image_info,omitempty"`

	// Width and Height are the photograph dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// MaskForeground counts the foreground pixels of the combined mask.
	MaskForeground int `json:"mask_foreground"`

	// Regions lists every kept region, reference included, in label order.
	Regions regions.RegionSet `json:"regions"`

	// Calibration holds the physical-unit estimates.
	Calibration *calibrate.CalibrationResult `json:"calibration"`
}

// Analyzer runs the full pipeline and caches one Report per image path.
type Analyzer struct {
	cache    *imaging.ImageCache
	provider mask.Provider
	cfg      Config
	log      *slog.Logger

	mu      sync.Mutex
	reports map[string]*Report
}

// New creates an Analyzer around the given mask provider. A nil logger
// discards diagnostics.
func New(provider mask.Provider, cfg Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{
		cache:    imaging.NewImageCache(),
		provider: provider,
		cfg:      cfg,
		log:      logger,
		reports:  make(map[string]*Report),
	}
}

// Source returns the decoded photograph for path through the analyzer's
// image cache, so overlay rendering reuses the bytes already in memory.
func (a *Analyzer) Source(path string) (image.Image, error) {
	return a.cache.Load(path)
}

// Analyze runs the pipeline for the image at path. Repeated calls with
// the same path return the cached report; callers must treat it as
// read-only.
func (a *Analyzer) Analyze(path string) (*Report, error) {
	a.mu.Lock()
	if report, ok := a.reports[path]; ok {
		a.mu.Unlock()
		a.log.Debug("report served from cache", slog.String("image", path))
		return report, nil
	}
	a.mu.Unlock()

	info, err := a.cache.Info(path)
	if err != nil {
		return nil, err
	}
	img, err := a.cache.Load(path)
	if err != nil {
		return nil, err
	}
	report, err := a.AnalyzeImage(path, img)
	if err != nil {
		return nil, err
	}
	report.Info = info

	a.mu.Lock()
	a.reports[path] = report
	a.mu.Unlock()
	return report, nil
}

// AnalyzeImage runs the pipeline over an already-decoded image. name
// appears in the report and diagnostics only; the result is not cached.
func (a *Analyzer) AnalyzeImage(name string, img image.Image) (*Report, error) {
	m, err := a.provider.Mask(img)
	if err != nil {
		return nil, fmt.Errorf("mask generation: %w", err)
	}

	bounds := img.Bounds()
	if m == nil || m.Bounds().Dx() != bounds.Dx() || m.Bounds().Dy() != bounds.Dy() {
		return nil, fmt.Errorf("%w: provider mask does not match image dimensions %dx%d",
			regions.ErrInvalidMask, bounds.Dx(), bounds.Dy())
	}

	foreground := mask.CountForeground(m)
	a.log.Debug("mask ready",
		slog.String("image", name),
		slog.Int("foreground", foreground))

	labeled, err := regions.Label(m, a.cfg.Connectivity)
	if err != nil {
		return nil, fmt.Errorf("labeling: %w", err)
	}
	a.log.Debug("components labeled",
		slog.String("image", name),
		slog.Int("count", labeled.Count))

	set, err := regions.Extract(labeled, a.cfg.MinArea)
	if err != nil {
		return nil, fmt.Errorf("feature extraction: %w", err)
	}
	a.log.Debug("regions extracted",
		slog.String("image", name),
		slog.Int("kept", len(set)),
		slog.Int("dropped", labeled.Count-len(set)))

	result, err := calibrate.Estimate(set, bounds.Dy(), bounds.Dx(),
		a.cfg.ReferenceWidthCm, a.cfg.ReferenceHeightCm)
	if err != nil {
		return nil, fmt.Errorf("calibration: %w", err)
	}
	a.log.Info("analysis complete",
		slog.String("image", name),
		slog.Int("regions", len(set)),
		slog.Float64("total_wall_cm2", result.TotalWallAreaCm2),
		slog.Int("damaged_regions", len(result.DamagedAreasCm2)))

	return &Report{
		ImagePath:      name,
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		MaskForeground: foreground,
		Regions:        set,
		Calibration:    result,
	}, nil
}
