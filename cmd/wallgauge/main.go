package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"wallgauge/internal/analyzer"
	"wallgauge/internal/config"
	"wallgauge/internal/imaging"
	"wallgauge/internal/mask"
	"wallgauge/internal/regions"
	"wallgauge/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("wallgauge %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	// Reports go to stdout; everything else to stderr
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	var (
		imagePath = flag.String("image", "", "path to the wall photograph (required)")
		refWidth  = flag.Float64("ref-width", cfg.ReferenceWidthCm, "reference object width in cm")
		refHeight = flag.Float64("ref-height", cfg.ReferenceHeightCm, "reference object height in cm")
		minArea   = flag.Int("min-area", cfg.MinArea, "minimum region size in pixels")
		mode      = flag.String("mode", "wall", "mask mode: wall (cracks + reference) or auto (histogram threshold)")
		overlay   = flag.String("overlay", "", "write an annotated copy of the photograph to this path")
		asJSON    = flag.Bool("json", false, "print the report as JSON")
	)
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	provider, err := providerFor(*mode, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	a := analyzer.New(provider, analyzer.Config{
		ReferenceWidthCm:  *refWidth,
		ReferenceHeightCm: *refHeight,
		MinArea:           *minArea,
		Connectivity:      regions.DefaultConnectivity,
	}, logger)

	report, err := a.Analyze(*imagePath)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
	} else {
		printReport(report)
	}

	if *overlay != "" {
		src, err := a.Source(*imagePath)
		if err != nil {
			log.Fatalf("Failed to reload photograph: %v", err)
		}
		annotated := render.Overlay(src, report.Regions, report.Calibration.ReferenceIndex)
		if err := imaging.Save(annotated, *overlay); err != nil {
			log.Fatalf("Failed to write overlay: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Overlay written to %s\n", *overlay)
	}
}

// providerFor assembles the mask provider for the requested mode.
func providerFor(mode string, logger *slog.Logger) (mask.Provider, error) {
	switch mode {
	case "wall":
		return mask.Composite{Providers: []mask.Provider{
			mask.CrackDetector{Logger: logger},
			mask.ReferenceDetector{Logger: logger},
		}}, nil
	case "auto":
		return mask.AutoBinarizer{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want wall or auto)", mode)
	}
}

func printReport(r *analyzer.Report) {
	fmt.Printf("Image: %s (%dx%d px)\n", r.ImagePath, r.Width, r.Height)
	if r.Info != nil {
		fmt.Printf("Source: %s, %s, %d bytes\n", r.Info.Format, r.Info.ColorDepth, r.Info.FileSizeBytes)
	}
	fmt.Printf("Mask foreground: %d px\n", r.MaskForeground)
	fmt.Printf("Regions above minimum area: %d\n", len(r.Regions))

	cal := r.Calibration
	for i, region := range r.Regions {
		marker := ""
		if i == cal.ReferenceIndex {
			marker = " (reference)"
		}
		fmt.Printf("\n--- Region %d%s ---\n", region.Label, marker)
		fmt.Printf("  Area:        %d px\n", region.Area)
		fmt.Printf("  Perimeter:   %.2f px\n", region.Perimeter)
		fmt.Printf("  Centroid:    (row %.1f, col %.1f)\n", region.Centroid.Row, region.Centroid.Col)
		fmt.Printf("  BBox:        rows [%d, %d) cols [%d, %d)\n",
			region.BBox.MinRow, region.BBox.MaxRow, region.BBox.MinCol, region.BBox.MaxCol)
		fmt.Printf("  Extent:      %.3f   Solidity: %.3f\n", region.Extent, region.Solidity)
		fmt.Printf("  Orientation: %.3f rad\n", region.Orientation)
		fmt.Printf("  Axes:        %.1f x %.1f px\n", region.MajorAxisLength, region.MinorAxisLength)
	}

	fmt.Printf("\nConversion factor: %.6f cm²/px\n", cal.ConversionFactor)
	fmt.Printf("Estimated wall area: %.2f cm²\n", round2(cal.TotalWallAreaCm2))

	if len(cal.DamagedAreasCm2) == 0 {
		fmt.Println("No damaged regions above the minimum area.")
		return
	}
	total := 0.0
	fmt.Println("Damaged areas:")
	for i, area := range cal.DamagedAreasCm2 {
		fmt.Printf("  %d: %.2f cm²\n", i+1, round2(area))
		total += area
	}
	fmt.Printf("Total damage: %.2f cm² (%.2f%% of wall)\n",
		round2(total), round2(100*total/cal.TotalWallAreaCm2))
}

// round2 rounds to two decimal places for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func printUsage() {
	fmt.Println("wallgauge - estimate wall damage areas from a photograph")
	fmt.Println()
	fmt.Println("Usage: wallgauge -image wall.jpg [options]")
	fmt.Println()
	fmt.Println("A reference object of known size (a 26x36 cm document wallet by")
	fmt.Println("default) must be visible on the wall; its pixel footprint anchors")
	fmt.Println("the conversion from pixels to physical units.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -image path       wall photograph to analyze (required)")
	fmt.Println("  -ref-width cm     reference object width (default 26)")
	fmt.Println("  -ref-height cm    reference object height (default 36)")
	fmt.Println("  -min-area px      ignore regions smaller than this (default 2500)")
	fmt.Println("  -mode name        wall (cracks + reference) or auto (default wall)")
	fmt.Println("  -overlay path     write an annotated copy of the photograph")
	fmt.Println("  -json             print the report as JSON")
	fmt.Println("  --version, -v     print version information")
	fmt.Println("  --help, -h        print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  WALLGAUGE_REF_WIDTH_CM    reference width in cm")
	fmt.Println("  WALLGAUGE_REF_HEIGHT_CM   reference height in cm")
	fmt.Println("  WALLGAUGE_MIN_AREA        minimum region size in pixels")
	fmt.Println("  WALLGAUGE_LOG_LEVEL       debug, info, warn or error")
	fmt.Println()
	fmt.Println("A .env file in the working directory is loaded when present.")
}
