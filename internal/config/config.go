// Package config reads process-level settings from the environment, with
// an optional .env file for local runs.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"wallgauge/internal/analyzer"
)

// Environment variables understood by the analyzer binary.
const (
	EnvReferenceWidth  = "WALLGAUGE_REF_WIDTH_CM"
	EnvReferenceHeight = "WALLGAUGE_REF_HEIGHT_CM"
	EnvMinArea         = "WALLGAUGE_MIN_AREA"
	EnvLogLevel        = "WALLGAUGE_LOG_LEVEL"
)

// Config holds the settings resolved from the environment. Command-line
// flags may still override individual values.
type Config struct {
	ReferenceWidthCm  float64
	ReferenceHeightCm float64
	MinArea           int
	LogLevel          slog.Level
}

// Load resolves the configuration: a .env file in the working directory is
// applied first when present, then the process environment. Unset
// variables fall back to the analyzer defaults.
func Load() (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		ReferenceWidthCm:  analyzer.DefaultReferenceWidthCm,
		ReferenceHeightCm: analyzer.DefaultReferenceHeightCm,
		MinArea:           analyzer.DefaultMinArea,
		LogLevel:          slog.LevelInfo,
	}

	if v := os.Getenv(EnvReferenceWidth); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%s: want a positive number, got %q", EnvReferenceWidth, v)
		}
		cfg.ReferenceWidthCm = f
	}
	if v := os.Getenv(EnvReferenceHeight); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%s: want a positive number, got %q", EnvReferenceHeight, v)
		}
		cfg.ReferenceHeightCm = f
	}
	if v := os.Getenv(EnvMinArea); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s: want a positive integer, got %q", EnvMinArea, v)
		}
		cfg.MinArea = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

func parseLevel(v string) (slog.Level, error) {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%s: unknown level %q (want debug, info, warn or error)", EnvLogLevel, v)
	}
}
