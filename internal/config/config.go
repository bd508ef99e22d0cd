package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variable names. A .env file in the working directory is
// loaded first when present; real environment variables win.
const (
	EnvLogLevel    = "ANNIHILATOR_LOG_LEVEL"
	EnvJPEGQuality = "ANNIHILATOR_JPEG_QUALITY"
	EnvImageDebug  = "ANNIHILATOR_DEBUG_IMAGES"
	EnvFormatDebug = "ANNIHILATOR_DEBUG_FORMATS"
	EnvBatchDebug  = "ANNIHILATOR_DEBUG_BATCH"
	EnvPerfDebug   = "ANNIHILATOR_DEBUG_PERF"
)

// Config holds the environment-driven application settings.
type Config struct {
	LogLevel    zerolog.Level
	JPEGQuality int
	ImageDebug  bool
	FormatDebug bool
	BatchDebug  bool
	PerfDebug   bool
}

// Defaults mirrors the historical behavior: info logging, JPEG quality
// 90, image, batch, and performance diagnostics on, format diagnostics
// off.
func Defaults() Config {
	return Config{
		LogLevel:    zerolog.InfoLevel,
		JPEGQuality: 90,
		ImageDebug:  true,
		FormatDebug: false,
		BatchDebug:  true,
		PerfDebug:   true,
	}
}

// Load reads configuration from an optional .env file and the process
// environment. Unset or malformed values keep their defaults; a
// malformed value is reported in the returned error while the rest of
// the configuration still loads.
func Load() (Config, error) {
	// A missing .env file is the normal case, not an error.
	_ = godotenv.Load()

	cfg := Defaults()
	var loadErr error

	if raw := os.Getenv(EnvLogLevel); raw != "" {
		level, err := zerolog.ParseLevel(raw)
		if err != nil {
			loadErr = fmt.Errorf("invalid %s %q: %w", EnvLogLevel, raw, err)
		} else {
			cfg.LogLevel = level
		}
	}

	if raw := os.Getenv(EnvJPEGQuality); raw != "" {
		quality, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			loadErr = fmt.Errorf("invalid %s %q: %w", EnvJPEGQuality, raw, err)
		case quality < 1 || quality > 100:
			loadErr = fmt.Errorf("%s must be between 1-100, got %d", EnvJPEGQuality, quality)
		default:
			cfg.JPEGQuality = quality
		}
	}

	cfg.ImageDebug = boolEnv(EnvImageDebug, cfg.ImageDebug)
	cfg.FormatDebug = boolEnv(EnvFormatDebug, cfg.FormatDebug)
	cfg.BatchDebug = boolEnv(EnvBatchDebug, cfg.BatchDebug)
	cfg.PerfDebug = boolEnv(EnvPerfDebug, cfg.PerfDebug)

	return cfg, loadErr
}

func boolEnv(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
