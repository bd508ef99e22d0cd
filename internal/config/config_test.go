package config

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.JPEGQuality != 90 {
		t.Errorf("JPEGQuality = %d, want 90", cfg.JPEGQuality)
	}
	if !cfg.ImageDebug || cfg.FormatDebug || !cfg.BatchDebug || !cfg.PerfDebug {
		t.Errorf("debug toggles = %+v", cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvJPEGQuality, "75")
	t.Setenv(EnvFormatDebug, "true")
	t.Setenv(EnvBatchDebug, "false")
	t.Setenv(EnvPerfDebug, "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.JPEGQuality != 75 {
		t.Errorf("JPEGQuality = %d, want 75", cfg.JPEGQuality)
	}
	if !cfg.FormatDebug {
		t.Error("FormatDebug should be enabled")
	}
	if cfg.BatchDebug {
		t.Error("BatchDebug should be disabled")
	}
	if cfg.PerfDebug {
		t.Error("PerfDebug should be disabled")
	}
}

func TestLoadKeepsDefaultsOnBadValues(t *testing.T) {
	t.Setenv(EnvLogLevel, "shouting")
	t.Setenv(EnvJPEGQuality, "200")

	cfg, err := Load()
	if err == nil {
		t.Error("malformed values should be reported")
	}

	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("LogLevel = %v, want the info default", cfg.LogLevel)
	}
	if cfg.JPEGQuality != 90 {
		t.Errorf("JPEGQuality = %d, want the 90 default", cfg.JPEGQuality)
	}
}

func TestBoolEnvMalformed(t *testing.T) {
	t.Setenv(EnvImageDebug, "sometimes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.ImageDebug {
		t.Error("a malformed boolean must keep the default")
	}
}
