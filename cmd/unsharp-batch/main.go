// Command unsharp-batch runs the sharpening pipeline headless: it reads
// image files from the command line, processes them in order, and writes
// the results into an output directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"unsharp-annihilator/debug"
	"unsharp-annihilator/filter"
	"unsharp-annihilator/internal/config"
	"unsharp-annihilator/internal/logger"
	"unsharp-annihilator/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		outDir    = flag.String("out", ".", "output directory for processed images")
		algorithm = flag.String("algorithm", "unsharp", "algorithm to run: unsharp or tone")
		strength  = flag.Int("strength", 50, "sharpening strength in percent (0-100)")
		radius    = flag.Int("radius", 2, "box blur radius in pixels (0-5)")
		threshold = flag.Float64("threshold", 3.0, "edge magnitude threshold (0-50)")
		mode      = flag.String("mode", "grayscale", "tone mode: grayscale or sepia")
		intensity = flag.Float64("intensity", 1.0, "tone intensity (0-1)")
		quality   = flag.Int("quality", 0, "JPEG output quality (1-100, 0 uses the configured default)")
		logLevel  = flag.String("log-level", "", "log level override (debug, info, warn, error)")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: unsharp-batch [flags] image...")
		flag.PrintDefaults()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v, using defaults\n", err)
	}
	if *logLevel != "" {
		if level, parseErr := zerolog.ParseLevel(*logLevel); parseErr == nil {
			cfg.LogLevel = level
		}
	}

	log := logger.NewConsoleLogger(cfg.LogLevel)

	debug.EnableImageDebug = cfg.ImageDebug
	debug.EnableFormatDebug = cfg.FormatDebug
	debug.EnableBatchDebug = cfg.BatchDebug
	debug.EnablePerformanceDebug = cfg.PerfDebug

	debugManager := debug.NewManager()
	defer debugManager.Cleanup()

	filterManager := filter.NewAlgorithmManager()
	defer filterManager.Cleanup()

	batchPipeline := pipeline.NewBatchPipeline(filterManager, log, debugManager)
	defer batchPipeline.Shutdown()

	if *quality > 0 {
		batchPipeline.SetJPEGQuality(*quality)
	} else {
		batchPipeline.SetJPEGQuality(cfg.JPEGQuality)
	}

	var algorithmName string
	var params map[string]interface{}
	switch *algorithm {
	case "unsharp":
		algorithmName = filter.AlgorithmUnsharp
		params = map[string]interface{}{
			"strength":  *strength,
			"radius":    *radius,
			"threshold": *threshold,
		}
	case "tone":
		algorithmName = filter.AlgorithmTone
		params = map[string]interface{}{
			"mode":      *mode,
			"intensity": *intensity,
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown algorithm %q\n", *algorithm)
		return 2
	}

	if err := filterManager.ValidateParameters(algorithmName, params); err != nil {
		fmt.Fprintf(os.Stderr, "invalid parameters: %v\n", err)
		return 2
	}

	loaded := 0
	for _, path := range flag.Args() {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			log.Warning("cli", "skipping unreadable file", map[string]interface{}{
				"path":  path,
				"error": readErr.Error(),
			})
			continue
		}

		if _, addErr := batchPipeline.AddImage(filepath.Base(path), data); addErr != nil {
			log.Warning("cli", "skipping undecodable file", map[string]interface{}{
				"path":  path,
				"error": addErr.Error(),
			})
			continue
		}
		loaded++
	}

	if loaded == 0 {
		fmt.Fprintln(os.Stderr, "no readable input images")
		return 1
	}

	summary, err := batchPipeline.RunBatch(algorithmName, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "batch failed: %v\n", err)
		return 1
	}

	if mkErr := os.MkdirAll(*outDir, 0o755); mkErr != nil {
		fmt.Fprintf(os.Stderr, "cannot create output directory: %v\n", mkErr)
		return 1
	}

	for _, result := range batchPipeline.Results() {
		outPath := filepath.Join(*outDir, result.OutputName)
		if writeErr := result.WriteToFile(outPath, 0o644); writeErr != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", outPath, writeErr)
			return 1
		}
		fmt.Println(outPath)
	}

	log.Info("cli", "batch finished", map[string]interface{}{
		"state":     summary.State.String(),
		"succeeded": summary.Succeeded,
		"skipped":   summary.Skipped,
		"duration":  summary.Duration.String(),
	})

	if summary.Succeeded == 0 {
		return 1
	}
	return 0
}
