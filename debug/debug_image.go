package debug

import (
	"fmt"
	"time"
)

type ImageDebugInfo struct {
	DisplayName     string
	DetectedFormat  string
	Width           int
	Height          int
	DataSize        int
	LoadTime        time.Duration
	ProcessingSteps []string
}

// Global debug toggles (set from main package)
var (
	EnableImageDebug       = true
	EnableFormatDebug      = false
	EnablePerformanceDebug = true
	EnableBatchDebug       = true
)

func (dm *Manager) LogImageLoad(info *ImageDebugInfo) {
	if !EnableImageDebug {
		return
	}

	report := fmt.Sprintf(`Image Load Debug Report:
- Display Name: %s
- Detected Format: %s
- Dimensions: %dx%d
- Data Size: %d bytes
- Load Time: %v
- Processing Steps: %v`,
		info.DisplayName,
		info.DetectedFormat,
		info.Width,
		info.Height,
		info.DataSize,
		info.LoadTime,
		info.ProcessingSteps)

	LogInfo("ImageDebug", report)
}

func (dm *Manager) LogFilterRun(algorithm string, params map[string]interface{}, processingTime time.Duration) {
	if !EnableImageDebug {
		return
	}
	report := fmt.Sprintf("Filter run completed - Algorithm: %s, Time: %v, Params: %+v",
		algorithm, processingTime, params)
	LogInfo("ImageDebug", report)
}

func (dm *Manager) LogImageConversion(fromFormat, toFormat string, conversionTime time.Duration) {
	if !EnableImageDebug {
		return
	}
	LogInfo("ImageDebug",
		fmt.Sprintf("Image conversion: %s -> %s (Time: %v)", fromFormat, toFormat, conversionTime))
}

func (dm *Manager) LogImageMetrics(psnr, ssim float64, calculationTime time.Duration) {
	if !EnablePerformanceDebug {
		return
	}
	LogInfo("ImageDebug",
		fmt.Sprintf("Image metrics calculated - PSNR: %.2f dB, SSIM: %.4f (Time: %v)",
			psnr, ssim, calculationTime))
}
