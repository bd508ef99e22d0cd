package debug

import (
	"fmt"
)

// FormatDetection captures everything the loader learned while deciding
// what format an uploaded file actually is.
type FormatDetection struct {
	DisplayName       string
	Extension         string
	StandardLibFormat string
	OpenCVSupported   bool
	FinalFormat       string
	DataSize          int
	FirstBytes        []byte
}

func (dm *Manager) LogFormatDetection(detection *FormatDetection) {
	if !EnableFormatDebug {
		return
	}

	report := fmt.Sprintf(`Format Detection Report:
- Display Name: %s
- Extension: %s
- Standard Library Format: %s
- OpenCV Supported: %t
- Final Format: %s
- Data Size: %d bytes
- First Bytes: %x`,
		detection.DisplayName,
		detection.Extension,
		detection.StandardLibFormat,
		detection.OpenCVSupported,
		detection.FinalFormat,
		detection.DataSize,
		detection.FirstBytes)

	LogInfo("FormatDebug", report)
}

func (dm *Manager) LogStandardLibDecodingResult(format string, success bool, errorMessage string) {
	if !EnableFormatDebug {
		return
	}
	if success {
		LogInfo("FormatDebug", fmt.Sprintf("Standard library decode succeeded, format: %s", format))
	} else {
		LogWarning("FormatDebug", fmt.Sprintf("Standard library decode failed: %s", errorMessage))
	}
}

func (dm *Manager) LogOpenCVDecodingResult(success bool, channels int, errorMessage string) {
	if !EnableFormatDebug {
		return
	}
	if success {
		LogInfo("FormatDebug", fmt.Sprintf("OpenCV decode succeeded, %d channels", channels))
	} else {
		LogWarning("FormatDebug", fmt.Sprintf("OpenCV decode failed: %s", errorMessage))
	}
}

func (dm *Manager) LogFormatMismatch(displayName, expectedExt, detectedFormat string) {
	if !EnableFormatDebug {
		return
	}
	warning := fmt.Sprintf("Format mismatch detected - File: %s, Expected: %s, Detected: %s",
		displayName, expectedExt, detectedFormat)
	LogWarning("FormatDebug", warning)
}
