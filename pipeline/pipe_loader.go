package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"gocv.io/x/gocv"

	"unsharp-annihilator/debug"
)

// Decoder turns raw uploaded bytes into a pixel buffer. The default
// implementation is StdDecoder; tests and alternative front ends inject
// their own.
type Decoder interface {
	Decode(displayName string, data []byte) (*image.NRGBA, string, error)
}

// StdDecoder decodes with Go's standard library and cross-checks the
// bytes with OpenCV's IMDecode, logging any disagreement. The detected
// format prefers the file extension over the sniffed format.
type StdDecoder struct {
	debugManager *debug.Manager
}

func NewStdDecoder(debugManager *debug.Manager) *StdDecoder {
	return &StdDecoder{debugManager: debugManager}
}

func (d *StdDecoder) Decode(displayName string, data []byte) (*image.NRGBA, string, error) {
	ext := strings.ToLower(filepath.Ext(displayName))

	img, standardLibFormat, err := image.Decode(bytes.NewReader(data))
	standardLibSuccess := err == nil
	standardLibError := ""
	if err != nil {
		standardLibError = err.Error()
	}
	d.debugManager.LogStandardLibDecodingResult(standardLibFormat, standardLibSuccess, standardLibError)

	if err != nil {
		return nil, "", fmt.Errorf("standard library decode failed: %w", err)
	}

	// Cross-check with OpenCV. A disagreement is logged, not fatal: the
	// pixel buffer comes from the standard library either way.
	mat, cvErr := gocv.IMDecode(data, gocv.IMReadColor)
	openCVSuccess := cvErr == nil
	openCVError := ""
	matChannels := 0
	if cvErr != nil {
		openCVError = cvErr.Error()
	} else {
		matChannels = mat.Channels()
		mat.Close()
	}
	d.debugManager.LogOpenCVDecodingResult(openCVSuccess, matChannels, openCVError)
	if !openCVSuccess {
		d.debugManager.LogWarning("Loader",
			fmt.Sprintf("OpenCV could not decode %s; continuing with standard library result", displayName))
	}

	actualFormat := determineActualFormat(ext, standardLibFormat)

	firstBytes := make([]byte, 16)
	copy(firstBytes, data)
	d.debugManager.LogFormatDetection(&debug.FormatDetection{
		DisplayName:       displayName,
		Extension:         ext,
		StandardLibFormat: standardLibFormat,
		OpenCVSupported:   openCVSuccess,
		FinalFormat:       actualFormat,
		DataSize:          len(data),
		FirstBytes:        firstBytes,
	})

	if isFormatMismatch(ext, standardLibFormat) {
		d.debugManager.LogFormatMismatch(displayName, ext, standardLibFormat)
	}

	return toNRGBA(img), actualFormat, nil
}

// AddImage decodes one uploaded file and appends it to the batch list.
// A file that fails to decode is rejected with a DecodeError and the
// existing list is untouched.
func (pipeline *BatchPipeline) AddImage(displayName string, data []byte) (*ImageData, error) {
	startTime := pipeline.debugManager.StartTiming("image_load")
	defer pipeline.debugManager.EndTiming("image_load", startTime)

	loadStartTime := time.Now()

	pipeline.mu.RLock()
	decoder := pipeline.decoder
	pipeline.mu.RUnlock()

	buffer, format, err := decoder.Decode(displayName, data)
	if err != nil {
		decodeErr := &DecodeError{Name: displayName, Err: err}
		pipeline.log.Error("BatchPipeline", decodeErr, map[string]interface{}{
			"name": displayName,
			"size": len(data),
		})
		return nil, decodeErr
	}
	if buffer == nil {
		return nil, &DecodeError{Name: displayName, Err: fmt.Errorf("decoder returned no buffer")}
	}

	pipeline.mu.Lock()
	pipeline.nextID++
	item := &ImageData{
		ID:          fmt.Sprintf("img_%d", pipeline.nextID),
		DisplayName: displayName,
		SizeBytes:   len(data),
		SourceBytes: data,
		Buffer:      buffer,
		Width:       buffer.Bounds().Dx(),
		Height:      buffer.Bounds().Dy(),
		Format:      format,
	}
	pipeline.images = append(pipeline.images, item)
	pipeline.mu.Unlock()

	pipeline.debugManager.LogImageLoad(&debug.ImageDebugInfo{
		DisplayName:    displayName,
		DetectedFormat: format,
		Width:          item.Width,
		Height:         item.Height,
		DataSize:       len(data),
		LoadTime:       time.Since(loadStartTime),
	})

	pipeline.log.Info("BatchPipeline", "image added", map[string]interface{}{
		"id":     item.ID,
		"name":   displayName,
		"width":  item.Width,
		"height": item.Height,
		"format": format,
	})

	return item, nil
}

func determineActualFormat(ext, stdLibFormat string) string {
	// The extension is what the user named the file; prefer it.
	switch ext {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		if stdLibFormat != "" {
			return stdLibFormat
		}
		return "unknown"
	}
}

func isFormatMismatch(ext, stdLibFormat string) bool {
	if ext == "" || stdLibFormat == "" {
		return false
	}

	expectedFromExt := determineActualFormat(ext, "")
	return expectedFromExt != stdLibFormat && expectedFromExt != "unknown"
}
