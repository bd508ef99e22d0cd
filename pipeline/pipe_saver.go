package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultJPEGQuality matches the historical encoder setting (0.9).
const DefaultJPEGQuality = 90

// encodeImage serializes img in the named format. JPEG is the batch
// default; PNG, TIFF, and BMP serve the save-as path.
func encodeImage(img image.Image, format string, jpegQuality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("jpeg encode: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("png encode: %w", err)
		}
	case "tiff", "tif":
		if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
			return nil, fmt.Errorf("tiff encode: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("bmp encode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return buf.Bytes(), nil
}

// SaveImage encodes img in the format implied by the writer's file
// extension and writes it out. Unknown extensions fall back to PNG.
func (pipeline *BatchPipeline) SaveImage(writer fyne.URIWriteCloser, img *image.NRGBA) error {
	if img == nil {
		return fmt.Errorf("no processed image to save")
	}

	startTime := pipeline.debugManager.StartTiming("image_save")
	defer pipeline.debugManager.EndTiming("image_save", startTime)

	saveStart := time.Now()

	ext := strings.ToLower(writer.URI().Extension())

	var saveFormat string
	switch ext {
	case ".jpg", ".jpeg":
		saveFormat = "jpeg"
	case ".png":
		saveFormat = "png"
	case ".tiff", ".tif":
		saveFormat = "tiff"
	case ".bmp":
		saveFormat = "bmp"
	default:
		saveFormat = "png"
	}

	pipeline.mu.RLock()
	quality := pipeline.jpegQuality
	pipeline.mu.RUnlock()

	data, err := encodeImage(img, saveFormat, quality)
	if err != nil {
		return &EncodeError{Name: writer.URI().Name(), Err: err}
	}

	if _, err := writer.Write(data); err != nil {
		return &EncodeError{Name: writer.URI().Name(), Err: err}
	}

	pipeline.debugManager.LogImageConversion("nrgba", saveFormat, time.Since(saveStart))
	return nil
}
