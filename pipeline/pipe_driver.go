package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"unsharp-annihilator/filter"
)

// ProcessedResult is one successfully processed file: the encoded
// output bytes plus naming metadata. Results are independent of each
// other and immutable once created.
type ProcessedResult struct {
	SourceID   string
	OutputName string
	Algorithm  string
	data       []byte
}

// Bytes returns the encoded output.
func (r *ProcessedResult) Bytes() []byte {
	return r.data
}

// Len returns the encoded output size in bytes.
func (r *ProcessedResult) Len() int {
	return len(r.data)
}

// Reader returns a reader over the encoded output, suitable for
// streaming uploads or any API accepting an io.Reader.
func (r *ProcessedResult) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the encoded output to w. It implements io.WriterTo.
func (r *ProcessedResult) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the encoded output to the file at path.
func (r *ProcessedResult) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}

// outputName applies the fixed per-algorithm prefix transformation to
// the original name. Outputs are always JPEG.
func outputName(displayName, algorithm string) string {
	base := filepath.Base(displayName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	prefix := "sharpened_"
	if algorithm == filter.AlgorithmTone {
		prefix = "toned_"
	}
	return prefix + stem + ".jpg"
}

// processOne runs the per-image driver: filter the decoded buffer, then
// encode. Failures are typed so the batch driver can record and skip.
func (pipeline *BatchPipeline) processOne(item *ImageData, algorithm string, params map[string]interface{}) (*ProcessedResult, error) {
	startTime := pipeline.debugManager.StartTiming("image_process")
	defer pipeline.debugManager.EndTiming("image_process", startTime)

	processStart := time.Now()

	if item.Buffer == nil {
		return nil, &BufferError{Name: item.DisplayName, Err: fmt.Errorf("no decoded pixel buffer")}
	}

	procResult, err := pipeline.algorithms.Process(algorithm, item.Buffer, params)
	if err != nil {
		return nil, &BufferError{Name: item.DisplayName, Err: err}
	}

	pipeline.mu.RLock()
	quality := pipeline.jpegQuality
	pipeline.mu.RUnlock()

	data, err := encodeImage(procResult.Result, "jpeg", quality)
	if err != nil {
		return nil, &EncodeError{Name: item.DisplayName, Err: err}
	}

	pipeline.debugManager.LogFilterRun(algorithm, procResult.Parameters, time.Since(processStart))

	return &ProcessedResult{
		SourceID:   item.ID,
		OutputName: outputName(item.DisplayName, algorithm),
		Algorithm:  algorithm,
		data:       data,
	}, nil
}

// safeProcessOne guards the per-file boundary: a panic inside the
// driver is converted into a per-file error instead of taking down the
// whole batch.
func (pipeline *BatchPipeline) safeProcessOne(item *ImageData, algorithm string, params map[string]interface{}) (result *ProcessedResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &BufferError{Name: item.DisplayName, Err: fmt.Errorf("processing panic: %v", r)}
		}
	}()

	return pipeline.processOne(item, algorithm, params)
}

// GeneratePreview runs the cheaper one-shot preview path: the first
// image in the batch list, downscaled to fit maxWidth x maxHeight, then
// filtered. Debouncing rapid settings changes is the caller's job.
func (pipeline *BatchPipeline) GeneratePreview(algorithm string, params map[string]interface{}, maxWidth, maxHeight int) (*image.NRGBA, error) {
	startTime := pipeline.debugManager.StartTiming("preview_generate")
	defer pipeline.debugManager.EndTiming("preview_generate", startTime)

	pipeline.mu.RLock()
	var first *ImageData
	if len(pipeline.images) > 0 {
		first = pipeline.images[0]
	}
	pipeline.mu.RUnlock()

	if first == nil || first.Buffer == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	if err := pipeline.algorithms.ValidateParameters(algorithm, params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	src := first.Buffer
	if maxWidth > 0 && maxHeight > 0 {
		src = scaleToFit(src, maxWidth, maxHeight)
	}

	procResult, err := pipeline.algorithms.Process(algorithm, src, params)
	if err != nil {
		return nil, fmt.Errorf("preview processing failed: %w", err)
	}

	return procResult.Result, nil
}

// scaleToFit downscales src to fit within maxWidth x maxHeight while
// preserving aspect ratio. Images that already fit are returned as-is;
// the preview never upscales.
func scaleToFit(src *image.NRGBA, maxWidth, maxHeight int) *image.NRGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleX := float64(maxWidth) / float64(w)
	scaleY := float64(maxHeight) / float64(h)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
