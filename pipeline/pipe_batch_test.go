package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"unsharp-annihilator/debug"
	"unsharp-annihilator/filter"
	"unsharp-annihilator/internal/logger"
)

// fakeDecoder avoids real codecs in tests. Names listed in fail are
// rejected; everything else decodes to a synthetic gradient.
type fakeDecoder struct {
	width  int
	height int
	fail   map[string]bool
}

func (d *fakeDecoder) Decode(displayName string, data []byte) (*image.NRGBA, string, error) {
	if d.fail[displayName] {
		return nil, "", fmt.Errorf("corrupt image data")
	}

	w, h := d.width, d.height
	if w == 0 {
		w, h = 16, 16
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			img.Pix[i+0] = uint8(x * 255 / w)
			img.Pix[i+1] = uint8(y * 255 / h)
			img.Pix[i+2] = 128
			img.Pix[i+3] = 255
		}
	}
	return img, "png", nil
}

func newTestPipeline(t *testing.T, decoder Decoder) *BatchPipeline {
	t.Helper()

	log := logger.NewZerolog(io.Discard, zerolog.Disabled)
	pipeline := NewBatchPipeline(filter.NewAlgorithmManager(), log, debug.NewManager())
	if decoder != nil {
		pipeline.SetDecoder(decoder)
	}
	return pipeline
}

func unsharpParams() map[string]interface{} {
	return map[string]interface{}{"strength": 60, "radius": 1, "threshold": 0.0}
}

func TestAddImageRejectsUndecodable(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{fail: map[string]bool{"bad.png": true}})

	_, err := pipeline.AddImage("bad.png", []byte("not an image"))
	if err == nil {
		t.Fatal("expected a decode error")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
	if decodeErr.Name != "bad.png" {
		t.Errorf("error name = %q, want %q", decodeErr.Name, "bad.png")
	}
	if len(pipeline.Images()) != 0 {
		t.Error("a rejected file must not enter the batch list")
	}
}

func TestAddImageRecordsMetadata(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{width: 24, height: 12})

	first, err := pipeline.AddImage("photo.png", make([]byte, 300))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := pipeline.AddImage("other.png", make([]byte, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("IDs must be unique, both are %q", first.ID)
	}
	if first.Width != 24 || first.Height != 12 {
		t.Errorf("dimensions = %dx%d, want 24x12", first.Width, first.Height)
	}
	if first.SizeBytes != 300 {
		t.Errorf("SizeBytes = %d, want 300", first.SizeBytes)
	}
	if first.Format != "png" {
		t.Errorf("Format = %q, want %q", first.Format, "png")
	}

	images := pipeline.Images()
	if len(images) != 2 || images[0].DisplayName != "photo.png" || images[1].DisplayName != "other.png" {
		t.Errorf("batch list out of order: %v", images)
	}
}

func TestRunBatchPreservesOrderAndSkipsFailures(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{})

	a, err := pipeline.AddImage("a.png", []byte("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := pipeline.AddImage("c.png", []byte("c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Wedge a broken entry between the two good ones. Its missing
	// buffer makes the per-image driver fail, which must surface as a
	// skip rather than an abort.
	pipeline.mu.Lock()
	broken := &ImageData{ID: "img_broken", DisplayName: "b.png"}
	pipeline.images = []*ImageData{pipeline.images[0], broken, pipeline.images[1]}
	pipeline.mu.Unlock()

	summary, err := pipeline.RunBatch(filter.AlgorithmUnsharp, unsharpParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 3 || summary.Succeeded != 2 || summary.Skipped != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.SkippedFiles) != 1 || summary.SkippedFiles[0] != "b.png" {
		t.Errorf("skipped files = %v, want [b.png]", summary.SkippedFiles)
	}
	if summary.State != StateCompletedWithSkips {
		t.Errorf("state = %v, want %v", summary.State, StateCompletedWithSkips)
	}
	if pipeline.State() != StateCompletedWithSkips {
		t.Errorf("pipeline state = %v, want %v", pipeline.State(), StateCompletedWithSkips)
	}

	results := pipeline.Results()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].SourceID != a.ID || results[1].SourceID != c.ID {
		t.Errorf("results out of input order: %q then %q", results[0].SourceID, results[1].SourceID)
	}
	if results[0].OutputName != "sharpened_a.jpg" || results[1].OutputName != "sharpened_c.jpg" {
		t.Errorf("output names = %q, %q", results[0].OutputName, results[1].OutputName)
	}
	if results[0].Len() == 0 || results[1].Len() == 0 {
		t.Error("results must carry encoded bytes")
	}
}

func TestRunBatchAllSucceed(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{})

	for _, name := range []string{"one.png", "two.png", "three.png"} {
		if _, err := pipeline.AddImage(name, []byte(name)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	summary, err := pipeline.RunBatch(filter.AlgorithmUnsharp, unsharpParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.State != StateCompleted {
		t.Errorf("state = %v, want %v", summary.State, StateCompleted)
	}
	if summary.Succeeded != 3 || summary.Skipped != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunBatchRejectsInvalidParameters(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{})
	if _, err := pipeline.AddImage("a.png", []byte("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := pipeline.RunBatch(filter.AlgorithmUnsharp, map[string]interface{}{"radius": 99})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if pipeline.State() != StateIdle {
		t.Errorf("state after rejected run = %v, want %v", pipeline.State(), StateIdle)
	}
}

// tamperPool is a scratch-buffer pool whose first Get fires a hook.
// The unsharp core requests its scratch once per image, strictly after
// RunBatch has read the parameters, which makes the hook a mid-run
// mutation point.
type tamperPool struct {
	once   sync.Once
	tamper func()
}

func (p *tamperPool) Get(width, height int) *image.NRGBA {
	p.once.Do(p.tamper)
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

func (p *tamperPool) Put(img *image.NRGBA) {}

func TestRunBatchSnapshotsParameters(t *testing.T) {
	log := logger.NewZerolog(io.Discard, zerolog.Disabled)
	manager := filter.NewAlgorithmManager()
	pipeline := NewBatchPipeline(manager, log, debug.NewManager())
	pipeline.SetDecoder(&fakeDecoder{})

	if _, err := pipeline.AddImage("a.png", []byte("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := pipeline.AddImage("b.png", []byte("b")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := map[string]interface{}{"strength": 100, "radius": 1, "threshold": 0.0}

	// While the first image is being processed, gut the caller's map.
	// If the run read it per file instead of snapshotting, the second
	// image would process at strength 0 and encode differently.
	manager.SetBufferPool(&tamperPool{tamper: func() {
		params["strength"] = 0
	}})

	summary, err := pipeline.RunBatch(filter.AlgorithmUnsharp, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Succeeded != 2 {
		t.Fatalf("summary = %+v", summary)
	}

	if params["strength"] != 0 {
		t.Fatal("the mid-run mutation hook never fired")
	}

	results := pipeline.Results()
	if !bytes.Equal(results[0].Bytes(), results[1].Bytes()) {
		t.Error("identical inputs produced different outputs: mid-run parameter changes leaked into the batch")
	}
}

func TestRunBatchRefusesConcurrentRun(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{})

	pipeline.mu.Lock()
	pipeline.state = StateRunning
	pipeline.mu.Unlock()

	if _, err := pipeline.RunBatch(filter.AlgorithmUnsharp, unsharpParams()); err == nil {
		t.Fatal("a second run must be rejected while one is in flight")
	}
}

func TestRunBatchToneOutputNames(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{})
	if _, err := pipeline.AddImage("portrait.jpeg", []byte("p")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := pipeline.RunBatch(filter.AlgorithmTone, map[string]interface{}{"mode": filter.ToneSepia, "intensity": 0.7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	if got := pipeline.Results()[0].OutputName; got != "toned_portrait.jpg" {
		t.Errorf("output name = %q, want %q", got, "toned_portrait.jpg")
	}
}

func TestRemoveImageAndClear(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{})

	a, _ := pipeline.AddImage("a.png", []byte("a"))
	b, _ := pipeline.AddImage("b.png", []byte("b"))
	c, _ := pipeline.AddImage("c.png", []byte("c"))

	if !pipeline.RemoveImage(b.ID) {
		t.Fatal("RemoveImage returned false for a present ID")
	}
	if pipeline.RemoveImage("img_nope") {
		t.Error("RemoveImage returned true for an absent ID")
	}

	images := pipeline.Images()
	if len(images) != 2 || images[0].ID != a.ID || images[1].ID != c.ID {
		t.Errorf("remaining images out of order: %v", images)
	}

	pipeline.Clear()
	if len(pipeline.Images()) != 0 || len(pipeline.Results()) != 0 || pipeline.State() != StateIdle {
		t.Error("Clear must reset list, results, and state")
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		displayName string
		algorithm   string
		want        string
	}{
		{"photo.png", filter.AlgorithmUnsharp, "sharpened_photo.jpg"},
		{"photo.jpeg", filter.AlgorithmUnsharp, "sharpened_photo.jpg"},
		{"dir/nested.tiff", filter.AlgorithmUnsharp, "sharpened_nested.jpg"},
		{"noext", filter.AlgorithmUnsharp, "sharpened_noext.jpg"},
		{"photo.png", filter.AlgorithmTone, "toned_photo.jpg"},
	}

	for _, tt := range tests {
		if got := outputName(tt.displayName, tt.algorithm); got != tt.want {
			t.Errorf("outputName(%q, %q) = %q, want %q", tt.displayName, tt.algorithm, got, tt.want)
		}
	}
}

func TestGeneratePreview(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{width: 64, height: 32})

	if _, err := pipeline.GeneratePreview(filter.AlgorithmUnsharp, unsharpParams(), 16, 16); err == nil {
		t.Fatal("expected an error with an empty batch")
	}

	if _, err := pipeline.AddImage("big.png", []byte("b")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	preview, err := pipeline.GeneratePreview(filter.AlgorithmUnsharp, unsharpParams(), 16, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if preview.Bounds().Dx() > 16 || preview.Bounds().Dy() > 16 {
		t.Errorf("preview bounds = %v, want within 16x16", preview.Bounds())
	}
	if preview.Bounds().Dx() != 16 || preview.Bounds().Dy() != 8 {
		t.Errorf("preview bounds = %v, want 16x8 (aspect preserved)", preview.Bounds())
	}
}

func TestGeneratePreviewNeverUpscales(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{width: 10, height: 10})
	if _, err := pipeline.AddImage("small.png", []byte("s")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	preview, err := pipeline.GeneratePreview(filter.AlgorithmUnsharp, unsharpParams(), 100, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if preview.Bounds().Dx() != 10 || preview.Bounds().Dy() != 10 {
		t.Errorf("preview bounds = %v, want the original 10x10", preview.Bounds())
	}
}
