package pipeline

import (
	"fmt"
	"image"
	"sync"

	"fyne.io/fyne/v2"

	"unsharp-annihilator/debug"
	"unsharp-annihilator/filter"
	"unsharp-annihilator/internal/logger"
)

// ImageData is one uploaded image: the immutable source bytes plus the
// decoded pixel buffer and detected metadata. Instances live in the
// batch list from add until remove or reset.
type ImageData struct {
	ID          string
	DisplayName string
	SizeBytes   int
	SourceBytes []byte
	Buffer      *image.NRGBA
	Width       int
	Height      int
	Format      string
}

// BatchState tracks a batch run. There is deliberately no cancelled
// state: once started, a run always attempts every input.
type BatchState int

const (
	StateIdle BatchState = iota
	StateRunning
	StateCompleted
	StateCompletedWithSkips
)

func (s BatchState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateCompletedWithSkips:
		return "CompletedWithSkips"
	default:
		return fmt.Sprintf("BatchState(%d)", int(s))
	}
}

// BatchPipeline owns the ordered upload list, runs filters over it, and
// collects results. All exported methods are safe for concurrent use.
type BatchPipeline struct {
	mu      sync.RWMutex
	images  []*ImageData
	results []*ProcessedResult
	state   BatchState
	nextID  int

	algorithms  *filter.AlgorithmManager
	decoder     Decoder
	bufferPool  *BufferPool
	jpegQuality int

	debugManager *debug.Manager
	log          logger.Logger

	progressCallback func(float64)
	statusCallback   func(string)
}

// NewBatchPipeline wires a pipeline to the algorithm manager, a
// structured logger, and a debug manager. The default decoder is
// installed; tests substitute their own via SetDecoder.
func NewBatchPipeline(algorithms *filter.AlgorithmManager, log logger.Logger, debugManager *debug.Manager) *BatchPipeline {
	pool := NewBufferPool(debugManager)
	algorithms.SetBufferPool(pool)

	return &BatchPipeline{
		state:        StateIdle,
		algorithms:   algorithms,
		decoder:      NewStdDecoder(debugManager),
		bufferPool:   pool,
		jpegQuality:  DefaultJPEGQuality,
		debugManager: debugManager,
		log:          log,
	}
}

// SetDecoder replaces the image decoder. Passing nil restores the
// default decoder.
func (pipeline *BatchPipeline) SetDecoder(decoder Decoder) {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()
	if decoder == nil {
		decoder = NewStdDecoder(pipeline.debugManager)
	}
	pipeline.decoder = decoder
}

// SetJPEGQuality overrides the JPEG encode quality (1-100).
func (pipeline *BatchPipeline) SetJPEGQuality(quality int) {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()
	if quality >= 1 && quality <= 100 {
		pipeline.jpegQuality = quality
	}
}

func (pipeline *BatchPipeline) SetProgressCallback(callback func(float64)) {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()
	pipeline.progressCallback = callback
}

func (pipeline *BatchPipeline) SetStatusCallback(callback func(string)) {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()
	pipeline.statusCallback = callback
}

func (pipeline *BatchPipeline) updateProgress(progress float64) {
	if pipeline.progressCallback != nil {
		fyne.Do(func() {
			pipeline.progressCallback(progress)
		})
	}
}

func (pipeline *BatchPipeline) updateStatus(status string) {
	if pipeline.statusCallback != nil {
		fyne.Do(func() {
			pipeline.statusCallback(status)
		})
	}
}

// Images returns a snapshot of the upload list in submission order.
func (pipeline *BatchPipeline) Images() []*ImageData {
	pipeline.mu.RLock()
	defer pipeline.mu.RUnlock()

	images := make([]*ImageData, len(pipeline.images))
	copy(images, pipeline.images)
	return images
}

// Results returns a snapshot of the last batch's results in order.
func (pipeline *BatchPipeline) Results() []*ProcessedResult {
	pipeline.mu.RLock()
	defer pipeline.mu.RUnlock()

	results := make([]*ProcessedResult, len(pipeline.results))
	copy(results, pipeline.results)
	return results
}

// State reports the batch state machine's current state.
func (pipeline *BatchPipeline) State() BatchState {
	pipeline.mu.RLock()
	defer pipeline.mu.RUnlock()
	return pipeline.state
}

// RemoveImage drops one image from the upload list by ID.
func (pipeline *BatchPipeline) RemoveImage(id string) bool {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()

	for i, img := range pipeline.images {
		if img.ID == id {
			pipeline.images = append(pipeline.images[:i], pipeline.images[i+1:]...)
			pipeline.log.Info("BatchPipeline", "image removed", map[string]interface{}{
				"id":   id,
				"name": img.DisplayName,
			})
			return true
		}
	}
	return false
}

// Clear resets the upload list, results, and state.
func (pipeline *BatchPipeline) Clear() {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()

	pipeline.images = nil
	pipeline.results = nil
	pipeline.state = StateIdle
	pipeline.log.Info("BatchPipeline", "batch reset", nil)
}

// Shutdown releases pooled buffers and drops all images. It satisfies
// the shutdown manager's Shutdownable interface.
func (pipeline *BatchPipeline) Shutdown() {
	pipeline.mu.Lock()
	pipeline.images = nil
	pipeline.results = nil
	pipeline.state = StateIdle
	pipeline.mu.Unlock()

	pipeline.bufferPool.Cleanup()
	pipeline.log.Info("BatchPipeline", "pipeline shut down", nil)
}
