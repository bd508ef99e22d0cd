package filter

import (
	"fmt"
	"image"
	"sync"

	"unsharp-annihilator/debug"
)

// Algorithm names exposed to the GUI and CLI.
const (
	AlgorithmUnsharp = "Unsharp Mask"
	AlgorithmTone    = "Tone Filter"
)

// AlgorithmManager coordinates the available filter implementations and
// owns their parameter sets.
type AlgorithmManager struct {
	mu               sync.RWMutex
	currentAlgorithm string
	parameters       map[string]map[string]interface{}
	pool             BufferPool
	debugManager     *debug.Manager
}

// ProcessingResult encapsulates a filter run with metadata.
type ProcessingResult struct {
	Result     *image.NRGBA
	Algorithm  string
	Parameters map[string]interface{}
	Statistics map[string]interface{}
}

// NewAlgorithmManager creates a manager with default parameters.
func NewAlgorithmManager() *AlgorithmManager {
	manager := &AlgorithmManager{
		currentAlgorithm: AlgorithmUnsharp,
		parameters:       make(map[string]map[string]interface{}),
		debugManager:     debug.NewManager(),
	}

	manager.initializeDefaultParameters()
	return manager
}

func (am *AlgorithmManager) initializeDefaultParameters() {
	am.parameters[AlgorithmUnsharp] = map[string]interface{}{
		"strength":  50,  // percent of the delta recomposited
		"radius":    2,   // blur window radius, UI caps at 5
		"threshold": 3.0, // magnitude gate, keeps flat regions quiet
	}

	am.parameters[AlgorithmTone] = map[string]interface{}{
		"mode":      ToneGrayscale,
		"intensity": 1.0,
	}
}

// SetBufferPool installs a scratch buffer pool shared by filter runs.
func (am *AlgorithmManager) SetBufferPool(pool BufferPool) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.pool = pool
}

// Process runs the named algorithm over src with the merged parameters.
func (am *AlgorithmManager) Process(algorithm string, src *image.NRGBA, overrides map[string]interface{}) (*ProcessingResult, error) {
	switch algorithm {
	case AlgorithmUnsharp:
		return am.ProcessUnsharp(src, overrides)
	case AlgorithmTone:
		return am.ProcessTone(src, overrides)
	default:
		return nil, fmt.Errorf("unknown algorithm: %s", algorithm)
	}
}

// ProcessUnsharp executes the unsharp mask with current parameters.
func (am *AlgorithmManager) ProcessUnsharp(src *image.NRGBA, overrides map[string]interface{}) (*ProcessingResult, error) {
	am.mu.RLock()
	mergedParams := am.mergeParameters(AlgorithmUnsharp, overrides)
	pool := am.pool
	am.mu.RUnlock()

	startTime := am.debugManager.StartTiming("unsharp_process")
	defer am.debugManager.EndTiming("unsharp_process", startTime)

	if err := am.validateUnsharpParameters(mergedParams); err != nil {
		return nil, err
	}

	core := NewUnsharpCore(UnsharpSettingsFromParams(mergedParams), pool)
	result, err := core.Process(src)
	if err != nil {
		return nil, fmt.Errorf("unsharp mask processing failed: %w", err)
	}

	statistics := map[string]interface{}{
		"output_dimensions": fmt.Sprintf("%dx%d", result.Bounds().Dx(), result.Bounds().Dy()),
		"total_pixels":      result.Bounds().Dx() * result.Bounds().Dy(),
		"sharpened_pixels":  core.SharpenedPixels(),
		"algorithm_type":    "Unsharp_Mask",
	}

	return &ProcessingResult{
		Result:     result,
		Algorithm:  AlgorithmUnsharp,
		Parameters: mergedParams,
		Statistics: statistics,
	}, nil
}

// ProcessTone executes the tone filter with current parameters.
func (am *AlgorithmManager) ProcessTone(src *image.NRGBA, overrides map[string]interface{}) (*ProcessingResult, error) {
	am.mu.RLock()
	mergedParams := am.mergeParameters(AlgorithmTone, overrides)
	am.mu.RUnlock()

	startTime := am.debugManager.StartTiming("tone_process")
	defer am.debugManager.EndTiming("tone_process", startTime)

	if err := am.validateToneParameters(mergedParams); err != nil {
		return nil, err
	}

	core := NewToneCore(ToneSettingsFromParams(mergedParams))
	result, err := core.Process(src)
	if err != nil {
		return nil, fmt.Errorf("tone filter processing failed: %w", err)
	}

	statistics := map[string]interface{}{
		"output_dimensions": fmt.Sprintf("%dx%d", result.Bounds().Dx(), result.Bounds().Dy()),
		"total_pixels":      result.Bounds().Dx() * result.Bounds().Dy(),
		"mode":              getStringParam(mergedParams, "mode", ToneGrayscale),
		"algorithm_type":    "Tone_Filter",
	}

	return &ProcessingResult{
		Result:     result,
		Algorithm:  AlgorithmTone,
		Parameters: mergedParams,
		Statistics: statistics,
	}, nil
}

func (am *AlgorithmManager) mergeParameters(algorithm string, overrides map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{})
	if defaults, exists := am.parameters[algorithm]; exists {
		for k, v := range defaults {
			merged[k] = v
		}
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// SetCurrentAlgorithm updates the active algorithm.
func (am *AlgorithmManager) SetCurrentAlgorithm(algorithm string) {
	am.mu.Lock()
	defer am.mu.Unlock()

	if _, exists := am.parameters[algorithm]; exists {
		am.currentAlgorithm = algorithm
	}
}

// GetCurrentAlgorithm returns the currently selected algorithm.
func (am *AlgorithmManager) GetCurrentAlgorithm() string {
	am.mu.RLock()
	defer am.mu.RUnlock()
	return am.currentAlgorithm
}

// GetParameters returns a copy of parameters for the specified algorithm.
func (am *AlgorithmManager) GetParameters(algorithm string) map[string]interface{} {
	am.mu.RLock()
	defer am.mu.RUnlock()

	if params, exists := am.parameters[algorithm]; exists {
		result := make(map[string]interface{})
		for k, v := range params {
			result[k] = v
		}
		return result
	}

	return make(map[string]interface{})
}

// SetParameter updates a specific parameter for an algorithm.
func (am *AlgorithmManager) SetParameter(algorithm, name string, value interface{}) {
	am.mu.Lock()
	defer am.mu.Unlock()

	if params, exists := am.parameters[algorithm]; exists {
		params[name] = value
	}
}

// GetParameter retrieves a specific parameter value.
func (am *AlgorithmManager) GetParameter(algorithm, name string) (interface{}, bool) {
	am.mu.RLock()
	defer am.mu.RUnlock()

	if params, exists := am.parameters[algorithm]; exists {
		if value, exists := params[name]; exists {
			return value, true
		}
	}

	return nil, false
}

// ValidateParameters checks if parameters are within acceptable ranges.
func (am *AlgorithmManager) ValidateParameters(algorithm string, params map[string]interface{}) error {
	switch algorithm {
	case AlgorithmUnsharp:
		return am.validateUnsharpParameters(params)
	case AlgorithmTone:
		return am.validateToneParameters(params)
	default:
		return fmt.Errorf("unknown algorithm: %s", algorithm)
	}
}

func (am *AlgorithmManager) validateUnsharpParameters(params map[string]interface{}) error {
	if strength, ok := params["strength"].(int); ok {
		if strength < 0 || strength > 100 {
			return fmt.Errorf("strength must be between 0-100, got %d", strength)
		}
	}

	if radius, ok := params["radius"].(int); ok {
		if radius < 0 || radius > 5 {
			return fmt.Errorf("radius must be between 0-5, got %d", radius)
		}
	}

	if threshold, ok := params["threshold"].(float64); ok {
		if threshold < 0.0 || threshold > 50.0 {
			return fmt.Errorf("threshold must be between 0.0-50.0, got %f", threshold)
		}
	}

	return nil
}

func (am *AlgorithmManager) validateToneParameters(params map[string]interface{}) error {
	if mode, ok := params["mode"].(string); ok {
		if mode != ToneGrayscale && mode != ToneSepia {
			return fmt.Errorf("mode must be %q or %q, got %q", ToneGrayscale, ToneSepia, mode)
		}
	}

	if intensity, ok := params["intensity"].(float64); ok {
		if intensity < 0.0 || intensity > 1.0 {
			return fmt.Errorf("intensity must be between 0.0-1.0, got %f", intensity)
		}
	}

	return nil
}

// GetAvailableAlgorithms returns the list of supported algorithms.
func (am *AlgorithmManager) GetAvailableAlgorithms() []string {
	return []string{AlgorithmUnsharp, AlgorithmTone}
}

// GetPerformanceReport returns timing analysis of recent processing.
func (am *AlgorithmManager) GetPerformanceReport() string {
	return am.debugManager.GetPerformanceReport()
}

// Cleanup releases resources used by the algorithm manager.
func (am *AlgorithmManager) Cleanup() {
	am.mu.Lock()
	defer am.mu.Unlock()

	if am.debugManager != nil {
		am.debugManager.Cleanup()
	}
}
