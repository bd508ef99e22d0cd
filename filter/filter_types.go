package filter

import "image"

// UnsharpSettings is the value object driving the unsharp mask. It is a
// read-only snapshot: callers replace it wholesale, the filter never
// mutates it.
type UnsharpSettings struct {
	Strength  int     // percent, 0-100
	Radius    int     // window radius in pixels
	Threshold float64 // magnitude gate, 0 disables the gate
}

// ToneSettings drives the tone filter (grayscale/sepia).
type ToneSettings struct {
	Mode      string  // "grayscale" or "sepia"
	Intensity float64 // blend factor, 0.0-1.0
}

// BufferPool supplies scratch pixel buffers so repeated filter runs do
// not reallocate per image. A nil pool is valid and means "allocate".
type BufferPool interface {
	Get(width, height int) *image.NRGBA
	Put(img *image.NRGBA)
}

// UnsharpSettingsFromParams extracts typed settings from a parameter map.
func UnsharpSettingsFromParams(params map[string]interface{}) UnsharpSettings {
	return UnsharpSettings{
		Strength:  getIntParam(params, "strength", 50),
		Radius:    getIntParam(params, "radius", 2),
		Threshold: getFloatParam(params, "threshold", 3.0),
	}
}

// ToneSettingsFromParams extracts typed settings from a parameter map.
func ToneSettingsFromParams(params map[string]interface{}) ToneSettings {
	return ToneSettings{
		Mode:      getStringParam(params, "mode", "grayscale"),
		Intensity: getFloatParam(params, "intensity", 1.0),
	}
}

func getIntParam(params map[string]interface{}, key string, defaultValue int) int {
	if value, ok := params[key].(int); ok {
		return value
	}
	return defaultValue
}

func getFloatParam(params map[string]interface{}, key string, defaultValue float64) float64 {
	if value, ok := params[key].(float64); ok {
		return value
	}
	return defaultValue
}

func getStringParam(params map[string]interface{}, key string, defaultValue string) string {
	if value, ok := params[key].(string); ok {
		return value
	}
	return defaultValue
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// cloneNRGBA copies src into a fresh zero-origin buffer of identical
// dimensions, normalizing any non-zero Min point.
func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[(y+b.Min.Y-src.Rect.Min.Y)*src.Stride+(b.Min.X-src.Rect.Min.X)*4:]
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()*4], srcRow[:b.Dx()*4])
	}
	return dst
}
