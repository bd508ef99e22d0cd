package filter

import (
	"fmt"
	"image"
	"math"
)

// UnsharpCore applies an unsharp mask: it amplifies the per-pixel
// difference between the image and a box-blurred copy of itself.
type UnsharpCore struct {
	settings UnsharpSettings
	pool     BufferPool

	// sharpenedPixels counts pixels that passed the magnitude gate
	// during the last Process call.
	sharpenedPixels int
}

// NewUnsharpCore creates an unsharp mask processor. pool may be nil.
func NewUnsharpCore(settings UnsharpSettings, pool BufferPool) *UnsharpCore {
	return &UnsharpCore{
		settings: settings,
		pool:     pool,
	}
}

// Process returns a sharpened copy of src. The output buffer always has
// identical dimensions to the input; only sample values change.
//
// For each interior pixel the per-channel delta against the blurred
// copy is computed, and when sqrt(dR^2+dG^2+dB^2) exceeds the threshold
// the channel is recomposited as orig + delta*strength/100, saturating
// to [0,255]. Pixels failing the gate, the radius-wide border (where
// the blur leaves delta at zero), and the alpha channel are untouched.
// A threshold of zero gates nothing; a strength of zero is an exact
// identity.
func (core *UnsharpCore) Process(src *image.NRGBA) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("input buffer is nil")
	}
	if src.Bounds().Min != (image.Point{}) {
		src = cloneNRGBA(src)
	}

	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	core.sharpenedPixels = 0

	out := cloneNRGBA(src)
	if core.settings.Strength <= 0 || core.settings.Radius <= 0 {
		// Zero strength or a 1x1 window both degenerate to identity.
		return out, nil
	}

	blurred := core.getScratch(w, h)
	defer core.putScratch(blurred)

	if err := BoxBlurInto(blurred, src, core.settings.Radius); err != nil {
		return nil, fmt.Errorf("box blur failed: %w", err)
	}

	strength := float64(core.settings.Strength) / 100.0
	threshold := core.settings.Threshold

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := y*src.Stride + x*4
			bi := y*blurred.Stride + x*4

			deltaR := float64(src.Pix[si+0]) - float64(blurred.Pix[bi+0])
			deltaG := float64(src.Pix[si+1]) - float64(blurred.Pix[bi+1])
			deltaB := float64(src.Pix[si+2]) - float64(blurred.Pix[bi+2])

			magnitude := math.Sqrt(deltaR*deltaR + deltaG*deltaG + deltaB*deltaB)
			if magnitude <= threshold {
				continue
			}
			core.sharpenedPixels++

			oi := y*out.Stride + x*4
			out.Pix[oi+0] = clampUint8(float64(src.Pix[si+0]) + deltaR*strength)
			out.Pix[oi+1] = clampUint8(float64(src.Pix[si+1]) + deltaG*strength)
			out.Pix[oi+2] = clampUint8(float64(src.Pix[si+2]) + deltaB*strength)
		}
	}

	return out, nil
}

// SharpenedPixels reports how many pixels passed the magnitude gate in
// the most recent Process call.
func (core *UnsharpCore) SharpenedPixels() int {
	return core.sharpenedPixels
}

func (core *UnsharpCore) getScratch(w, h int) *image.NRGBA {
	if core.pool != nil {
		return core.pool.Get(w, h)
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func (core *UnsharpCore) putScratch(img *image.NRGBA) {
	if core.pool != nil {
		core.pool.Put(img)
	}
}

// UnsharpMask is the one-shot form used by tests and the headless CLI.
func UnsharpMask(src *image.NRGBA, settings UnsharpSettings) (*image.NRGBA, error) {
	return NewUnsharpCore(settings, nil).Process(src)
}
