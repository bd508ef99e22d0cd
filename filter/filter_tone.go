package filter

import (
	"fmt"
	"image"
)

// Tone filter modes.
const (
	ToneGrayscale = "grayscale"
	ToneSepia     = "sepia"
)

// ToneCore recolors an image to grayscale or sepia. It shares the
// unsharp mask's buffer contract: same dimensions out, values only,
// alpha untouched.
type ToneCore struct {
	settings ToneSettings
}

func NewToneCore(settings ToneSettings) *ToneCore {
	return &ToneCore{settings: settings}
}

// Process returns a recolored copy of src. Intensity blends between the
// original (0.0) and the fully toned image (1.0).
func (core *ToneCore) Process(src *image.NRGBA) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("input buffer is nil")
	}
	if src.Bounds().Min != (image.Point{}) {
		src = cloneNRGBA(src)
	}

	intensity := core.settings.Intensity
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}

	out := cloneNRGBA(src)
	if intensity == 0 {
		return out, nil
	}

	w := src.Bounds().Dx()
	h := src.Bounds().Dy()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := y*src.Stride + x*4
			r := float64(src.Pix[si+0])
			g := float64(src.Pix[si+1])
			b := float64(src.Pix[si+2])

			var tr, tg, tb float64
			switch core.settings.Mode {
			case ToneSepia:
				tr = 0.393*r + 0.769*g + 0.189*b
				tg = 0.349*r + 0.686*g + 0.168*b
				tb = 0.272*r + 0.534*g + 0.131*b
			default:
				// Rec.601 luma weights.
				luma := 0.299*r + 0.587*g + 0.114*b
				tr, tg, tb = luma, luma, luma
			}

			oi := y*out.Stride + x*4
			out.Pix[oi+0] = clampUint8(r + (tr-r)*intensity)
			out.Pix[oi+1] = clampUint8(g + (tg-g)*intensity)
			out.Pix[oi+2] = clampUint8(b + (tb-b)*intensity)
		}
	}

	return out, nil
}

// Tone is the one-shot form used by tests and the headless CLI.
func Tone(src *image.NRGBA, settings ToneSettings) (*image.NRGBA, error) {
	return NewToneCore(settings).Process(src)
}
