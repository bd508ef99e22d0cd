package filter

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func newCheckerNRGBA(w, h int, a, b uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := a
			if (x+y)%2 == 1 {
				v = b
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestUnsharpStrengthZeroIsIdentity(t *testing.T) {
	src := newCheckerNRGBA(8, 8, 40, 220)

	out, err := UnsharpMask(src, UnsharpSettings{Strength: 0, Radius: 2, Threshold: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatal("strength 0 must reproduce the input exactly")
	}
}

func TestUnsharpRadiusZeroIsIdentity(t *testing.T) {
	src := newCheckerNRGBA(8, 8, 40, 220)

	out, err := UnsharpMask(src, UnsharpSettings{Strength: 80, Radius: 0, Threshold: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatal("radius 0 must reproduce the input exactly")
	}
}

func TestUnsharpUniformGrayIsNoOp(t *testing.T) {
	src := newUniformNRGBA(10, 10, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	out, err := UnsharpMask(src, UnsharpSettings{Strength: 80, Radius: 2, Threshold: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatal("a uniform image has zero deltas everywhere and must pass through unchanged")
	}
}

func TestUnsharpBorderUntouched(t *testing.T) {
	src := newCheckerNRGBA(12, 12, 60, 200)
	radius := 2

	out, err := UnsharpMask(src, UnsharpSettings{Strength: 100, Radius: radius, Threshold: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			interior := x >= radius && x < 12-radius && y >= radius && y < 12-radius
			if interior {
				continue
			}
			if got, want := pixelAt(out, x, y), pixelAt(src, x, y); got != want {
				t.Errorf("border pixel (%d,%d) changed: got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestUnsharpClampsToByteRange(t *testing.T) {
	// A lone white pixel on black, full strength: the white center would
	// overshoot 255 and its dark neighbors would undershoot 0 without
	// saturation.
	src := newUniformNRGBA(5, 5, color.NRGBA{A: 255})
	src.SetNRGBA(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out, err := UnsharpMask(src, UnsharpSettings{Strength: 100, Radius: 1, Threshold: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	center := pixelAt(out, 2, 2)
	if center.R != 255 || center.G != 255 || center.B != 255 {
		t.Errorf("center = %v, want full white (clamped at 255)", center)
	}

	// (1,1) is interior for radius 1 and its window contains the white
	// pixel, so its delta is negative; clamping keeps it at 0.
	neighbor := pixelAt(out, 1, 1)
	if neighbor.R != 0 || neighbor.G != 0 || neighbor.B != 0 {
		t.Errorf("neighbor = %v, want black (clamped at 0)", neighbor)
	}
}

func TestUnsharpThresholdGatesLowContrast(t *testing.T) {
	// Deltas of a 100/110 checker stay well under a magnitude of 50, so
	// the gate suppresses every pixel.
	src := newCheckerNRGBA(8, 8, 100, 110)

	out, err := UnsharpMask(src, UnsharpSettings{Strength: 100, Radius: 1, Threshold: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatal("all deltas are below the threshold, output must equal input")
	}
}

func TestUnsharpNotIdempotent(t *testing.T) {
	src := newCheckerNRGBA(10, 10, 100, 150)
	settings := UnsharpSettings{Strength: 50, Radius: 1, Threshold: 0}

	once, err := UnsharpMask(src, settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := UnsharpMask(once, settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bytes.Equal(once.Pix, twice.Pix) {
		t.Fatal("applying the mask twice must keep amplifying contrast")
	}
}

func TestUnsharpPreservesAlpha(t *testing.T) {
	src := newCheckerNRGBA(8, 8, 30, 230)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			i := y*src.Stride + x*4
			src.Pix[i+3] = uint8(40 + x*10 + y)
		}
	}

	out, err := UnsharpMask(src, UnsharpSettings{Strength: 100, Radius: 1, Threshold: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			i := y*src.Stride + x*4
			if out.Pix[i+3] != src.Pix[i+3] {
				t.Fatalf("alpha at (%d,%d) changed from %d to %d", x, y, src.Pix[i+3], out.Pix[i+3])
			}
		}
	}
}

func TestUnsharpOutputDimensionsMatchInput(t *testing.T) {
	src := newCheckerNRGBA(13, 7, 0, 255)

	out, err := UnsharpMask(src, UnsharpSettings{Strength: 70, Radius: 3, Threshold: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Bounds().Dx() != 13 || out.Bounds().Dy() != 7 {
		t.Fatalf("output bounds = %v, want 13x7", out.Bounds())
	}
}

func TestUnsharpNormalizesSubImageOrigin(t *testing.T) {
	big := newCheckerNRGBA(16, 16, 50, 180)
	sub := big.SubImage(image.Rect(4, 4, 12, 12)).(*image.NRGBA)

	out, err := UnsharpMask(sub, UnsharpSettings{Strength: 60, Radius: 1, Threshold: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Bounds().Min != (image.Point{}) {
		t.Errorf("output origin = %v, want (0,0)", out.Bounds().Min)
	}
	if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 8 {
		t.Fatalf("output bounds = %v, want 8x8", out.Bounds())
	}
}

func TestUnsharpSharpenedPixelCount(t *testing.T) {
	src := newUniformNRGBA(10, 10, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	core := NewUnsharpCore(UnsharpSettings{Strength: 80, Radius: 2, Threshold: 0}, nil)
	if _, err := core.Process(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := core.SharpenedPixels(); got != 0 {
		t.Errorf("uniform image sharpened %d pixels, want 0", got)
	}

	src.SetNRGBA(5, 5, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if _, err := core.Process(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := core.SharpenedPixels(); got == 0 {
		t.Error("an edge should gate at least one pixel through")
	}
}
