package pipeline

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func testPattern(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			img.Pix[i+0] = uint8(x * 37)
			img.Pix[i+1] = uint8(y * 53)
			img.Pix[i+2] = uint8((x + y) * 11)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestEncodeImageRoundTrips(t *testing.T) {
	src := testPattern(20, 14)

	tests := []struct {
		format string
		decode func(*bytes.Reader) (image.Image, error)
	}{
		{"jpeg", func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) }},
		{"png", func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) }},
		{"bmp", func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) }},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := encodeImage(src, tt.format, DefaultJPEGQuality)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if len(data) == 0 {
				t.Fatal("encode produced no bytes")
			}

			decoded, err := tt.decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if decoded.Bounds().Dx() != 20 || decoded.Bounds().Dy() != 14 {
				t.Errorf("round-trip bounds = %v, want 20x14", decoded.Bounds())
			}
		})
	}
}

func TestEncodeImageJPEGAliases(t *testing.T) {
	src := testPattern(8, 8)

	a, err := encodeImage(src, "jpeg", 80)
	if err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	b, err := encodeImage(src, "jpg", 80)
	if err != nil {
		t.Fatalf("encode jpg: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("jpg and jpeg must hit the same encoder")
	}
}

func TestEncodeImageUnsupportedFormat(t *testing.T) {
	if _, err := encodeImage(testPattern(4, 4), "webp", 90); err == nil {
		t.Fatal("expected an error for an unsupported output format")
	}
}
