package filter

import (
	"fmt"
	"image"
)

// BoxBlurInto writes into dst a copy of src where every interior pixel's
// R/G/B is the unweighted mean of the (2r+1)x(2r+1) window around it.
// Alpha is carried over unchanged.
//
// Pixels closer than radius to any border are copied verbatim from src:
// the loop bounds are [radius, dimension-radius), so a border strip of
// width radius is never blurred. This matches the historical behavior of
// the tool and every fixture built against it; do not "fix" the bounds.
//
// The cost is O(width * height * radius^2). Callers keep radius small
// (the UI caps it at 5), so no running-sum optimization is attempted.
//
// Both buffers must have zero-origin bounds.
func BoxBlurInto(dst, src *image.NRGBA, radius int) error {
	if src == nil || dst == nil {
		return fmt.Errorf("nil buffer")
	}
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if dst.Bounds().Dx() != w || dst.Bounds().Dy() != h {
		return fmt.Errorf("buffer size mismatch: src=%dx%d, dst=%dx%d",
			w, h, dst.Bounds().Dx(), dst.Bounds().Dy())
	}

	// Border pixels (and everything, before the interior pass) start as
	// a straight copy of the source.
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w*4], src.Pix[y*src.Stride:y*src.Stride+w*4])
	}

	if radius <= 0 {
		return nil
	}

	window := 2*radius + 1
	count := window * window

	for y := radius; y < h-radius; y++ {
		for x := radius; x < w-radius; x++ {
			var sumR, sumG, sumB int
			for dy := -radius; dy <= radius; dy++ {
				row := (y + dy) * src.Stride
				for dx := -radius; dx <= radius; dx++ {
					i := row + (x+dx)*4
					sumR += int(src.Pix[i+0])
					sumG += int(src.Pix[i+1])
					sumB += int(src.Pix[i+2])
				}
			}
			i := y*dst.Stride + x*4
			dst.Pix[i+0] = uint8(sumR / count)
			dst.Pix[i+1] = uint8(sumG / count)
			dst.Pix[i+2] = uint8(sumB / count)
			// Alpha already copied from source.
		}
	}

	return nil
}

// BoxBlur is the allocating convenience form of BoxBlurInto.
func BoxBlur(src *image.NRGBA, radius int) *image.NRGBA {
	normalized := src
	if src.Bounds().Min != (image.Point{}) {
		normalized = cloneNRGBA(src)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, normalized.Bounds().Dx(), normalized.Bounds().Dy()))
	// Dimensions match by construction, the error path is unreachable.
	_ = BoxBlurInto(dst, normalized, radius)
	return dst
}
