package pipeline

import (
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"
)

// toNRGBA normalizes any decoded image into a zero-origin NRGBA buffer,
// the only pixel layout the filters accept.
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba
	}

	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// nrgbaToGrayMat converts a pixel buffer into a single-channel OpenCV
// Mat using Rec.601 luma weights. The caller owns the returned Mat.
func nrgbaToGrayMat(img *image.NRGBA) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), fmt.Errorf("image is nil")
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return gocv.NewMat(), fmt.Errorf("image has invalid dimensions: %dx%d", w, h)
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			r := float64(img.Pix[i+0])
			g := float64(img.Pix[i+1])
			b := float64(img.Pix[i+2])
			luma := 0.299*r + 0.587*g + 0.114*b
			if luma > 255 {
				luma = 255
			}
			mat.SetUCharAt(y, x, uint8(luma))
		}
	}

	return mat, nil
}
