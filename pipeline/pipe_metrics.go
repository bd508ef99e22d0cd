package pipeline

import (
	"image"
	"math"
	"time"

	"gocv.io/x/gocv"
)

// CalculatePSNR measures peak signal-to-noise between the original and
// processed buffers over their Rec.601 luma. Returns +Inf for a perfect
// match and 0 when either input is missing.
func (pipeline *BatchPipeline) CalculatePSNR(original, processed *image.NRGBA) float64 {
	if original == nil || processed == nil {
		return 0.0
	}

	startTime := pipeline.debugManager.StartTiming("psnr_calculation")
	defer pipeline.debugManager.EndTiming("psnr_calculation", startTime)

	calcStartTime := time.Now()

	origGray, err := nrgbaToGrayMat(original)
	if err != nil {
		return 0.0
	}
	defer origGray.Close()

	procGray, err := nrgbaToGrayMat(processed)
	if err != nil {
		return 0.0
	}
	defer procGray.Close()

	// Resize processed to match original if necessary (preview buffers
	// are downscaled).
	if origGray.Rows() != procGray.Rows() || origGray.Cols() != procGray.Cols() {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(procGray, &resized, image.Point{X: origGray.Cols(), Y: origGray.Rows()}, 0, 0, gocv.InterpolationLinear)
		resized.CopyTo(&procGray)
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(origGray, procGray, &diff)

	diffSquared := gocv.NewMat()
	defer diffSquared.Close()
	gocv.Multiply(diff, diff, &diffSquared)

	totalSum := 0.0
	totalPixels := float64(origGray.Rows() * origGray.Cols())
	for y := 0; y < diffSquared.Rows(); y++ {
		for x := 0; x < diffSquared.Cols(); x++ {
			totalSum += float64(diffSquared.GetUCharAt(y, x))
		}
	}
	mse := totalSum / totalPixels

	var psnr float64
	if mse == 0 {
		psnr = math.Inf(1)
	} else {
		maxPixelValue := 255.0
		psnr = 20.0 * math.Log10(maxPixelValue/math.Sqrt(mse))
	}

	pipeline.debugManager.LogImageMetrics(psnr, 0.0, time.Since(calcStartTime))

	return psnr
}

// CalculateSSIM returns a simplified structural-similarity score (the
// absolute luma correlation) between the original and processed
// buffers.
func (pipeline *BatchPipeline) CalculateSSIM(original, processed *image.NRGBA) float64 {
	if original == nil || processed == nil {
		return 0.0
	}

	startTime := pipeline.debugManager.StartTiming("ssim_calculation")
	defer pipeline.debugManager.EndTiming("ssim_calculation", startTime)

	calcStartTime := time.Now()

	origGray, err := nrgbaToGrayMat(original)
	if err != nil {
		return 0.0
	}
	defer origGray.Close()

	procGray, err := nrgbaToGrayMat(processed)
	if err != nil {
		return 0.0
	}
	defer procGray.Close()

	if origGray.Rows() != procGray.Rows() || origGray.Cols() != procGray.Cols() {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(procGray, &resized, image.Point{X: origGray.Cols(), Y: origGray.Rows()}, 0, 0, gocv.InterpolationLinear)
		resized.CopyTo(&procGray)
	}

	orig32 := gocv.NewMat()
	defer orig32.Close()
	proc32 := gocv.NewMat()
	defer proc32.Close()

	origGray.ConvertTo(&orig32, gocv.MatTypeCV32F)
	procGray.ConvertTo(&proc32, gocv.MatTypeCV32F)

	rows := orig32.Rows()
	cols := orig32.Cols()

	var sum1, sum2, sum1Sq, sum2Sq, sum12 float64
	totalPixels := float64(rows * cols)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			val1 := float64(orig32.GetFloatAt(y, x))
			val2 := float64(proc32.GetFloatAt(y, x))

			sum1 += val1
			sum2 += val2
			sum1Sq += val1 * val1
			sum2Sq += val2 * val2
			sum12 += val1 * val2
		}
	}

	mean1 := sum1 / totalPixels
	mean2 := sum2 / totalPixels

	numerator := sum12 - totalPixels*mean1*mean2
	denominator1 := sum1Sq - totalPixels*mean1*mean1
	denominator2 := sum2Sq - totalPixels*mean2*mean2

	var ssim float64
	if denominator1 <= 0 || denominator2 <= 0 {
		ssim = 0.0
	} else {
		correlation := numerator / math.Sqrt(denominator1*denominator2)
		ssim = math.Abs(correlation)
	}

	pipeline.debugManager.LogImageMetrics(0.0, ssim, time.Since(calcStartTime))

	return ssim
}
