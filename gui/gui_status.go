package gui

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	statusLabel  *widget.Label
	metricsLabel *widget.Label
	container    *fyne.Container
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		statusLabel:  widget.NewLabel("Ready"),
		metricsLabel: widget.NewLabel(""),
	}

	sb.container = container.NewBorder(
		nil, nil,
		sb.statusLabel,
		sb.metricsLabel,
	)

	return sb
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// SetMetrics shows quality metrics for the last preview. PSNR is infinite
// when the preview is identical to the original.
func (sb *StatusBar) SetMetrics(psnr, ssim float64) {
	psnrText := fmt.Sprintf("%.2f dB", psnr)
	if math.IsInf(psnr, 1) {
		psnrText = "identical"
	}
	sb.metricsLabel.SetText(fmt.Sprintf("PSNR: %s | SSIM: %.4f", psnrText, ssim))
}

func (sb *StatusBar) ClearMetrics() {
	sb.metricsLabel.SetText("")
}
