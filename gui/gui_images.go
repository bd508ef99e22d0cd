package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type ImageDisplay struct {
	originalImage     *canvas.Image
	previewImage      *canvas.Image
	originalContainer *fyne.Container
	previewContainer  *fyne.Container
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createImageCanvases()
	display.createContainers()
	return display
}

func (id *ImageDisplay) createImageCanvases() {
	id.originalImage = &canvas.Image{
		FillMode: canvas.ImageFillContain,
	}
	id.originalImage.SetMinSize(fyne.NewSize(360, 360))

	id.previewImage = &canvas.Image{
		FillMode: canvas.ImageFillContain,
	}
	id.previewImage.SetMinSize(fyne.NewSize(360, 360))
}

func (id *ImageDisplay) createContainers() {
	id.originalContainer = container.NewBorder(
		widget.NewLabel("Original"),
		nil, nil, nil,
		id.originalImage,
	)

	id.previewContainer = container.NewBorder(
		widget.NewLabel("Preview"),
		nil, nil, nil,
		id.previewImage,
	)
}

func (id *ImageDisplay) GetOriginalContainer() *fyne.Container {
	return id.originalContainer
}

func (id *ImageDisplay) GetPreviewContainer() *fyne.Container {
	return id.previewContainer
}

func (id *ImageDisplay) SetOriginalImage(img image.Image) {
	id.originalImage.Image = img
	id.originalImage.Refresh()
}

func (id *ImageDisplay) SetPreviewImage(img image.Image) {
	id.previewImage.Image = img
	id.previewImage.Refresh()
}
