package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

type LayoutManager struct {
	mainContainer *fyne.Container
	imageDisplay  *ImageDisplay
	fileList      *FileListPanel
	controls      *ControlsPanel
	statusBar     *StatusBar
	callbacks     Callbacks
}

func NewLayoutManager(callbacks Callbacks) *LayoutManager {
	return &LayoutManager{callbacks: callbacks}
}

func (lm *LayoutManager) Initialize() {
	lm.imageDisplay = NewImageDisplay()
	lm.fileList = NewFileListPanel(lm.callbacks)
	lm.controls = NewControlsPanel(lm.callbacks)
	lm.statusBar = NewStatusBar()

	lm.createMainLayout()

	lm.controls.Initialize()
}

func (lm *LayoutManager) createMainLayout() {
	imageSplit := container.NewHSplit(
		lm.imageDisplay.GetOriginalContainer(),
		lm.imageDisplay.GetPreviewContainer(),
	)
	imageSplit.SetOffset(0.5)

	sidebar := container.NewBorder(
		nil,
		lm.controls.GetContainer(),
		nil, nil,
		lm.fileList.GetContainer(),
	)

	workspace := container.NewHSplit(sidebar, imageSplit)
	workspace.SetOffset(0.28)

	lm.mainContainer = container.NewBorder(
		nil,
		lm.statusBar.GetContainer(),
		nil, nil,
		workspace,
	)
}

func (lm *LayoutManager) GetMainContainer() *fyne.Container {
	return lm.mainContainer
}

func (lm *LayoutManager) SetOriginalImage(img image.Image) {
	lm.imageDisplay.SetOriginalImage(img)
}

func (lm *LayoutManager) SetPreviewImage(img image.Image) {
	lm.imageDisplay.SetPreviewImage(img)
}

func (lm *LayoutManager) UpdateFileList(items []FileListItem) {
	lm.fileList.SetItems(items)
}

func (lm *LayoutManager) UpdateParameterPanel(algorithm string, params map[string]interface{}) {
	lm.controls.UpdateParameterPanel(algorithm, params)
}

func (lm *LayoutManager) UpdateStatus(status string) {
	lm.statusBar.SetStatus(status)
}

func (lm *LayoutManager) UpdateProgress(progress float64) {
	lm.controls.SetProgress(progress)
}

func (lm *LayoutManager) UpdateMetrics(psnr, ssim float64) {
	lm.statusBar.SetMetrics(psnr, ssim)
}
