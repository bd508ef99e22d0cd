package gui

import (
	"image"

	"fyne.io/fyne/v2"
)

// Callbacks collects every handler the application wires into the GUI.
type Callbacks struct {
	OnImageAdd        func()
	OnRemoveImage     func(id string)
	OnClearImages     func()
	OnSaveResult      func()
	OnExportArchive   func()
	OnAlgorithmChange func(string)
	OnParameterChange func(string, interface{})
	OnGeneratePreview func()
	OnRunBatch        func()
}

type MainInterface struct {
	window        fyne.Window
	layoutManager *LayoutManager
	callbacks     Callbacks
}

func NewMainInterface(window fyne.Window, callbacks Callbacks) *MainInterface {
	gui := &MainInterface{
		window:    window,
		callbacks: callbacks,
	}

	gui.layoutManager = NewLayoutManager(callbacks)

	return gui
}

func (gui *MainInterface) Initialize() {
	gui.layoutManager.Initialize()
}

func (gui *MainInterface) GetMainContainer() *fyne.Container {
	return gui.layoutManager.GetMainContainer()
}

func (gui *MainInterface) SetOriginalImage(img image.Image) {
	gui.layoutManager.SetOriginalImage(img)
}

func (gui *MainInterface) SetPreviewImage(img image.Image) {
	gui.layoutManager.SetPreviewImage(img)
}

func (gui *MainInterface) UpdateFileList(items []FileListItem) {
	gui.layoutManager.UpdateFileList(items)
}

func (gui *MainInterface) UpdateParameterPanel(algorithm string, params map[string]interface{}) {
	gui.layoutManager.UpdateParameterPanel(algorithm, params)
}

func (gui *MainInterface) UpdateStatus(status string) {
	gui.layoutManager.UpdateStatus(status)
}

func (gui *MainInterface) UpdateProgress(progress float64) {
	gui.layoutManager.UpdateProgress(progress)
}

func (gui *MainInterface) UpdateMetrics(psnr, ssim float64) {
	gui.layoutManager.UpdateMetrics(psnr, ssim)
}
