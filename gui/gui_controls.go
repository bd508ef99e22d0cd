package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ControlsPanel handles algorithm selection, parameters, and batch actions
type ControlsPanel struct {
	container      *fyne.Container
	algorithmRadio *widget.RadioGroup
	parameterPanel *ParameterPanel
	previewButton  *widget.Button
	runButton      *widget.Button
	saveButton     *widget.Button
	exportButton   *widget.Button
	progressBar    *widget.ProgressBar

	callbacks Callbacks
}

func NewControlsPanel(callbacks Callbacks) *ControlsPanel {
	panel := &ControlsPanel{callbacks: callbacks}
	panel.setupControls()
	return panel
}

func (cp *ControlsPanel) setupControls() {
	algorithmLabel := widget.NewLabel("Algorithm")
	cp.algorithmRadio = widget.NewRadioGroup([]string{"Unsharp Mask", "Tone Filter"}, nil)

	cp.parameterPanel = NewParameterPanel(cp.callbacks.OnParameterChange)

	cp.previewButton = widget.NewButton("Generate Preview", func() {
		if cp.callbacks.OnGeneratePreview != nil {
			cp.callbacks.OnGeneratePreview()
		}
	})

	cp.runButton = widget.NewButton("Run Batch", func() {
		if cp.callbacks.OnRunBatch != nil {
			cp.callbacks.OnRunBatch()
		}
	})
	cp.runButton.Importance = widget.HighImportance

	cp.saveButton = widget.NewButton("Save Result...", func() {
		if cp.callbacks.OnSaveResult != nil {
			cp.callbacks.OnSaveResult()
		}
	})

	cp.exportButton = widget.NewButton("Export ZIP...", func() {
		if cp.callbacks.OnExportArchive != nil {
			cp.callbacks.OnExportArchive()
		}
	})

	cp.progressBar = widget.NewProgressBar()
	cp.progressBar.Hide()

	cp.container = container.NewVBox(
		algorithmLabel,
		cp.algorithmRadio,
		widget.NewSeparator(),
		cp.parameterPanel.GetContainer(),
		widget.NewSeparator(),
		cp.previewButton,
		cp.runButton,
		cp.progressBar,
		cp.saveButton,
		cp.exportButton,
	)
}

func (cp *ControlsPanel) GetContainer() *fyne.Container {
	return cp.container
}

func (cp *ControlsPanel) Initialize() {
	// Set callback and default selection after setup so the first
	// selection routes through the application handler.
	cp.algorithmRadio.OnChanged = cp.onAlgorithmSelected
	cp.algorithmRadio.SetSelected("Unsharp Mask")
}

func (cp *ControlsPanel) onAlgorithmSelected(algorithm string) {
	if cp.callbacks.OnAlgorithmChange != nil {
		cp.callbacks.OnAlgorithmChange(algorithm)
	}
}

func (cp *ControlsPanel) UpdateParameterPanel(algorithm string, params map[string]interface{}) {
	fyne.Do(func() {
		cp.parameterPanel.UpdateParameters(algorithm, params)
	})
}

func (cp *ControlsPanel) SetProgress(progress float64) {
	fyne.Do(func() {
		if progress > 0 && progress < 1 {
			cp.progressBar.Show()
			cp.progressBar.SetValue(progress)
		} else {
			cp.progressBar.Hide()
		}
	})
}
