package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type ParameterPanel struct {
	container           *fyne.Container
	parametersContainer *fyne.Container

	onParameterChange func(string, interface{})

	currentWidgets map[string]fyne.CanvasObject
}

func NewParameterPanel(onParameterChange func(string, interface{})) *ParameterPanel {
	panel := &ParameterPanel{
		onParameterChange: onParameterChange,
		currentWidgets:    make(map[string]fyne.CanvasObject),
	}

	panel.setupPanel()
	return panel
}

func (panel *ParameterPanel) setupPanel() {
	parametersLabel := widget.NewLabel("Parameters")
	panel.parametersContainer = container.NewVBox()

	panel.container = container.NewVBox(
		parametersLabel,
		panel.parametersContainer,
	)
}

func (panel *ParameterPanel) UpdateParameters(algorithm string, params map[string]interface{}) {
	panel.parametersContainer.RemoveAll()
	panel.currentWidgets = make(map[string]fyne.CanvasObject)

	switch algorithm {
	case "Unsharp Mask":
		panel.createUnsharpParameters(params)
	case "Tone Filter":
		panel.createToneParameters(params)
	}

	panel.parametersContainer.Refresh()
}

func (panel *ParameterPanel) createUnsharpParameters(params map[string]interface{}) {
	// Strength (0-100 percent)
	strength := panel.getIntParam(params, "strength", 50)
	strengthSlider := widget.NewSlider(0, 100)
	strengthSlider.SetValue(float64(strength))
	strengthLabel := widget.NewLabel("Strength: " + strconv.Itoa(strength) + "%")
	strengthSlider.OnChanged = func(value float64) {
		intValue := int(value)
		strengthLabel.SetText("Strength: " + strconv.Itoa(intValue) + "%")
		panel.onParameterChange("strength", intValue)
	}
	panel.addParameterWithLabel("Strength", strengthSlider, strengthLabel)

	// Blur radius (0-5 pixels)
	radius := panel.getIntParam(params, "radius", 2)
	radiusSlider := widget.NewSlider(0, 5)
	radiusSlider.Step = 1
	radiusSlider.SetValue(float64(radius))
	radiusLabel := widget.NewLabel("Radius: " + strconv.Itoa(radius) + " px")
	radiusSlider.OnChanged = func(value float64) {
		intValue := int(value)
		radiusLabel.SetText("Radius: " + strconv.Itoa(intValue) + " px")
		panel.onParameterChange("radius", intValue)
	}
	panel.addParameterWithLabel("Blur Radius", radiusSlider, radiusLabel)

	// Threshold (0.0-50.0)
	threshold := panel.getFloatParam(params, "threshold", 3.0)
	thresholdSlider := widget.NewSlider(0.0, 50.0)
	thresholdSlider.SetValue(threshold)
	thresholdLabel := widget.NewLabel("Threshold: " + strconv.FormatFloat(threshold, 'f', 1, 64))
	thresholdSlider.OnChanged = func(value float64) {
		thresholdLabel.SetText("Threshold: " + strconv.FormatFloat(value, 'f', 1, 64))
		panel.onParameterChange("threshold", value)
	}
	panel.addParameterWithLabel("Threshold", thresholdSlider, thresholdLabel)
}

func (panel *ParameterPanel) createToneParameters(params map[string]interface{}) {
	// Tone mode
	modeSelect := widget.NewSelect([]string{"grayscale", "sepia"}, func(value string) {
		panel.onParameterChange("mode", value)
	})
	if mode, ok := params["mode"].(string); ok {
		modeSelect.SetSelected(mode)
	} else {
		modeSelect.SetSelected("grayscale")
	}
	panel.addParameter("Mode", modeSelect)

	// Intensity (0.0-1.0)
	intensity := panel.getFloatParam(params, "intensity", 1.0)
	intensitySlider := widget.NewSlider(0.0, 1.0)
	intensitySlider.SetValue(intensity)
	intensityLabel := widget.NewLabel("Intensity: " + strconv.FormatFloat(intensity, 'f', 2, 64))
	intensitySlider.OnChanged = func(value float64) {
		intensityLabel.SetText("Intensity: " + strconv.FormatFloat(value, 'f', 2, 64))
		panel.onParameterChange("intensity", value)
	}
	panel.addParameterWithLabel("Intensity", intensitySlider, intensityLabel)
}

func (panel *ParameterPanel) addParameter(label string, obj fyne.CanvasObject) {
	paramLabel := widget.NewLabel(label)
	paramContainer := container.NewVBox(paramLabel, obj)
	panel.parametersContainer.Add(paramContainer)
	panel.currentWidgets[label] = obj
}

func (panel *ParameterPanel) addParameterWithLabel(label string, slider *widget.Slider, valueLabel *widget.Label) {
	paramLabel := widget.NewLabel(label)
	paramContainer := container.NewVBox(paramLabel, valueLabel, slider)
	panel.parametersContainer.Add(paramContainer)
	panel.currentWidgets[label] = slider
}

func (panel *ParameterPanel) getIntParam(params map[string]interface{}, key string, defaultValue int) int {
	if value, ok := params[key]; ok {
		switch v := value.(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
	}
	return defaultValue
}

func (panel *ParameterPanel) getFloatParam(params map[string]interface{}, key string, defaultValue float64) float64 {
	if value, ok := params[key]; ok {
		switch v := value.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return defaultValue
}

func (panel *ParameterPanel) GetContainer() *fyne.Container {
	return panel.container
}
