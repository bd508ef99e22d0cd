package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"unsharp-annihilator/gui"
)

const (
	previewMaxWidth  = 1024
	previewMaxHeight = 1024
	previewDebounce  = 250 * time.Millisecond
)

func (annihilator *AnnihilatorApp) handleImageAdd() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			annihilator.showError("File Load Error", err)
			return
		}
		if reader == nil {
			return
		}

		// Use fyne.Do for thread safety in v2.6+
		fyne.Do(func() {
			annihilator.mainGUI.UpdateStatus("Loading image...")
		})

		go func() {
			// Read all data before closing
			data, readErr := io.ReadAll(reader)
			displayName := reader.URI().Name()
			reader.Close()

			if readErr != nil {
				fyne.Do(func() {
					annihilator.showError("Image Read Error", readErr)
					annihilator.mainGUI.UpdateStatus("Ready")
				})
				return
			}

			added, addErr := annihilator.pipeline.AddImage(displayName, data)

			fyne.Do(func() {
				if addErr != nil {
					annihilator.showError("Image Load Error", addErr)
					annihilator.mainGUI.UpdateStatus("Ready")
					return
				}

				annihilator.refreshFileList()
				annihilator.mainGUI.SetOriginalImage(added.Buffer)
				annihilator.mainGUI.UpdateStatus(fmt.Sprintf("Added %s to batch", added.DisplayName))
			})

			annihilator.schedulePreview()
		}()
	}, annihilator.window)
}

func (annihilator *AnnihilatorApp) handleRemoveImage(id string) {
	if !annihilator.pipeline.RemoveImage(id) {
		return
	}

	fyne.Do(func() {
		annihilator.refreshFileList()
		annihilator.mainGUI.UpdateStatus("Image removed from batch")
	})
}

func (annihilator *AnnihilatorApp) handleClearImages() {
	annihilator.pipeline.Clear()

	annihilator.previewMu.Lock()
	annihilator.lastPreview = nil
	annihilator.previewMu.Unlock()

	fyne.Do(func() {
		annihilator.refreshFileList()
		annihilator.mainGUI.SetOriginalImage(nil)
		annihilator.mainGUI.SetPreviewImage(nil)
		annihilator.mainGUI.UpdateStatus("Batch cleared")
	})
}

func (annihilator *AnnihilatorApp) refreshFileList() {
	images := annihilator.pipeline.Images()
	items := make([]gui.FileListItem, 0, len(images))
	for _, img := range images {
		items = append(items, gui.FileListItem{
			ID:     img.ID,
			Name:   img.DisplayName,
			Width:  img.Width,
			Height: img.Height,
			Size:   int64(img.SizeBytes),
		})
	}
	annihilator.mainGUI.UpdateFileList(items)
}

func (annihilator *AnnihilatorApp) handleAlgorithmChange(algorithm string) {
	// Use fyne.Do for thread safety when updating GUI components
	fyne.Do(func() {
		annihilator.filterManager.SetCurrentAlgorithm(algorithm)
		params := annihilator.filterManager.GetParameters(algorithm)
		annihilator.mainGUI.UpdateParameterPanel(algorithm, params)
		annihilator.mainGUI.UpdateStatus(fmt.Sprintf("Switched to %s", algorithm))
	})

	annihilator.schedulePreview()
}

func (annihilator *AnnihilatorApp) handleParameterChange(name string, value interface{}) {
	currentAlgorithm := annihilator.filterManager.GetCurrentAlgorithm()

	// Validate parameter before setting
	tempParams := annihilator.filterManager.GetParameters(currentAlgorithm)
	tempParams[name] = value

	err := annihilator.filterManager.ValidateParameters(currentAlgorithm, tempParams)
	if err != nil {
		fyne.Do(func() {
			annihilator.showError("Parameter Error", err)
		})
		return
	}

	annihilator.filterManager.SetParameter(currentAlgorithm, name, value)
	annihilator.schedulePreview()
}

// schedulePreview coalesces slider drags into a single preview render.
func (annihilator *AnnihilatorApp) schedulePreview() {
	annihilator.previewMu.Lock()
	defer annihilator.previewMu.Unlock()

	if annihilator.previewTimer != nil {
		annihilator.previewTimer.Stop()
	}
	annihilator.previewTimer = time.AfterFunc(previewDebounce, func() {
		annihilator.generatePreview()
	})
}

func (annihilator *AnnihilatorApp) handleGeneratePreview() {
	annihilator.generatePreview()
}

func (annihilator *AnnihilatorApp) generatePreview() {
	images := annihilator.pipeline.Images()
	if len(images) == 0 {
		return
	}

	fyne.Do(func() {
		annihilator.mainGUI.UpdateStatus("Generating preview...")
	})

	go func() {
		currentAlgorithm := annihilator.filterManager.GetCurrentAlgorithm()
		params := annihilator.filterManager.GetParameters(currentAlgorithm)

		preview, err := annihilator.pipeline.GeneratePreview(currentAlgorithm, params, previewMaxWidth, previewMaxHeight)
		if err != nil {
			fyne.Do(func() {
				annihilator.showError("Preview Error", err)
				annihilator.mainGUI.UpdateStatus("Preview failed")
			})
			return
		}

		annihilator.previewMu.Lock()
		annihilator.lastPreview = preview
		annihilator.previewMu.Unlock()

		fyne.Do(func() {
			annihilator.mainGUI.SetPreviewImage(preview)
			annihilator.mainGUI.UpdateStatus("Preview ready")
		})

		// Metrics run in the background against the first batch image.
		go func() {
			original := images[0].Buffer
			psnr := annihilator.pipeline.CalculatePSNR(original, preview)
			ssim := annihilator.pipeline.CalculateSSIM(original, preview)

			fyne.Do(func() {
				annihilator.mainGUI.UpdateMetrics(psnr, ssim)
			})
		}()
	}()
}

func (annihilator *AnnihilatorApp) handleRunBatch() {
	if len(annihilator.pipeline.Images()) == 0 {
		annihilator.showError("Batch Error", fmt.Errorf("no images in the batch"))
		return
	}

	go func() {
		currentAlgorithm := annihilator.filterManager.GetCurrentAlgorithm()
		params := annihilator.filterManager.GetParameters(currentAlgorithm)

		summary, err := annihilator.pipeline.RunBatch(currentAlgorithm, params)

		fyne.Do(func() {
			if err != nil {
				annihilator.showError("Batch Error", err)
				annihilator.mainGUI.UpdateStatus("Batch failed")
				return
			}

			message := fmt.Sprintf("Processed %d of %d images in %s.",
				summary.Succeeded, summary.Total, summary.Duration.Round(time.Millisecond))
			if summary.Skipped > 0 {
				message += fmt.Sprintf("\nSkipped: %s", strings.Join(summary.SkippedFiles, ", "))
			}
			dialog.ShowInformation("Batch Complete", message, annihilator.window)
			annihilator.mainGUI.UpdateStatus(fmt.Sprintf("Batch %s", summary.State))
		})
	}()
}

func (annihilator *AnnihilatorApp) handleSavePreview() {
	annihilator.previewMu.Lock()
	preview := annihilator.lastPreview
	annihilator.previewMu.Unlock()

	if preview == nil {
		annihilator.showError("Save Error", fmt.Errorf("no preview to save"))
		return
	}

	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			annihilator.showError("File Save Error", err)
			return
		}
		if writer == nil {
			return
		}

		go func() {
			defer writer.Close()

			saveErr := annihilator.pipeline.SaveImage(writer, preview)
			fyne.Do(func() {
				if saveErr != nil {
					annihilator.showError("Image Save Error", saveErr)
				} else {
					annihilator.mainGUI.UpdateStatus("Preview saved")
				}
			})
		}()
	}, annihilator.window)
}

func (annihilator *AnnihilatorApp) handleExportArchive() {
	if len(annihilator.pipeline.Results()) == 0 {
		annihilator.showError("Export Error", fmt.Errorf("no batch results to export, run a batch first"))
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			annihilator.showError("File Save Error", err)
			return
		}
		if writer == nil {
			return
		}

		go func() {
			defer writer.Close()

			exportErr := annihilator.pipeline.ExportArchive(writer)
			fyne.Do(func() {
				if exportErr != nil {
					annihilator.showError("Export Error", exportErr)
				} else {
					annihilator.mainGUI.UpdateStatus("Archive exported")
				}
			})
		}()
	}, annihilator.window)
	saveDialog.SetFileName("sharpened_batch.zip")
	saveDialog.Show()
}

func (annihilator *AnnihilatorApp) showError(title string, err error) {
	annihilator.debugManager.LogError("UI", err)
	annihilator.log.Error("ui", err, map[string]interface{}{"dialog": title})

	// Use fyne.Do to ensure dialog is shown on main thread for v2.6+
	fyne.Do(func() {
		dialog.ShowError(err, annihilator.window)
	})
}
