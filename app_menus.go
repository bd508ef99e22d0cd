package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

func (annihilator *AnnihilatorApp) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Add Images...", func() {
			annihilator.handleImageAdd()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Preview...", func() {
			annihilator.handleSavePreview()
		}),
		fyne.NewMenuItem("Export Batch ZIP...", func() {
			annihilator.handleExportArchive()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			annihilator.cleanup()
			annihilator.fyneApp.Quit()
		}),
	)

	batchMenu := fyne.NewMenu("Batch",
		fyne.NewMenuItem("Run Batch", func() {
			annihilator.handleRunBatch()
		}),
		fyne.NewMenuItem("Clear Batch", func() {
			annihilator.handleClearImages()
		}),
	)

	debugMenu := fyne.NewMenu("Debug",
		fyne.NewMenuItem("Memory Stats", func() {
			stats := annihilator.debugManager.GetMemoryStats()
			dialog.ShowInformation("Memory Statistics", stats, annihilator.window)
		}),
		fyne.NewMenuItem("Performance Report", func() {
			report := annihilator.debugManager.GetPerformanceReport()
			dialog.ShowInformation("Performance Report", report, annihilator.window)
		}),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, batchMenu, debugMenu)
	annihilator.window.SetMainMenu(mainMenu)
}
