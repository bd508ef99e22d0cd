package main

import (
	"image"
	stdlog "log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"unsharp-annihilator/debug"
	"unsharp-annihilator/filter"
	"unsharp-annihilator/gui"
	"unsharp-annihilator/internal/config"
	"unsharp-annihilator/internal/logger"
	"unsharp-annihilator/internal/shutdown"
	"unsharp-annihilator/pipeline"
)

const (
	AppName      = "Unsharp Annihilator"
	AppID        = "com.imageprocessing.unsharpannihilator"
	AppVersion   = "1.0.0"
	WindowWidth  = 1280
	WindowHeight = 840
)

type AnnihilatorApp struct {
	fyneApp       fyne.App
	window        fyne.Window
	mainGUI       *gui.MainInterface
	pipeline      *pipeline.BatchPipeline
	filterManager *filter.AlgorithmManager
	debugManager  *debug.Manager
	shutdownMgr   *shutdown.Manager
	log           logger.Logger
	cfg           config.Config

	previewMu    sync.Mutex
	previewTimer *time.Timer
	lastPreview  *image.NRGBA
}

func NewAnnihilatorApp() *AnnihilatorApp {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Printf("config: %v, using defaults", err)
	}

	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize profiling if enabled
	debug.Initialize()

	// Set debug component toggles from the environment
	debug.EnableImageDebug = cfg.ImageDebug
	debug.EnableFormatDebug = cfg.FormatDebug
	debug.EnableBatchDebug = cfg.BatchDebug
	debug.EnablePerformanceDebug = cfg.PerfDebug

	log := logger.NewConsoleLogger(cfg.LogLevel)

	// Initialize managers
	debugManager := debug.NewManager()
	filterManager := filter.NewAlgorithmManager()
	batchPipeline := pipeline.NewBatchPipeline(filterManager, log, debugManager)
	batchPipeline.SetJPEGQuality(cfg.JPEGQuality)

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Register(batchPipeline)

	annihilator := &AnnihilatorApp{
		fyneApp:       fyneApp,
		window:        window,
		pipeline:      batchPipeline,
		filterManager: filterManager,
		debugManager:  debugManager,
		shutdownMgr:   shutdownMgr,
		log:           log,
		cfg:           cfg,
	}

	// Initialize GUI
	mainGUI := gui.NewMainInterface(window, gui.Callbacks{
		OnImageAdd:        annihilator.handleImageAdd,
		OnRemoveImage:     annihilator.handleRemoveImage,
		OnClearImages:     annihilator.handleClearImages,
		OnSaveResult:      annihilator.handleSavePreview,
		OnExportArchive:   annihilator.handleExportArchive,
		OnAlgorithmChange: annihilator.handleAlgorithmChange,
		OnParameterChange: annihilator.handleParameterChange,
		OnGeneratePreview: annihilator.handleGeneratePreview,
		OnRunBatch:        annihilator.handleRunBatch,
	})
	annihilator.mainGUI = mainGUI

	// Connect pipeline to GUI updates
	batchPipeline.SetProgressCallback(mainGUI.UpdateProgress)
	batchPipeline.SetStatusCallback(mainGUI.UpdateStatus)

	// Initialize GUI components after everything is set up
	mainGUI.Initialize()

	return annihilator
}

func (annihilator *AnnihilatorApp) Run() {
	annihilator.setupMenus()
	annihilator.shutdownMgr.Listen()

	content := annihilator.mainGUI.GetMainContainer()
	annihilator.window.SetContent(content)

	annihilator.window.SetCloseIntercept(func() {
		annihilator.cleanup()
		annihilator.window.Close()
	})

	annihilator.window.ShowAndRun()
}

func (annihilator *AnnihilatorApp) cleanup() {
	annihilator.previewMu.Lock()
	if annihilator.previewTimer != nil {
		annihilator.previewTimer.Stop()
	}
	annihilator.previewMu.Unlock()

	annihilator.shutdownMgr.Shutdown()

	if annihilator.filterManager != nil {
		annihilator.filterManager.Cleanup()
	}

	if annihilator.debugManager != nil {
		annihilator.debugManager.Cleanup()
	}

	debug.Cleanup()
}
