package main

// This is the main entry point that simply imports and uses the modularized app components. The actual application logic is split across:
// - app_core.go: Core application structure and initialization
// - app_handlers.go: Event handlers for user interactions
// - app_menus.go: Menu setup and handlers

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"unsharp-annihilator/debug"
)

func main() {
	// Start profiling server if enabled
	if debug.IsProfilingEnabled() {
		go func() {
			log.Println("Starting profiling server on :6060")
			log.Println(http.ListenAndServe("localhost:6060", nil))
		}()
	}

	app := NewAnnihilatorApp()
	app.Run()
}
