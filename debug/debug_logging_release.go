//go:build !matprofile
// +build !matprofile

package debug

import (
	"time"
)

var profilingEnabled = false

// The non-profiling build compiles the logging surface away entirely;
// zerolog carries the structured logs in both builds.

func Initialize() {}

func IsProfilingEnabled() bool {
	return false
}

func LogInfo(component string, message string) {}

func LogError(component string, message string) {}

func LogWarning(component string, message string) {}

func LogPerformance(operation string, duration time.Duration) {}

func LogMemory(component string, message string) {}

func Cleanup() {}
