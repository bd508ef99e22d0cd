package debug

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"
)

// maxTimingSamples bounds the per-operation history. A long batch
// session times thousands of image_process runs; only the recent
// window matters for the report.
const maxTimingSamples = 64

// Manager collects operation timings and runtime memory statistics for
// the Debug menu reports.
type Manager struct {
	mu               sync.RWMutex
	timings          map[string][]time.Duration
	runs             map[string]int
	memoryStats      runtime.MemStats
	lastMemoryUpdate time.Time
}

func NewManager() *Manager {
	return &Manager{
		timings: make(map[string][]time.Duration),
		runs:    make(map[string]int),
	}
}

func (dm *Manager) StartTiming(operation string) time.Time {
	return time.Now()
}

func (dm *Manager) EndTiming(operation string, startTime time.Time) {
	duration := time.Since(startTime)

	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.runs[operation]++
	samples := append(dm.timings[operation], duration)
	if len(samples) > maxTimingSamples {
		samples = samples[len(samples)-maxTimingSamples:]
	}
	dm.timings[operation] = samples

	LogPerformance(operation, duration)
}

func (dm *Manager) LogInfo(component string, message string) {
	log.Printf("[INFO] %s: %s", component, message)
}

func (dm *Manager) LogError(component string, err error) {
	log.Printf("[ERROR] %s: %v", component, err)
}

func (dm *Manager) LogWarning(component string, message string) {
	log.Printf("[WARN] %s: %s", component, message)
}

func (dm *Manager) GetMemoryStats() string {
	dm.updateMemoryStats()

	dm.mu.RLock()
	defer dm.mu.RUnlock()

	return fmt.Sprintf(`Runtime Memory:
- Heap In Use: %.2f MB
- Heap Allocated (cumulative): %.2f MB
- From OS: %.2f MB
- GC Cycles: %d
- Goroutines: %d

Pixel buffers are pooled per size class; pool churn shows up as heap
growth between GC cycles.`,
		float64(dm.memoryStats.HeapInuse)/1024/1024,
		float64(dm.memoryStats.TotalAlloc)/1024/1024,
		float64(dm.memoryStats.Sys)/1024/1024,
		dm.memoryStats.NumGC,
		runtime.NumGoroutine())
}

func (dm *Manager) GetPerformanceReport() string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	operations := make([]string, 0, len(dm.timings))
	for operation := range dm.timings {
		operations = append(operations, operation)
	}
	sort.Strings(operations)

	report := "Performance Report:\n"

	for _, operation := range operations {
		samples := dm.timings[operation]
		if len(samples) == 0 {
			continue
		}

		var total time.Duration
		min := samples[0]
		max := samples[0]

		for _, sample := range samples {
			total += sample
			if sample < min {
				min = sample
			}
			if sample > max {
				max = sample
			}
		}

		avg := total / time.Duration(len(samples))

		report += fmt.Sprintf("- %s: runs=%d (last %d sampled), avg=%v, min=%v, max=%v\n",
			operation, dm.runs[operation], len(samples), avg, min, max)
	}

	return report
}

func (dm *Manager) updateMemoryStats() {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	// Refresh at most once per second
	if time.Since(dm.lastMemoryUpdate) > time.Second {
		runtime.ReadMemStats(&dm.memoryStats)
		dm.lastMemoryUpdate = time.Now()
	}
}

func (dm *Manager) Cleanup() {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.timings = make(map[string][]time.Duration)
	dm.runs = make(map[string]int)
	LogInfo("Debug", "Timing history cleared")
}
