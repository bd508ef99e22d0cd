package debug

import (
	"fmt"
	"time"
)

// BatchDebugInfo summarizes a completed batch run.
type BatchDebugInfo struct {
	Algorithm  string
	InputCount int
	Succeeded  int
	Skipped    int
	TotalTime  time.Duration
}

func (dm *Manager) LogBatchStart(algorithm string, inputCount int) {
	if !EnableBatchDebug {
		return
	}
	LogInfo("BatchDebug", fmt.Sprintf("Batch started - Algorithm: %s, Inputs: %d", algorithm, inputCount))
}

func (dm *Manager) LogBatchFileSkipped(displayName string, err error) {
	if !EnableBatchDebug {
		return
	}
	LogWarning("BatchDebug", fmt.Sprintf("File skipped - %s: %v", displayName, err))
}

func (dm *Manager) LogBatchComplete(info *BatchDebugInfo) {
	if !EnableBatchDebug {
		return
	}

	report := fmt.Sprintf(`Batch Complete Report:
- Algorithm: %s
- Inputs: %d
- Succeeded: %d
- Skipped: %d
- Total Time: %v`,
		info.Algorithm,
		info.InputCount,
		info.Succeeded,
		info.Skipped,
		info.TotalTime)

	LogInfo("BatchDebug", report)
}
