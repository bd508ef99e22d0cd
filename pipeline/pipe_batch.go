package pipeline

import (
	"fmt"
	"time"

	"unsharp-annihilator/debug"
)

// BatchSummary is the single aggregate signal reported after a batch
// run attempted every input.
type BatchSummary struct {
	Total        int
	Succeeded    int
	Skipped      int
	SkippedFiles []string
	State        BatchState
	Duration     time.Duration
}

// RunBatch processes every image in the upload list, one at a time, in
// submission order. Settings are snapshotted at batch start: parameter
// changes made while the batch runs never affect it. Files that fail
// are recorded and omitted from the results, never aborting their
// siblings; there is no mid-run cancellation. The summary is returned
// only after every input has been attempted.
func (pipeline *BatchPipeline) RunBatch(algorithm string, params map[string]interface{}) (*BatchSummary, error) {
	if err := pipeline.algorithms.ValidateParameters(algorithm, params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	pipeline.mu.Lock()
	if pipeline.state == StateRunning {
		pipeline.mu.Unlock()
		return nil, fmt.Errorf("batch already running")
	}
	pipeline.state = StateRunning
	pipeline.results = nil

	items := make([]*ImageData, len(pipeline.images))
	copy(items, pipeline.images)

	// Snapshot-at-batch-start: the run owns its own copy of the
	// parameter map.
	snapshot := make(map[string]interface{}, len(params))
	for k, v := range params {
		snapshot[k] = v
	}
	pipeline.mu.Unlock()

	startTime := pipeline.debugManager.StartTiming("batch_run")
	defer pipeline.debugManager.EndTiming("batch_run", startTime)

	batchStart := time.Now()
	pipeline.debugManager.LogBatchStart(algorithm, len(items))
	pipeline.log.Info("BatchPipeline", "batch started", map[string]interface{}{
		"algorithm": algorithm,
		"inputs":    len(items),
	})

	pipeline.updateProgress(0.0)
	pipeline.updateStatus("Processing batch...")

	results := make([]*ProcessedResult, 0, len(items))
	var skippedFiles []string

	for i, item := range items {
		pipeline.updateStatus(fmt.Sprintf("Processing %s (%d/%d)...", item.DisplayName, i+1, len(items)))

		result, err := pipeline.safeProcessOne(item, algorithm, snapshot)
		if err != nil {
			skippedFiles = append(skippedFiles, item.DisplayName)
			pipeline.debugManager.LogBatchFileSkipped(item.DisplayName, err)
			pipeline.log.Warning("BatchPipeline", "file skipped", map[string]interface{}{
				"name":  item.DisplayName,
				"error": err.Error(),
			})
		} else {
			results = append(results, result)
		}

		pipeline.updateProgress(float64(i+1) / float64(len(items)))
	}

	finalState := StateCompleted
	if len(skippedFiles) > 0 {
		finalState = StateCompletedWithSkips
	}

	pipeline.mu.Lock()
	pipeline.results = results
	pipeline.state = finalState
	pipeline.mu.Unlock()

	summary := &BatchSummary{
		Total:        len(items),
		Succeeded:    len(results),
		Skipped:      len(skippedFiles),
		SkippedFiles: skippedFiles,
		State:        finalState,
		Duration:     time.Since(batchStart),
	}

	pipeline.debugManager.LogBatchComplete(&debug.BatchDebugInfo{
		Algorithm:  algorithm,
		InputCount: summary.Total,
		Succeeded:  summary.Succeeded,
		Skipped:    summary.Skipped,
		TotalTime:  summary.Duration,
	})
	pipeline.log.Info("BatchPipeline", "batch completed", map[string]interface{}{
		"state":     finalState.String(),
		"succeeded": summary.Succeeded,
		"skipped":   summary.Skipped,
		"duration":  summary.Duration.String(),
	})

	pipeline.updateProgress(1.0)
	pipeline.updateStatus(fmt.Sprintf("Batch complete: %d of %d succeeded", summary.Succeeded, summary.Total))

	return summary, nil
}
