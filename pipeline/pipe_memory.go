package pipeline

import (
	"fmt"
	"image"
	"sync"

	"unsharp-annihilator/debug"
)

// BufferPool recycles scratch pixel buffers between filter runs so a
// batch over same-sized images allocates its blur scratch once. It
// implements filter.BufferPool.
type BufferPool struct {
	mu           sync.Mutex
	buffers      map[string][]*image.NRGBA
	debugManager *debug.Manager
}

func NewBufferPool(debugManager *debug.Manager) *BufferPool {
	return &BufferPool{
		buffers:      make(map[string][]*image.NRGBA),
		debugManager: debugManager,
	}
}

func (bp *BufferPool) Get(width, height int) *image.NRGBA {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	key := bp.poolKey(width, height)

	if pooled, exists := bp.buffers[key]; exists && len(pooled) > 0 {
		buf := pooled[len(pooled)-1]
		bp.buffers[key] = pooled[:len(pooled)-1]
		debug.LogMemory("BufferPool", fmt.Sprintf("Reused %s buffer", key))
		return buf
	}

	debug.LogMemory("BufferPool", fmt.Sprintf("Allocated %s buffer", key))
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

func (bp *BufferPool) Put(img *image.NRGBA) {
	if img == nil {
		return
	}

	bp.mu.Lock()
	defer bp.mu.Unlock()

	key := bp.poolKey(img.Bounds().Dx(), img.Bounds().Dy())

	// Keep at most a handful per size; batches are sequential so one is
	// usually enough.
	if len(bp.buffers[key]) < 5 {
		bp.buffers[key] = append(bp.buffers[key], img)
		return
	}
}

func (bp *BufferPool) poolKey(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

func (bp *BufferPool) Cleanup() {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	count := 0
	for key, pooled := range bp.buffers {
		count += len(pooled)
		delete(bp.buffers, key)
	}

	debug.LogMemory("BufferPool", fmt.Sprintf("Released %d pooled buffers", count))
}
