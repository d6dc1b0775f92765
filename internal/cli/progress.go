package cli

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage.
const percentMultiplier = 100

// exportProgress tracks pages and organizations written by export. It is
// safe for concurrent use by the page fetchers.
type exportProgress struct {
	mu sync.RWMutex

	totalItems     int
	totalPages     int
	processedItems int
	processedPages int
	startTime      time.Time
}

func newExportProgress(totalItems, totalPages int) *exportProgress {
	return &exportProgress{
		totalItems: totalItems,
		totalPages: totalPages,
		startTime:  time.Now(),
	}
}

// addPage records one fetched page of n organizations.
func (p *exportProgress) addPage(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processedItems += n
	p.processedPages++
}

// percentComplete returns the share of pages fetched (0-100).
func (p *exportProgress) percentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.totalPages == 0 {
		return percentMultiplier
	}
	return float64(p.processedPages) / float64(p.totalPages) * percentMultiplier
}

// snapshot returns the fetched pages and items so far.
func (p *exportProgress) snapshot() (int, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.processedPages, p.processedItems
}

// itemsPerSecond is the fetch rate since the export started.
func (p *exportProgress) itemsPerSecond() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	elapsed := time.Since(p.startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(p.processedItems) / elapsed
}
