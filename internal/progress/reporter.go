// Package progress reports batch tagging progress.
package progress

import (
	"sync"
	"time"

	"github.com/bstardust/tadpoles-exif-tagger/internal/logger"
)

// Reporter tracks and reports tagging progress
type Reporter struct {
	mu             sync.Mutex
	tagged         int
	skipped        int
	errors         int
	startTime      time.Time
	lastUpdateTime time.Time
	updateInterval time.Duration
}

// New creates a new progress reporter
func New() *Reporter {
	return &Reporter{
		updateInterval: 2 * time.Second,
	}
}

// Start initializes the progress reporter
func (r *Reporter) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tagged = 0
	r.skipped = 0
	r.errors = 0
	r.startTime = time.Now()
	r.lastUpdateTime = time.Now()
}

// Tagged marks a file as successfully tagged
func (r *Reporter) Tagged(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tagged++
	r.updateProgress()
}

// Skip marks a file as skipped
func (r *Reporter) Skip(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.skipped++
	r.updateProgress()
}

// Error marks a file as failed
func (r *Reporter) Error(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors++
	r.updateProgress()
}

// Counts returns the current tallies.
func (r *Reporter) Counts() (tagged, skipped, errors int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.tagged, r.skipped, r.errors
}

// Finish completes the progress reporting
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	duration := time.Since(r.startTime)

	logger.Info("Tagging complete: %d tagged, %d skipped, %d errors in %s",
		r.tagged, r.skipped, r.errors, duration.Round(time.Second))
}

// updateProgress emits a progress line, rate-limited to the update interval.
func (r *Reporter) updateProgress() {
	now := time.Now()
	if now.Sub(r.lastUpdateTime) < r.updateInterval {
		return
	}

	r.lastUpdateTime = now
	logger.Info("Progress: %d tagged, %d skipped, %d errors",
		r.tagged, r.skipped, r.errors)
}
