// Package journal tracks which outputs a batch run has already written, so an
// interrupted run can resume without re-tagging.
package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bstardust/tadpoles-exif-tagger/internal/logger"
)

// Journal records tagged outputs for resumability.
type Journal struct {
	mu      sync.Mutex
	path    string
	Entries map[string]Entry `json:"entries"`
}

// Entry represents one tagged output file.
type Entry struct {
	Path      string    `json:"path"`
	Tagged    bool      `json:"tagged"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a journal at path, defaulting to a dotfile in the user's home
// directory.
func New(path string) *Journal {
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".tadpoles-tagger-journal.json")
		} else {
			path = ".tadpoles-tagger-journal.json"
		}
	}

	return &Journal{
		path:    path,
		Entries: make(map[string]Entry),
	}
}

// Load reads the journal from disk. A missing file is not an error; the run
// simply starts fresh.
func (j *Journal) Load() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := os.Stat(j.path); os.IsNotExist(err) {
		logger.Debug("No journal at %s, starting fresh", j.path)
		return nil
	}

	data, err := os.ReadFile(j.path)
	if err != nil {
		return err
	}

	var loaded Journal
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if loaded.Entries != nil {
		j.Entries = loaded.Entries
	}

	logger.Info("Loaded journal with %d entries from %s", len(j.Entries), j.path)
	return nil
}

// Save writes the journal to disk.
func (j *Journal) Save() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(j.path, data, 0644)
}

// MarkTagged records that an output file was written.
func (j *Journal) MarkTagged(path string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.Entries[path] = Entry{
		Path:      path,
		Tagged:    true,
		Timestamp: time.Now(),
	}
}

// IsTagged reports whether an output file is already recorded.
func (j *Journal) IsTagged(path string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry, exists := j.Entries[path]
	return exists && entry.Tagged
}

// Stats returns the number of recorded entries.
func (j *Journal) Stats() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	return len(j.Entries)
}
