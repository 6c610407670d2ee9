// Package track provides the Track domain entity.
package track

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Track represents a local audio file.
// Duration is only known for files that went through the metadata probe.
type Track struct {
	Path     string        // Absolute file path
	Name     string        // Base name shown to the user
	Duration time.Duration // Probed duration (zero if never probed)
}

// New creates a track for the given path.
func New(path string, duration time.Duration) Track {
	return Track{
		Path:     path,
		Name:     filepath.Base(path),
		Duration: duration,
	}
}

// Source represents how a track ended up in the queue.
type Source string

const (
	SourceSelection Source = "SELECTION" // Picked by the user in the file chooser
	SourceDirectory Source = "DIRECTORY" // Sibling found by the directory scan
	SourceHistory   Source = "HISTORY"   // Re-queued from playback history
)

// QueuedTrack represents a track in the playback queue.
// The same path may be queued more than once; ID tells the entries apart.
type QueuedTrack struct {
	ID      string    // Entry UUID
	Track   Track     // Track info
	Source  Source    // How the entry was queued
	AddedAt time.Time // Time when added to queue
}

// NewQueued wraps a track into a new queue entry.
func NewQueued(t Track, source Source) QueuedTrack {
	return QueuedTrack{
		ID:      uuid.New().String(),
		Track:   t,
		Source:  source,
		AddedAt: time.Now(),
	}
}

// HasExtension reports whether the track's path ends in one of the given extensions.
// The comparison is case-insensitive; extensions include the leading dot.
func (t *Track) HasExtension(extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(t.Path))
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
