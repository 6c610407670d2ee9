// Package queue provides the playback queue domain entity.
package queue

import (
	"time"

	"github.com/osa030/dirplayer/internal/domain/track"
)

// Queue is an ordered list of tracks waiting to be played.
// The head is always the next track, never the one currently playing.
// Queue is not safe for concurrent use.
type Queue struct {
	entries []track.QueuedTrack
}

// New creates a queue holding the given entries in order.
func New(entries ...track.QueuedTrack) *Queue {
	q := &Queue{}
	q.Replace(entries)
	return q
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Empty reports whether the queue has no entries.
func (q *Queue) Empty() bool {
	return len(q.entries) == 0
}

// Replace drops every entry and installs the given ones.
func (q *Queue) Replace(entries []track.QueuedTrack) {
	q.entries = make([]track.QueuedTrack, len(entries))
	copy(q.entries, entries)
}

// Append adds an entry to the end of the queue.
func (q *Queue) Append(qt track.QueuedTrack) {
	q.entries = append(q.entries, qt)
}

// Insert puts an entry at position i. Positions past the end append.
func (q *Queue) Insert(i int, qt track.QueuedTrack) {
	if i < 0 {
		i = 0
	}
	if i >= len(q.entries) {
		q.entries = append(q.entries, qt)
		return
	}
	q.entries = append(q.entries, track.QueuedTrack{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = qt
}

// PushFront makes the entry the next one to play.
func (q *Queue) PushFront(qt track.QueuedTrack) {
	q.Insert(0, qt)
}

// PopFront removes and returns the head.
func (q *Queue) PopFront() (track.QueuedTrack, bool) {
	if len(q.entries) == 0 {
		return track.QueuedTrack{}, false
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	return head, true
}

// At returns the entry at position i without removing it.
func (q *Queue) At(i int) (track.QueuedTrack, bool) {
	if i < 0 || i >= len(q.entries) {
		return track.QueuedTrack{}, false
	}
	return q.entries[i], true
}

// RemoveFirst removes the first entry with the given path.
func (q *Queue) RemoveFirst(path string) (track.QueuedTrack, bool) {
	for i, qt := range q.entries {
		if qt.Track.Path == path {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return qt, true
		}
	}
	return track.QueuedTrack{}, false
}

// Contains reports whether any entry has the given path.
func (q *Queue) Contains(path string) bool {
	for _, qt := range q.entries {
		if qt.Track.Path == path {
			return true
		}
	}
	return false
}

// Shuffle reorders the entries in place.
// intn must return a uniform value in [0, n).
func (q *Queue) Shuffle(intn func(n int) int) {
	for i := len(q.entries) - 1; i > 0; i-- {
		j := intn(i + 1)
		q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
	}
}

// Entries returns a copy of the queued entries.
func (q *Queue) Entries() []track.QueuedTrack {
	result := make([]track.QueuedTrack, len(q.entries))
	copy(result, q.entries)
	return result
}

// Paths returns the file paths in queue order.
func (q *Queue) Paths() []string {
	paths := make([]string, len(q.entries))
	for i, qt := range q.entries {
		paths[i] = qt.Track.Path
	}
	return paths
}

// Names returns the display names in queue order.
func (q *Queue) Names() []string {
	names := make([]string, len(q.entries))
	for i, qt := range q.entries {
		names[i] = qt.Track.Name
	}
	return names
}

// TotalDuration returns the sum of the known durations.
func (q *Queue) TotalDuration() time.Duration {
	var total time.Duration
	for _, qt := range q.entries {
		total += qt.Track.Duration
	}
	return total
}
