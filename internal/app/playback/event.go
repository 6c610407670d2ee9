package playback

import "github.com/osa030/dirplayer/internal/domain/track"

// EventType represents a playback event type.
type EventType int

const (
	EventTrackStarted   EventType = iota // Track loaded and playing
	EventTrackEnded                      // Track finished playing
	EventTrackSkipped                    // Track was skipped by the user
	EventStateChanged                    // Playback state changed (pause/resume)
	EventQueueReplaced                   // Queue rebuilt from a directory scan
	EventQueueEmpty                      // Advance found nothing left to play
	EventShuffleChanged                  // Shuffle mode toggled
	EventTimerArmed                      // Time display timer must be (re)scheduled
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventTrackEnded:
		return "track_ended"
	case EventTrackSkipped:
		return "track_skipped"
	case EventStateChanged:
		return "state_changed"
	case EventQueueReplaced:
		return "queue_replaced"
	case EventQueueEmpty:
		return "queue_empty"
	case EventShuffleChanged:
		return "shuffle_changed"
	case EventTimerArmed:
		return "timer_armed"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type    EventType
	Track   *track.QueuedTrack // Current track (nil for some events)
	State   State              // Current playback state
	TimerID uint64             // Set on EventTimerArmed
}
