// Package playback provides the playback controller with integrated queue management.
package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota // Nothing loaded (queue exhausted or never started)
	StatePlaying              // Track is playing
	StatePaused               // Track is loaded but output is stopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Mode tells Advance why it was called.
type Mode int

const (
	ModeSkip Mode = iota // User pressed skip
	ModeAuto             // Track reached its end
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSkip:
		return "skip"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}
