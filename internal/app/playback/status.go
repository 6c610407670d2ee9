package playback

import (
	"fmt"
	"time"

	"github.com/osa030/dirplayer/internal/app/filter"
)

// Control labels for the play/pause button.
const (
	LabelPlay  = "Play"
	LabelPause = "Pause"
)

// Status is the plain-data snapshot the UI renders.
type Status struct {
	State    State
	Elapsed  time.Duration
	FileName string // Base name of the displayed file, empty when nothing is loaded
	Label    string // Play/pause control label
	Shuffle  bool
	Queue    []string // Display names of the queued tracks, next first
}

// ElapsedText returns the elapsed time as minutes:seconds.
func (s Status) ElapsedText() string {
	return FormatElapsed(s.Elapsed)
}

// Playing reports whether audio is currently being output.
func (s Status) Playing() bool {
	return s.State == StatePlaying
}

// FormatElapsed formats a position as minutes:seconds with zero-padded seconds.
// Negative positions are shown as 0:00.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Messages holds the user-facing texts, keyed by the codes used across the app.
type Messages struct {
	NoSelection     string
	ZeroDuration    string
	UnsupportedFile string
	DurationLimit   string
	QueueExhausted  string
	NoHistory       string
	DefaultError    string
}

// DefaultMessages returns the built-in texts.
func DefaultMessages() Messages {
	return Messages{
		NoSelection:     "No file selected.",
		ZeroDuration:    "Selected file has a duration of 0.",
		UnsupportedFile: "Selected file is not a supported audio file.",
		DurationLimit:   "Selected file is outside the allowed duration range.",
		QueueExhausted:  "No more files to play.",
		NoHistory:       "No previous file.",
		DefaultError:    "Something went wrong.",
	}
}

// Text returns the message for a filter rejection code.
func (m Messages) Text(code string) string {
	var text string
	switch code {
	case filter.CodeZeroDuration:
		text = m.ZeroDuration
	case filter.CodeUnsupportedFile:
		text = m.UnsupportedFile
	case filter.CodeDurationLimitExceeded:
		text = m.DurationLimit
	}
	if text == "" {
		return m.DefaultError
	}
	return text
}
