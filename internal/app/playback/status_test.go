package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/dirplayer/internal/app/filter"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "0:00"},
		{"seconds are zero padded", 5 * time.Second, "0:05"},
		{"fraction is truncated", 59*time.Second + 999*time.Millisecond, "0:59"},
		{"minutes", 65 * time.Second, "1:05"},
		{"minutes are not wrapped into hours", 75 * time.Minute, "75:00"},
		{"negative", -3 * time.Second, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.in))
		})
	}
}

func TestMessages_Text(t *testing.T) {
	m := DefaultMessages()

	assert.Equal(t, m.ZeroDuration, m.Text(filter.CodeZeroDuration))
	assert.Equal(t, m.UnsupportedFile, m.Text(filter.CodeUnsupportedFile))
	assert.Equal(t, m.DurationLimit, m.Text(filter.CodeDurationLimitExceeded))
	assert.Equal(t, m.DefaultError, m.Text("unknown_code"))

	m.ZeroDuration = ""
	assert.Equal(t, m.DefaultError, m.Text(filter.CodeZeroDuration))
}

func TestStatus_Label(t *testing.T) {
	f := newFixture(t, Config{}, songA)
	assert.Equal(t, LabelPlay, f.ctrl.Status().Label)
	assert.False(t, f.ctrl.Status().Playing())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "skip", ModeSkip.String())
	assert.Equal(t, "auto", ModeAuto.String())
	assert.Equal(t, "timer_armed", EventTimerArmed.String())
}
