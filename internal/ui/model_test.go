package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/dirplayer/internal/app/filter"
	"github.com/osa030/dirplayer/internal/app/notification"
	"github.com/osa030/dirplayer/internal/app/playback"
	"github.com/osa030/dirplayer/internal/app/playback/playbacktest"
)

const (
	songA = "/music/a.mp3"
	songB = "/music/b.mp3"
)

type harness struct {
	model  *Model
	ctrl   *playback.Controller
	modal  *ModalSurface
	events []playback.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{modal: NewModalSurface()}
	notifications := notification.NewManager()
	notifications.Subscribe(h.modal)

	h.ctrl = playback.NewController(playback.Config{}, playback.Dependencies{
		Sink: playbacktest.NewSink(),
		Probe: playbacktest.NewProbe(map[string]time.Duration{
			songA: 3 * time.Minute,
			songB: 2 * time.Minute,
		}),
		Scanner: playbacktest.NewScanner(songA, songB),
		Surface: notifications,
		Filters: filter.NewChain(filter.NewExtensionFilter(".mp3"), filter.NewDurationFilter()),
	})
	t.Cleanup(h.ctrl.Close)

	h.model = New(context.Background(), h.ctrl, h.modal, Options{
		StartDir:   t.TempDir(),
		Extensions: []string{".mp3"},
		OnEvent:    func(e playback.Event) { h.events = append(h.events, e) },
	})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.model.Update(msg)
	return cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (h *harness) sawEvent(typ playback.EventType) bool {
	for _, e := range h.events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestModel_ModalOnEmptySkip(t *testing.T) {
	h := newHarness(t)

	h.send(runeKey("n"))

	require.True(t, h.modal.Open())
	assert.Contains(t, h.model.View(), "No more files to play.")
	assert.Contains(t, h.model.View(), notification.TitleInfo)

	// Player keys are swallowed while the modal is open.
	h.send(runeKey("n"))
	h.send(runeKey("s"))
	assert.False(t, h.ctrl.ShuffleEnabled())

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, h.modal.Open())
	assert.NotContains(t, h.model.View(), "No more files to play.")
}

func TestModel_PlayPauseWithoutSelection(t *testing.T) {
	h := newHarness(t)

	h.send(runeKey("p"))

	msg, ok := h.modal.Current()
	require.True(t, ok)
	assert.True(t, msg.IsError())
	assert.Equal(t, "No file selected.", msg.Body)

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.modal.Open())
}

func TestModel_PlaybackKeys(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SelectFile(context.Background(), songA))
	h.model.drainEvents()

	cmd := h.send(runeKey("p"))
	assert.Nil(t, cmd, "pausing arms no timer")
	assert.Equal(t, playback.StatePaused, h.ctrl.GetState())
	assert.True(t, h.sawEvent(playback.EventTrackStarted))
	assert.Contains(t, h.model.View(), playback.LabelPlay)

	cmd = h.send(runeKey("p"))
	assert.NotNil(t, cmd, "resuming re-arms the timer")
	assert.Contains(t, h.model.View(), playback.LabelPause)
	assert.Contains(t, h.model.View(), "a.mp3")

	h.send(runeKey("s"))
	assert.True(t, h.ctrl.ShuffleEnabled())
	assert.True(t, h.sawEvent(playback.EventShuffleChanged))
}

func TestModel_TrackFinished(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SelectFile(context.Background(), songA))

	h.send(TrackFinished(1))

	current, ok := h.ctrl.GetCurrentTrack()
	require.True(t, ok)
	assert.Equal(t, songB, current.Track.Path)
	assert.True(t, h.sawEvent(playback.EventTrackEnded))

	// A late duplicate changes nothing.
	h.send(TrackFinished(1))
	current, _ = h.ctrl.GetCurrentTrack()
	assert.Equal(t, songB, current.Track.Path)
}

func TestModel_Tick(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SelectFile(context.Background(), songA))
	h.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.NotNil(t, h.model.drainEvents())

	var armed uint64
	for _, e := range h.events {
		if e.Type == playback.EventTimerArmed {
			armed = e.TimerID
		}
	}
	require.NotZero(t, armed)

	assert.NotNil(t, h.send(tickMsg{id: armed}))
	assert.Nil(t, h.send(tickMsg{id: armed + 10}))
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpNext(t *testing.T) {
	tests := []struct {
		name  string
		queue []string
		want  string
	}{
		{"empty", nil, ""},
		{"short", []string{"a.mp3", "b.mp3"}, "Up next: a.mp3, b.mp3"},
		{"truncated", []string{"a.mp3", "b.mp3", "c.mp3", "d.mp3", "e.mp3"}, "Up next: a.mp3, b.mp3, c.mp3 (+2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upNext(tt.queue))
		})
	}
}

func TestAllowedTypes(t *testing.T) {
	assert.Equal(t, []string{".mp3", ".MP3"}, allowedTypes([]string{".mp3", ".MP3"}))
}
