package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	trk := New("/music/album/01 - intro.mp3", 90*time.Second)

	assert.Equal(t, "/music/album/01 - intro.mp3", trk.Path)
	assert.Equal(t, "01 - intro.mp3", trk.Name)
	assert.Equal(t, 90*time.Second, trk.Duration)
}

func TestTrack_HasExtension(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		extensions []string
		expected   bool
	}{
		{
			name:       "matching extension",
			path:       "/music/a.mp3",
			extensions: []string{".mp3"},
			expected:   true,
		},
		{
			name:       "upper case file extension",
			path:       "/music/A.MP3",
			extensions: []string{".mp3"},
			expected:   true,
		},
		{
			name:       "upper case configured extension",
			path:       "/music/a.mp3",
			extensions: []string{".MP3"},
			expected:   true,
		},
		{
			name:       "other extension",
			path:       "/music/a.flac",
			extensions: []string{".mp3"},
			expected:   false,
		},
		{
			name:       "no extension",
			path:       "/music/mp3",
			extensions: []string{".mp3"},
			expected:   false,
		},
		{
			name:       "empty extension list",
			path:       "/music/a.mp3",
			extensions: nil,
			expected:   false,
		},
		{
			name:       "second extension in list",
			path:       "/music/a.wav",
			extensions: []string{".mp3", ".wav"},
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trk := New(tt.path, 0)
			assert.Equal(t, tt.expected, trk.HasExtension(tt.extensions))
		})
	}
}

func TestNewQueued(t *testing.T) {
	trk := New("/music/a.mp3", time.Minute)

	first := NewQueued(trk, SourceDirectory)
	second := NewQueued(trk, SourceSelection)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID, "entries for the same path must have distinct IDs")
	assert.Equal(t, trk, first.Track)
	assert.Equal(t, SourceDirectory, first.Source)
	assert.Equal(t, SourceSelection, second.Source)
	assert.False(t, first.AddedAt.IsZero())
}
