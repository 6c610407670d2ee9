package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/dirplayer/internal/domain/track"
)

func TestExtensionFilter_Check(t *testing.T) {
	tests := []struct {
		name         string
		extensions   []string
		path         string
		wantAccepted bool
	}{
		{"mp3 accepted", []string{".mp3"}, "/music/a.mp3", true},
		{"upper case accepted", []string{".mp3"}, "/music/A.MP3", true},
		{"text rejected", []string{".mp3"}, "/music/notes.txt", false},
		{"directory-like path rejected", []string{".mp3"}, "/music/album", false},
		{"extra extension accepted", []string{".mp3", ".flac"}, "/music/a.flac", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewExtensionFilter(tt.extensions...)
			result := f.Check(context.Background(), Candidate{Track: track.New(tt.path, 0)})

			assert.Equal(t, tt.wantAccepted, result.Accepted)
			if !tt.wantAccepted {
				assert.Equal(t, CodeUnsupportedFile, result.Code)
			}
		})
	}
}

func TestExtensionFilter_ValidateConfig(t *testing.T) {
	t.Run("defaults to mp3", func(t *testing.T) {
		f := NewExtensionFilter()
		require.NoError(t, f.ValidateConfig(map[string]any{}))
		assert.Equal(t, []string{".mp3"}, f.Extensions())
	})

	t.Run("configured list", func(t *testing.T) {
		f := NewExtensionFilter(".mp3")
		require.NoError(t, f.ValidateConfig(map[string]any{
			"extensions": []any{".mp3", ".wav"},
		}))
		assert.Equal(t, []string{".mp3", ".wav"}, f.Extensions())
	})

	t.Run("extension without dot", func(t *testing.T) {
		f := NewExtensionFilter(".mp3")
		err := f.ValidateConfig(map[string]any{
			"extensions": []any{"mp3"},
		})
		assert.Error(t, err)
		assert.Equal(t, []string{".mp3"}, f.Extensions(), "previous list must be kept on error")
	})
}
