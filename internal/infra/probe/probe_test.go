package probe

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MPEG-1 Layer III, 128 kbit/s, 44.1 kHz, no padding, no CRC.
var frameHeader = []byte{0xFF, 0xFB, 0x90, 0x64}

const (
	frameSize = 417
	oneFrame  = time.Second * 1152 / 44100
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func mp3Frames(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		buf.Write(frameHeader)
		buf.Write(make([]byte, frameSize-len(frameHeader)))
	}
	return buf.Bytes()
}

func TestProber_Duration(t *testing.T) {
	p := New()

	t.Run("sums frame durations", func(t *testing.T) {
		path := writeFile(t, "tone.mp3", mp3Frames(20))

		d, err := p.Duration(path)
		require.NoError(t, err)
		assert.InDelta(t, float64(20*oneFrame), float64(d), float64(2*oneFrame))
	})

	t.Run("file without frames has zero duration", func(t *testing.T) {
		path := writeFile(t, "silence.mp3", make([]byte, 2048))

		d, err := p.Duration(path)
		require.NoError(t, err)
		assert.Zero(t, d)
	})

	t.Run("empty file has zero duration", func(t *testing.T) {
		path := writeFile(t, "empty.mp3", nil)

		d, err := p.Duration(path)
		require.NoError(t, err)
		assert.Zero(t, d)
	})

	t.Run("other containers are rejected", func(t *testing.T) {
		data := append([]byte("fLaC"), make([]byte, 64)...)
		path := writeFile(t, "track.mp3", data)

		_, err := p.Duration(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := p.Duration(filepath.Join(t.TempDir(), "missing.mp3"))
		assert.Error(t, err)
	})
}

func TestProber_Describe(t *testing.T) {
	path := writeFile(t, "tone.mp3", mp3Frames(5))

	info, err := New().Describe(path)
	require.NoError(t, err)

	assert.Equal(t, path, info.Path)
	assert.Greater(t, info.Duration, time.Duration(0))
	assert.Empty(t, info.Title)
}
