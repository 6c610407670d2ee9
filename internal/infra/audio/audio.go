// Package audio plays decoded MP3 streams through the system speaker.
package audio

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrUnavailable is returned when the build has no audio backend.
var ErrUnavailable = errors.New("audio output is not available in this build")

// ErrNotLoaded is returned when an operation needs a loaded stream.
var ErrNotLoaded = errors.New("no stream loaded")

// Config describes the speaker setup.
type Config struct {
	SampleRate int           // Output sample rate in Hz
	Buffer     time.Duration // Speaker buffer length
	Quality    int           // Resampling quality (1-6)
}

// DefaultConfig returns CD-quality output with a 100ms buffer.
func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		Buffer:     100 * time.Millisecond,
		Quality:    4,
	}
}

// normalize fills zero fields with defaults and clamps the quality.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.Buffer <= 0 {
		c.Buffer = d.Buffer
	}
	if c.Quality <= 0 {
		c.Quality = d.Quality
	}
	if c.Quality > 6 {
		c.Quality = 6
	}
	return c
}
