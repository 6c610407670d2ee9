//go:build !((linux && cgo) || windows || darwin)

package audio

import "time"

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries.
const AudioAvailable = false

// Sink refuses every operation in builds without cgo.
type Sink struct{}

// New returns ErrUnavailable when cgo is disabled.
func New(config Config) (*Sink, error) {
	return nil, ErrUnavailable
}

func (s *Sink) Load(path string, onFinish func()) error { return ErrUnavailable }

func (s *Sink) Play() error { return ErrUnavailable }

func (s *Sink) Stop() error { return ErrUnavailable }

func (s *Sink) Seek(offset time.Duration) error { return ErrUnavailable }

func (s *Sink) Position() time.Duration { return 0 }

func (s *Sink) Playing() bool { return false }

func (s *Sink) Unload() error { return nil }

func (s *Sink) Close() error { return nil }
