//go:build (linux && cgo) || windows || darwin

package audio

import (
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	zlog "github.com/rs/zerolog/log"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// Sink holds at most one decoded stream on the speaker.
type Sink struct {
	mu sync.Mutex

	config      Config
	sampleRate  beep.SampleRate
	initialized bool

	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	onFinish func()
	loadID   uint64 // Incremented on every load and unload; stale end callbacks are dropped
}

// New creates a sink. The speaker is opened on the first load.
func New(config Config) (*Sink, error) {
	config = config.normalize()
	return &Sink{
		config:     config,
		sampleRate: beep.SampleRate(config.SampleRate),
	}, nil
}

// initSpeakerLocked opens the speaker once.
func (s *Sink) initSpeakerLocked() error {
	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(s.config.Buffer)); err != nil {
		return errors.Wrap(err, "failed to initialize speaker")
	}
	s.initialized = true
	zlog.Debug().Msgf("audio: speaker initialized: rate=%d buffer=%s", s.config.SampleRate, s.config.Buffer)
	return nil
}

// Load decodes the file and queues it on the speaker, paused.
// onFinish runs on its own goroutine when the stream reaches its end.
func (s *Sink) Load(path string, onFinish func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unloadLocked()

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to decode %s", path)
	}
	if err := s.initSpeakerLocked(); err != nil {
		_ = streamer.Close()
		return err
	}

	s.loadID++
	id := s.loadID
	s.path = path
	s.streamer = streamer
	s.format = format
	s.onFinish = onFinish
	s.ctrl = &beep.Ctrl{
		Streamer: beep.Resample(s.config.Quality, format.SampleRate, s.sampleRate, streamer),
		Paused:   true,
	}

	speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		// Runs under the speaker lock; hand off before touching s.mu.
		go s.finished(id)
	})))

	zlog.Debug().Msgf("audio: loaded %s: rate=%d", path, format.SampleRate)
	return nil
}

// finished forwards the end of a stream that is still loaded.
func (s *Sink) finished(id uint64) {
	s.mu.Lock()
	if id != s.loadID || s.onFinish == nil {
		s.mu.Unlock()
		return
	}
	onFinish := s.onFinish
	s.onFinish = nil
	s.mu.Unlock()

	onFinish()
}

// Play starts or resumes output.
func (s *Sink) Play() error {
	return s.setPaused(false)
}

// Stop halts output and keeps the position.
func (s *Sink) Stop() error {
	return s.setPaused(true)
}

func (s *Sink) setPaused(paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return ErrNotLoaded
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
	return nil
}

// Seek moves to the given offset in the loaded stream.
func (s *Sink) Seek(offset time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return ErrNotLoaded
	}

	speaker.Lock()
	defer speaker.Unlock()

	samples := s.format.SampleRate.N(offset)
	if length := s.streamer.Len(); samples > length {
		samples = length
	}
	if samples < 0 {
		samples = 0
	}
	if err := s.streamer.Seek(samples); err != nil {
		return errors.Wrapf(err, "failed to seek %s", s.path)
	}
	return nil
}

// Position returns the current position in the loaded stream.
func (s *Sink) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return 0
	}

	speaker.Lock()
	pos := s.streamer.Position()
	speaker.Unlock()

	return s.format.SampleRate.D(pos)
}

// Playing reports whether a stream is loaded and not paused.
func (s *Sink) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return false
	}

	speaker.Lock()
	paused := s.ctrl.Paused
	speaker.Unlock()
	return !paused
}

// Unload removes the stream from the speaker and releases the file.
// No end notification fires for an unloaded stream.
func (s *Sink) Unload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unloadLocked()
}

func (s *Sink) unloadLocked() error {
	if s.streamer == nil {
		return nil
	}

	s.loadID++
	s.onFinish = nil
	speaker.Clear()

	err := s.streamer.Close()
	zlog.Debug().Msgf("audio: unloaded %s", s.path)

	s.path = ""
	s.streamer = nil
	s.ctrl = nil
	if err != nil {
		return errors.Wrap(err, "failed to close stream")
	}
	return nil
}

// Close releases the stream and the speaker.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.unloadLocked()
	if s.initialized {
		speaker.Close()
		s.initialized = false
	}
	return err
}
