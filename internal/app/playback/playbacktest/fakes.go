// Package playbacktest provides in-memory collaborators for exercising the playback controller.
package playbacktest

import (
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
)

// Call names recorded by Sink.
const (
	CallLoad   = "load"
	CallPlay   = "play"
	CallStop   = "stop"
	CallSeek   = "seek"
	CallUnload = "unload"
)

// Sink is an AudioSink that records calls and lets tests drive the position and
// the end-of-track callback.
type Sink struct {
	Calls    []string
	Loaded   string        // Path of the loaded stream, empty when unloaded
	Pos      time.Duration // Value returned by Position
	SeekedTo time.Duration // Last Seek offset
	Loads    int

	// FireOnStop makes Stop invoke the end-of-track callback synchronously,
	// the way some backends report a stopped stream.
	FireOnStop bool

	LoadErr error
	PlayErr error
	StopErr error

	onFinish func()
	playing  bool
}

// NewSink creates an idle sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Load(path string, onFinish func()) error {
	s.Calls = append(s.Calls, CallLoad)
	if s.LoadErr != nil {
		return s.LoadErr
	}
	s.Loaded = path
	s.Loads++
	s.Pos = 0
	s.onFinish = onFinish
	return nil
}

func (s *Sink) Play() error {
	s.Calls = append(s.Calls, CallPlay)
	if s.PlayErr != nil {
		return s.PlayErr
	}
	s.playing = true
	return nil
}

func (s *Sink) Stop() error {
	s.Calls = append(s.Calls, CallStop)
	if s.StopErr != nil {
		return s.StopErr
	}
	s.playing = false
	if s.FireOnStop && s.onFinish != nil {
		s.onFinish()
	}
	return nil
}

func (s *Sink) Seek(offset time.Duration) error {
	s.Calls = append(s.Calls, CallSeek)
	s.SeekedTo = offset
	s.Pos = offset
	return nil
}

func (s *Sink) Position() time.Duration {
	return s.Pos
}

func (s *Sink) Playing() bool {
	return s.playing
}

func (s *Sink) Unload() error {
	s.Calls = append(s.Calls, CallUnload)
	s.Loaded = ""
	s.playing = false
	s.onFinish = nil
	return nil
}

// Finish simulates the stream reaching its end.
func (s *Sink) Finish() {
	if s.onFinish != nil {
		s.onFinish()
	}
}

// FinishCallback returns the callback registered by the last Load.
// Tests keep it to replay a notification after the stream has changed.
func (s *Sink) FinishCallback() func() {
	return s.onFinish
}

// Count returns how many times the named call was made.
func (s *Sink) Count(call string) int {
	n := 0
	for _, c := range s.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// Probe returns fixed durations per path.
type Probe struct {
	Durations map[string]time.Duration
	Errors    map[string]error
}

// NewProbe creates a probe that knows the given durations.
func NewProbe(durations map[string]time.Duration) *Probe {
	return &Probe{Durations: durations, Errors: map[string]error{}}
}

func (p *Probe) Duration(path string) (time.Duration, error) {
	if err, ok := p.Errors[path]; ok {
		return 0, err
	}
	d, ok := p.Durations[path]
	if !ok {
		return 0, errors.Newf("cannot read %s", filepath.Base(path))
	}
	return d, nil
}

// Scanner serves directory listings from memory.
type Scanner struct {
	Dirs map[string][]string // Directory to file paths in listing order
	Err  error
}

// NewScanner creates a scanner that groups the given paths by directory.
// Paths keep their relative order inside each directory.
func NewScanner(paths ...string) *Scanner {
	s := &Scanner{Dirs: map[string][]string{}}
	for _, p := range paths {
		dir := filepath.Dir(p)
		s.Dirs[dir] = append(s.Dirs[dir], p)
	}
	return s
}

func (s *Scanner) Siblings(path string) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	files := s.Dirs[filepath.Dir(path)]
	result := make([]string, len(files))
	copy(result, files)
	return result, nil
}

// Message is one message shown on a Surface.
type Message struct {
	Title string
	Body  string
}

// Surface records shown messages.
type Surface struct {
	Messages []Message
}

func (s *Surface) Show(title, body string) {
	s.Messages = append(s.Messages, Message{Title: title, Body: body})
}

// Last returns the most recent message.
func (s *Surface) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
