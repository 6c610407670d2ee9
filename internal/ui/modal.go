package ui

import (
	"sync"

	"github.com/osa030/dirplayer/internal/app/notification"
)

// ModalSurface queues messages for the modal overlay. Messages are shown one at
// a time, oldest first, until dismissed.
type ModalSurface struct {
	mu      sync.Mutex
	pending []notification.Message
}

// NewModalSurface creates an empty modal queue.
func NewModalSurface() *ModalSurface {
	return &ModalSurface{}
}

// Present implements notification.Surface.
func (s *ModalSurface) Present(msg notification.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, msg)
	return nil
}

// Current returns the message on screen.
func (s *ModalSurface) Current() (notification.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return notification.Message{}, false
	}
	return s.pending[0], true
}

// Dismiss closes the message on screen.
func (s *ModalSurface) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) > 0 {
		s.pending = s.pending[1:]
	}
}

// Open reports whether a message is on screen.
func (s *ModalSurface) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}
