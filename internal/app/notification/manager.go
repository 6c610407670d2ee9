// Package notification provides the manager that fans user-facing messages out to surfaces.
package notification

import (
	"sync"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// Titles used for user-facing messages.
const (
	TitleError = "Error"
	TitleInfo  = "Info"
)

// Message is a titled message with a dismiss action.
type Message struct {
	Title string
	Body  string
}

// IsError reports whether the message describes a failure.
func (m Message) IsError() bool {
	return m.Title == TitleError
}

// Surface presents messages to the user (modal popup, desktop notification...).
type Surface interface {
	Present(Message) error
}

// subscription represents a subscribed surface.
type subscription struct {
	id      string
	surface Surface
}

// Manager manages surface subscriptions and broadcasting.
type Manager struct {
	mu            sync.RWMutex
	subscriptions []*subscription
}

// NewManager creates a new notification manager.
func NewManager() *Manager {
	return &Manager{
		subscriptions: make([]*subscription, 0),
	}
}

// Subscribe adds a surface and returns the subscription ID.
// Surfaces receive messages in subscription order.
func (m *Manager) Subscribe(surface Surface) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions = append(m.subscriptions, &subscription{
		id:      id,
		surface: surface,
	})
	return id
}

// Broadcast presents the message on every surface.
// A failing surface is logged and does not stop delivery to the others.
func (m *Manager) Broadcast(msg Message) {
	m.mu.RLock()
	subs := make([]*subscription, len(m.subscriptions))
	copy(subs, m.subscriptions)
	m.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.surface.Present(msg); err != nil {
			zlog.Warn().Err(err).Msgf("notification: surface %s failed to present %q", sub.id, msg.Title)
		}
	}
}

// Show broadcasts a message built from a title and body.
func (m *Manager) Show(title, body string) {
	m.Broadcast(Message{Title: title, Body: body})
}

// SubscriberCount returns the number of subscribed surfaces.
func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close removes all subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = make([]*subscription, 0)
}
