package state

import (
	"sync"
	"time"
)

// Manager manages session state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Session identity
	sessionID string
	startDir  string

	// Session lifecycle
	phase     Phase
	createdAt time.Time
	startedAt *time.Time
	endedAt   *time.Time

	// Counters
	played int
}

// New creates a new state manager.
func New(sessionID, startDir string, now time.Time) *Manager {
	return &Manager{
		sessionID: sessionID,
		startDir:  startDir,
		phase:     PhaseIdle,
		createdAt: now,
	}
}

// GetPhase returns the current session phase.
func (m *Manager) GetPhase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// GetSessionID returns the session ID.
func (m *Manager) GetSessionID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionID
}

// GetStartDir returns the directory the session was started in.
func (m *Manager) GetStartDir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.startDir
}

// TrackStarted records a started track. The first one activates the session.
func (m *Manager) TrackStarted(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseTerminated {
		return
	}
	if m.phase == PhaseIdle {
		m.phase = PhaseActive
		m.startedAt = &now
	}
	m.played++
}

// Terminate marks the session as closed. It returns false if it already was.
func (m *Manager) Terminate(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseTerminated {
		return false
	}
	m.phase = PhaseTerminated
	m.endedAt = &now
	return true
}

// GetPlayedCount returns how many tracks were started.
func (m *Manager) GetPlayedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.played
}

// GetTimes returns when playback first started and when the session ended.
func (m *Manager) GetTimes() (*time.Time, *time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.startedAt, m.endedAt
}

// Uptime returns how long the session has existed, up to its end.
func (m *Manager) Uptime(now time.Time) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.endedAt != nil {
		return m.endedAt.Sub(m.createdAt)
	}
	return now.Sub(m.createdAt)
}
