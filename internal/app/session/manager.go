// Package session provides the session manager.
package session

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirplayer/internal/app/filter"
	"github.com/osa030/dirplayer/internal/app/notification"
	"github.com/osa030/dirplayer/internal/app/playback"
	"github.com/osa030/dirplayer/internal/app/session/state"
	"github.com/osa030/dirplayer/internal/infra/config"
	"github.com/osa030/dirplayer/internal/infra/desktop"
)

// ErrMissingDependency is returned when a required collaborator is nil.
var ErrMissingDependency = errors.New("missing dependency")

// filterOrder is the order in which selection filters run.
// The extension check comes first so unsupported files are reported as such.
var filterOrder = []string{"extension_filter", "duration_filter"}

// Dependencies are the infrastructure pieces the session is built from.
type Dependencies struct {
	Sink     playback.AudioSink
	Probe    playback.MetadataProbe
	Scanner  playback.DirectoryScanner
	Dispatch func(generation uint64) // Routes end-of-track notifications into the event loop
	Surfaces []notification.Surface  // Always-on message surfaces, such as the UI modal
}

// Manager wires configuration and infrastructure into a playback controller.
type Manager struct {
	// Configuration
	config *config.Config

	// Components
	stateMgr     *state.Manager
	playback     *playback.Controller
	filterChain  *filter.Chain
	notification *notification.Manager

	now func() time.Time
}

// NewManager creates a new session manager.
func NewManager(cfg *config.Config, deps Dependencies) (*Manager, error) {
	if deps.Sink == nil || deps.Probe == nil || deps.Scanner == nil {
		return nil, errors.Wrap(ErrMissingDependency, "sink, probe and scanner are required")
	}

	startDir, err := cfg.StartDirectory()
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve start directory")
	}

	m := &Manager{
		config:       cfg,
		stateMgr:     state.New(uuid.New().String(), startDir, time.Now()),
		filterChain:  filter.NewChain(),
		notification: notification.NewManager(),
		now:          time.Now,
	}

	// Setup message surfaces
	m.setupSurfaces(deps.Surfaces)

	// Setup filters
	m.setupFilters()

	m.playback = playback.NewController(playback.Config{
		TickInterval: cfg.TickInterval(),
		HistorySize:  cfg.Playback.HistorySize,
		Shuffle:      cfg.Playback.Shuffle,
		Messages:     Messages(cfg),
		Dispatch:     deps.Dispatch,
	}, playback.Dependencies{
		Sink:    deps.Sink,
		Probe:   deps.Probe,
		Scanner: deps.Scanner,
		Surface: m.notification,
		Filters: m.filterChain,
	})

	zlog.Info().Msgf("session: created: id=%s start_dir=%s filters=%d surfaces=%d",
		m.stateMgr.GetSessionID(), startDir, len(m.filterChain.Filters()), m.notification.SubscriberCount())

	return m, nil
}

// setupSurfaces subscribes the message surfaces.
func (m *Manager) setupSurfaces(surfaces []notification.Surface) {
	for _, s := range surfaces {
		m.notification.Subscribe(s)
	}
	if m.config.Notify.Desktop {
		m.notification.Subscribe(desktop.NewNotifier(m.config.Notify.AppName))
	}
}

// setupFilters initializes the filter chain from the registry.
// A filter whose settings fail validation still runs with its defaults.
func (m *Manager) setupFilters() {
	registered := filter.GetRegistered()

	for _, name := range filterOrder {
		factory, ok := registered[name]
		if !ok || !m.config.IsFilterEnabled(name) {
			zlog.Debug().Msgf("session: filter disabled: %s", name)
			continue
		}

		f := factory()
		if err := f.ValidateConfig(m.filterSettings(name)); err != nil {
			zlog.Error().Msgf("session: failed to validate %s config: %v", name, err)
		}
		m.filterChain.Add(f)
	}
}

// filterSettings returns the configured settings for a filter.
// The extension filter defaults to the library extensions.
func (m *Manager) filterSettings(name string) map[string]any {
	settings := make(map[string]any)
	if name == "extension_filter" {
		settings["extensions"] = m.config.Library.Extensions
	}
	for k, v := range m.config.GetFilterSettings(name) {
		settings[k] = v
	}
	return settings
}

// Messages maps the configured texts onto the controller's message set.
func Messages(cfg *config.Config) playback.Messages {
	return playback.Messages{
		NoSelection:     cfg.GetMessage("no_selection"),
		ZeroDuration:    cfg.GetMessage(filter.CodeZeroDuration),
		UnsupportedFile: cfg.GetMessage(filter.CodeUnsupportedFile),
		DurationLimit:   cfg.GetMessage(filter.CodeDurationLimitExceeded),
		QueueExhausted:  cfg.GetMessage("queue_exhausted"),
		NoHistory:       cfg.GetMessage("no_history"),
		DefaultError:    cfg.GetMessage("default_error"),
	}
}

// HandleEvent keeps the session state in step with playback events.
func (m *Manager) HandleEvent(e playback.Event) {
	switch e.Type {
	case playback.EventTrackStarted:
		m.stateMgr.TrackStarted(m.now())
	case playback.EventQueueEmpty:
		zlog.Info().Msgf("session: queue exhausted after %d tracks", m.stateMgr.GetPlayedCount())
	}
}

// Controller returns the playback controller.
func (m *Manager) Controller() *playback.Controller {
	return m.playback
}

// Notifications returns the message fan-out.
func (m *Manager) Notifications() *notification.Manager {
	return m.notification
}

// Filters returns the active selection filters.
func (m *Manager) Filters() []filter.Filter {
	return m.filterChain.Filters()
}

// StartDir returns the directory the file chooser opens in.
func (m *Manager) StartDir() string {
	return m.stateMgr.GetStartDir()
}

// Phase returns the session phase.
func (m *Manager) Phase() state.Phase {
	return m.stateMgr.GetPhase()
}

// Close stops playback and releases the message surfaces. It is idempotent.
func (m *Manager) Close() {
	now := m.now()
	if !m.stateMgr.Terminate(now) {
		return
	}

	m.playback.Close()
	m.notification.Close()

	zlog.Info().Msgf("session: closed: id=%s played=%d uptime=%s",
		m.stateMgr.GetSessionID(), m.stateMgr.GetPlayedCount(), m.stateMgr.Uptime(now).Round(time.Second))
}
