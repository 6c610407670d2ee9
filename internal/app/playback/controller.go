package playback

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirplayer/internal/app/filter"
	"github.com/osa030/dirplayer/internal/app/notification"
	"github.com/osa030/dirplayer/internal/domain/queue"
	"github.com/osa030/dirplayer/internal/domain/track"
)

// Errors
var (
	ErrNoSelection = errors.New("no file selected")
	ErrRejected    = errors.New("selection rejected")
	ErrQueueEmpty  = errors.New("queue is empty")
	ErrNoHistory   = errors.New("no previous track")
)

const (
	defaultTickInterval = 100 * time.Millisecond
	defaultHistorySize  = 50
)

// Config holds controller configuration.
type Config struct {
	TickInterval time.Duration // Interval of the elapsed-time display timer
	HistorySize  int           // Number of finished tracks kept for Previous
	Shuffle      bool          // Initial shuffle mode
	Messages     Messages      // User-facing texts

	// Intn returns a uniform random value in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int

	// Dispatch routes an end-of-track notification back into the event loop.
	// The loop must then call HandleTrackFinished with the same generation.
	// When nil, the notification is handled directly on the sink's goroutine.
	Dispatch func(generation uint64)
}

// Dependencies are the external collaborators of the controller.
type Dependencies struct {
	Sink    AudioSink
	Probe   MetadataProbe
	Scanner DirectoryScanner
	Surface MessageSurface
	Filters *filter.Chain
}

// Controller owns the play queue, the active track and the pause/resume bookkeeping.
//
// Controller is not safe for concurrent use: every method must be called from the
// single event loop that also receives end-of-track notifications (see Config.Dispatch).
type Controller struct {
	// Collaborators
	sink    AudioSink
	probe   MetadataProbe
	scanner DirectoryScanner
	surface MessageSurface
	filters *filter.Chain

	// Queue management
	queue   *queue.Queue        // Tracks waiting to be played, next first
	history []track.QueuedTrack // Finished or skipped tracks, most recent last

	// Current track state
	current     *track.QueuedTrack
	state       State
	offset      time.Duration // Position captured on pause, authoritative only while paused
	elapsed     time.Duration // Last position published for display
	displayName string
	selection   string // Last path passed to SelectFile; replayed by play with nothing loaded
	shuffle     bool

	// End-of-track guards
	armed      bool   // Notifications for the current generation are acted upon
	skipping   bool   // A user-initiated stop is in progress
	generation uint64 // Incremented on every load

	// Time display timer
	timerID    uint64
	timerArmed bool

	// Configuration
	config Config

	// Events
	eventCh chan Event
	closed  bool
}

// NewController creates a new playback controller.
func NewController(config Config, deps Dependencies) *Controller {
	if config.TickInterval <= 0 {
		config.TickInterval = defaultTickInterval
	}
	if config.HistorySize <= 0 {
		config.HistorySize = defaultHistorySize
	}
	if config.Messages == (Messages{}) {
		config.Messages = DefaultMessages()
	}
	if config.Intn == nil {
		config.Intn = rand.IntN
	}
	if deps.Surface == nil {
		deps.Surface = logSurface{}
	}

	return &Controller{
		sink:    deps.Sink,
		probe:   deps.Probe,
		scanner: deps.Scanner,
		surface: deps.Surface,
		filters: deps.Filters,
		queue:   queue.New(),
		history: make([]track.QueuedTrack, 0),
		state:   StateStopped,
		shuffle: config.Shuffle,
		config:  config,
		eventCh: make(chan Event, 32),
	}
}

// Events returns the event channel.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// TickInterval returns the interval the UI should use for the time display timer.
func (c *Controller) TickInterval() time.Duration {
	return c.config.TickInterval
}

// SelectFile validates the file, rebuilds the queue from its directory and either
// starts playback (nothing loaded) or queues the file right after the next track.
// A failed selection leaves the queue and the active track untouched.
func (c *Controller) SelectFile(ctx context.Context, path string) error {
	if path == "" {
		c.report(notification.TitleError, c.config.Messages.NoSelection)
		return ErrNoSelection
	}
	// Scanner paths are cleaned; the selection must compare equal to its sibling entry.
	path = filepath.Clean(path)
	c.selection = path

	duration, err := c.probe.Duration(path)
	if err != nil {
		c.report(notification.TitleError, err.Error())
		return errors.Wrapf(err, "failed to probe %s", path)
	}

	selected := track.New(path, duration)
	if result := c.filters.Execute(ctx, filter.Candidate{Track: selected}, track.SourceSelection); !result.Accepted {
		c.report(notification.TitleError, c.config.Messages.Text(result.Code))
		return errors.Wrapf(ErrRejected, "%s: %s", selected.Name, result.Code)
	}

	siblings, err := c.scanner.Siblings(path)
	if err != nil {
		c.report(notification.TitleError, err.Error())
		return errors.Wrapf(err, "failed to scan directory of %s", path)
	}

	entries := make([]track.QueuedTrack, 0, len(siblings))
	for _, p := range siblings {
		sibling := track.New(p, 0)
		if !c.filters.Execute(ctx, filter.Candidate{Track: sibling}, track.SourceDirectory).Accepted {
			continue
		}
		entries = append(entries, track.NewQueued(sibling, track.SourceDirectory))
	}

	// The new order is built aside and only committed once the selection succeeded.
	staged := queue.New(c.queue.Entries()...)
	replaced := len(entries) > 0
	if replaced {
		staged.Replace(entries)
		// The head is always the next track, never the one playing.
		if head, ok := staged.At(0); ok && c.current != nil && head.Track.Path == c.current.Track.Path {
			staged.PopFront()
		}
	}

	if c.current != nil {
		staged.Insert(1, track.NewQueued(selected, track.SourceSelection))
		c.queue = staged
		c.displayName = selected.Name
		if replaced {
			c.sendEvent(Event{Type: EventQueueReplaced, Track: c.current, State: c.state})
		}
		c.logQueue("selection queued")
		return nil
	}

	// The selected file plays first and its first occurrence leaves the queue;
	// a later occurrence stays queued.
	staged.Append(track.NewQueued(selected, track.SourceSelection))
	staged.RemoveFirst(path)

	previous := c.queue
	c.queue = staged
	if err := c.load(track.NewQueued(selected, track.SourceSelection)); err != nil {
		c.queue = previous
		return err
	}

	if replaced {
		c.sendEvent(Event{Type: EventQueueReplaced, Track: c.current, State: c.state})
	}
	c.logQueue("selection")
	return nil
}

// TogglePlayPause pauses a playing track, resumes a paused one, and falls back
// to the selection flow when nothing is loaded.
func (c *Controller) TogglePlayPause(ctx context.Context) error {
	switch {
	case c.current == nil:
		return c.SelectFile(ctx, c.selection)
	case c.state == StatePlaying:
		return c.pause()
	default:
		return c.resume()
	}
}

// pause captures the position and stops output.
func (c *Controller) pause() error {
	c.offset = c.sink.Position()
	c.elapsed = c.offset

	// Disarm first: the stop must not count as the end of the track.
	c.armed = false
	if err := c.sink.Stop(); err != nil {
		c.armed = true
		c.report(notification.TitleError, err.Error())
		return errors.Wrap(err, "failed to pause")
	}

	c.state = StatePaused
	c.timerArmed = false
	zlog.Debug().Msgf("playback: paused at %s: track=%s", FormatElapsed(c.offset), c.current.Track.Name)

	c.sendEvent(Event{Type: EventStateChanged, Track: c.current, State: c.state})
	return nil
}

// resume seeks back to the captured position and restarts output.
func (c *Controller) resume() error {
	if err := c.sink.Seek(c.offset); err != nil {
		c.report(notification.TitleError, err.Error())
		return errors.Wrap(err, "failed to seek")
	}

	c.armed = true
	if err := c.sink.Play(); err != nil {
		c.armed = false
		c.report(notification.TitleError, err.Error())
		return errors.Wrap(err, "failed to resume")
	}

	c.state = StatePlaying
	zlog.Debug().Msgf("playback: resumed at %s: track=%s", FormatElapsed(c.offset), c.current.Track.Name)

	c.sendEvent(Event{Type: EventStateChanged, Track: c.current, State: c.state})
	c.armTimer()
	return nil
}

// Skip stops the current track and plays the next one.
func (c *Controller) Skip() error {
	return c.Advance(ModeSkip)
}

// Advance moves playback to the next track.
// In shuffle mode the next track is a uniform pick that stays queued; otherwise the head is popped.
func (c *Controller) Advance(mode Mode) error {
	if c.queue.Empty() {
		c.release(true)
		c.reset()
		c.sendEvent(Event{Type: EventQueueEmpty, State: c.state})
		if mode == ModeSkip {
			c.report(notification.TitleInfo, c.config.Messages.QueueExhausted)
			return ErrQueueEmpty
		}
		return nil
	}

	if mode == ModeSkip && c.current != nil {
		c.skipping = true
		c.sendEvent(Event{Type: EventTrackSkipped, Track: c.current, State: c.state})
	}
	c.release(true)

	return c.load(c.pickNext())
}

// Previous replays the most recently finished track.
// The interrupted track goes back to the head of the queue.
func (c *Controller) Previous() error {
	if len(c.history) == 0 {
		c.report(notification.TitleInfo, c.config.Messages.NoHistory)
		return ErrNoHistory
	}

	last := len(c.history) - 1
	prev := c.history[last]
	c.history = c.history[:last]

	if c.current != nil {
		interrupted := *c.current
		c.skipping = true
		c.release(false)
		c.queue.PushFront(interrupted)
	}

	return c.load(track.NewQueued(prev.Track, track.SourceHistory))
}

// HandleTrackFinished reacts to the sink's end-of-track notification.
// Notifications raised by a user-initiated stop, by a disarmed track, or by an
// earlier generation are ignored.
func (c *Controller) HandleTrackFinished(generation uint64) error {
	if c.skipping {
		c.skipping = false
		zlog.Debug().Msgf("playback: end of track suppressed during skip: generation=%d", generation)
		return nil
	}
	if !c.armed || generation != c.generation {
		zlog.Debug().Msgf("playback: ignoring stale end of track: generation=%d current=%d armed=%v",
			generation, c.generation, c.armed)
		return nil
	}

	c.armed = false
	c.offset = 0
	if c.current != nil {
		zlog.Debug().Msgf("playback: track ended: track=%s", c.current.Track.Name)
	}
	c.sendEvent(Event{Type: EventTrackEnded, Track: c.current, State: c.state})

	return c.Advance(ModeAuto)
}

// Tick refreshes the elapsed time for the timer with the given ID.
// It returns false when the timer must not be rescheduled: the ID is stale or
// playback is no longer running.
func (c *Controller) Tick(timerID uint64) (Status, bool) {
	if !c.timerArmed || timerID != c.timerID {
		return c.Status(), false
	}
	if c.state != StatePlaying {
		c.timerArmed = false
		return c.Status(), false
	}

	c.elapsed = c.sink.Position()
	return c.Status(), true
}

// ToggleShuffle flips shuffle mode. Enabling it reorders the remaining queue.
func (c *Controller) ToggleShuffle() bool {
	c.shuffle = !c.shuffle
	if c.shuffle {
		c.queue.Shuffle(c.config.Intn)
	}
	c.logQueue("shuffle")

	c.sendEvent(Event{Type: EventShuffleChanged, Track: c.current, State: c.state})
	return c.shuffle
}

// Stop releases the active track and leaves the queue as is.
func (c *Controller) Stop() {
	if c.current == nil {
		return
	}
	c.release(true)
	c.reset()
	c.sendEvent(Event{Type: EventStateChanged, State: c.state})
}

// Close stops playback and closes the event channel.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.Stop()
	c.closed = true
	close(c.eventCh)
}

// Status returns the snapshot the UI renders.
func (c *Controller) Status() Status {
	label := LabelPlay
	if c.state == StatePlaying {
		label = LabelPause
	}
	return Status{
		State:    c.state,
		Elapsed:  c.elapsed,
		FileName: c.displayName,
		Label:    label,
		Shuffle:  c.shuffle,
		Queue:    c.queue.Names(),
	}
}

// GetState returns the current playback state.
func (c *Controller) GetState() State {
	return c.state
}

// GetCurrentTrack returns the loaded track.
func (c *Controller) GetCurrentTrack() (*track.QueuedTrack, bool) {
	if c.current == nil {
		return nil, false
	}
	return c.current, true
}

// GetQueuedTracks returns a copy of the queued tracks.
func (c *Controller) GetQueuedTracks() []track.QueuedTrack {
	return c.queue.Entries()
}

// GetPlayedTracks returns a copy of the playback history.
func (c *Controller) GetPlayedTracks() []track.QueuedTrack {
	result := make([]track.QueuedTrack, len(c.history))
	copy(result, c.history)
	return result
}

// ShuffleEnabled reports whether shuffle mode is on.
func (c *Controller) ShuffleEnabled() bool {
	return c.shuffle
}

// pickNext chooses the next track. Must only be called with a non-empty queue.
func (c *Controller) pickNext() track.QueuedTrack {
	if c.shuffle {
		qt, _ := c.queue.At(c.config.Intn(c.queue.Len()))
		return qt
	}
	qt, _ := c.queue.PopFront()
	return qt
}

// load acquires the audio resource for the track and starts it.
// The previous resource must already be released.
func (c *Controller) load(next track.QueuedTrack) error {
	c.generation++
	generation := c.generation

	if err := c.sink.Load(next.Track.Path, c.finishNotifier(generation)); err != nil {
		c.reset()
		c.report(notification.TitleError, err.Error())
		return errors.Wrapf(err, "failed to load %s", next.Track.Name)
	}
	if err := c.sink.Play(); err != nil {
		_ = c.sink.Unload()
		c.reset()
		c.report(notification.TitleError, err.Error())
		return errors.Wrapf(err, "failed to play %s", next.Track.Name)
	}

	c.current = &next
	c.state = StatePlaying
	c.offset = 0
	c.elapsed = 0
	c.displayName = next.Track.Name
	c.armed = true
	c.skipping = false

	zlog.Debug().Msgf("playback: playing: track=%s generation=%d queue=%d shuffle=%v",
		next.Track.Path, generation, c.queue.Len(), c.shuffle)

	c.sendEvent(Event{Type: EventTrackStarted, Track: c.current, State: c.state})
	c.armTimer()
	return nil
}

// release stops and unloads the current track. It disarms the end-of-track
// notification before stopping, so the stop itself cannot start another advance.
func (c *Controller) release(remember bool) {
	if c.current == nil {
		return
	}

	c.armed = false
	if err := c.sink.Stop(); err != nil {
		zlog.Warn().Err(err).Msgf("playback: failed to stop %s", c.current.Track.Name)
	}
	if err := c.sink.Unload(); err != nil {
		zlog.Warn().Err(err).Msgf("playback: failed to unload %s", c.current.Track.Name)
	}

	if remember {
		c.history = append(c.history, *c.current)
		if len(c.history) > c.config.HistorySize {
			c.history = c.history[len(c.history)-c.config.HistorySize:]
		}
	}
	c.current = nil
}

// reset returns to the stopped state with nothing displayed.
func (c *Controller) reset() {
	c.current = nil
	c.state = StateStopped
	c.offset = 0
	c.elapsed = 0
	c.displayName = ""
	c.armed = false
	c.skipping = false
	c.timerArmed = false
}

// armTimer starts a new time display timer; ticks from older timers become no-ops.
func (c *Controller) armTimer() {
	c.timerID++
	c.timerArmed = true
	c.sendEvent(Event{Type: EventTimerArmed, Track: c.current, State: c.state, TimerID: c.timerID})
}

// finishNotifier builds the callback handed to the sink for one generation.
func (c *Controller) finishNotifier(generation uint64) func() {
	return func() {
		if c.config.Dispatch != nil {
			c.config.Dispatch(generation)
			return
		}
		if err := c.HandleTrackFinished(generation); err != nil {
			zlog.Warn().Err(err).Msg("playback: auto advance failed")
		}
	}
}

// report shows a message to the user.
func (c *Controller) report(title, body string) {
	zlog.Debug().Msgf("playback: %s: %s", title, body)
	c.surface.Show(title, body)
}

// logQueue dumps the queue at debug level.
func (c *Controller) logQueue(reason string) {
	e := zlog.Debug()
	if !e.Enabled() {
		return
	}
	e.Strs("queue", c.queue.Paths()).Msgf("playback: queue after %s (%d entries)", reason, c.queue.Len())
}

// sendEvent sends an event without blocking.
func (c *Controller) sendEvent(e Event) {
	if c.closed {
		return
	}
	select {
	case c.eventCh <- e:
	default:
		// Channel full, drop event
	}
}

// logSurface is used when no message surface is configured.
type logSurface struct{}

func (logSurface) Show(title, body string) {
	zlog.Info().Msgf("%s: %s", title, body)
}
