// Package ui provides the terminal front end of the player.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirplayer/internal/app/notification"
	"github.com/osa030/dirplayer/internal/app/playback"
)

// upNextCount is how many queued names the player box lists.
const upNextCount = 3

// Messages posted into the program.
type (
	tickMsg struct {
		id uint64
	}

	trackFinishedMsg struct {
		generation uint64
	}
)

// TrackFinished wraps an end-of-track notification so it can be sent into the
// running program. Use it as the controller's dispatch target.
func TrackFinished(generation uint64) tea.Msg {
	return trackFinishedMsg{generation: generation}
}

// Options configures the model.
type Options struct {
	Title      string
	StartDir   string
	Extensions []string

	// OnEvent observes every playback event after the UI handled it.
	OnEvent func(playback.Event)
}

// Model is the bubbletea model of the player.
type Model struct {
	ctx   context.Context
	ctrl  *playback.Controller
	modal *ModalSurface

	picker filepicker.Model
	keys   keyMap
	opts   Options

	width  int
	height int
}

// New creates the model. The controller must report its messages to modal.
func New(ctx context.Context, ctrl *playback.Controller, modal *ModalSurface, opts Options) *Model {
	picker := filepicker.New()
	picker.CurrentDirectory = opts.StartDir
	picker.AllowedTypes = allowedTypes(opts.Extensions)

	if opts.Title == "" {
		opts.Title = "dirplayer"
	}

	return &Model{
		ctx:    ctx,
		ctrl:   ctrl,
		modal:  modal,
		picker: picker,
		keys:   defaultKeyMap(),
		opts:   opts,
	}
}

// allowedTypes adds upper-case variants, since the chooser matches suffixes exactly.
func allowedTypes(extensions []string) []string {
	seen := make(map[string]bool)
	types := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		for _, v := range []string{strings.ToLower(ext), strings.ToUpper(ext)} {
			if !seen[v] {
				seen[v] = true
				types = append(types, v)
			}
		}
	}
	return types
}

func (m *Model) Init() tea.Cmd {
	return m.picker.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// The chooser sizes itself from the same message.

	case tickMsg:
		if _, ok := m.ctrl.Tick(msg.id); ok {
			return m, m.tick(msg.id)
		}
		return m, nil

	case trackFinishedMsg:
		if err := m.ctrl.HandleTrackFinished(msg.generation); err != nil {
			zlog.Debug().Err(err).Msg("ui: auto advance failed")
		}
		return m, m.drainEvents()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.modal.Open() {
			// The modal takes every key until dismissed.
			if key.Matches(msg, m.keys.Dismiss) {
				m.modal.Dismiss()
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.PlayPause):
			m.logErr("play/pause", m.ctrl.TogglePlayPause(m.ctx))
			return m, m.drainEvents()
		case key.Matches(msg, m.keys.Skip):
			m.logErr("skip", m.ctrl.Skip())
			return m, m.drainEvents()
		case key.Matches(msg, m.keys.Previous):
			m.logErr("previous", m.ctrl.Previous())
			return m, m.drainEvents()
		case key.Matches(msg, m.keys.Shuffle):
			m.ctrl.ToggleShuffle()
			return m, m.drainEvents()
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.logErr("select", m.ctrl.SelectFile(m.ctx, path))
		return m, tea.Batch(cmd, m.drainEvents())
	}

	return m, cmd
}

// drainEvents forwards pending playback events and schedules the timer they arm.
func (m *Model) drainEvents() tea.Cmd {
	var cmds []tea.Cmd
	for {
		select {
		case e, ok := <-m.ctrl.Events():
			if !ok {
				return tea.Batch(cmds...)
			}
			if e.Type == playback.EventTimerArmed {
				cmds = append(cmds, m.tick(e.TimerID))
			}
			if m.opts.OnEvent != nil {
				m.opts.OnEvent(e)
			}
		default:
			return tea.Batch(cmds...)
		}
	}
}

func (m *Model) tick(id uint64) tea.Cmd {
	return tea.Tick(m.ctrl.TickInterval(), func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m *Model) logErr(action string, err error) {
	if err != nil {
		zlog.Debug().Err(err).Msgf("ui: %s", action)
	}
}

func (m *Model) View() string {
	if msg, ok := m.modal.Current(); ok {
		return m.place(renderModal(msg))
	}

	sections := []string{
		headerStyle.Render(m.opts.Title),
		mutedStyle.Render(m.picker.CurrentDirectory),
		m.picker.View(),
		m.renderPlayer(m.ctrl.Status()),
		m.renderHelp(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// place centers content when the terminal size is known.
func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderPlayer(status playback.Status) string {
	name := status.FileName
	if name == "" {
		name = mutedStyle.Render("Nothing playing")
	} else {
		name = nowPlayingStyle.Render(name)
	}
	nowPlaying := lipgloss.JoinHorizontal(lipgloss.Top,
		name, "  ", elapsedStyle.Render(status.ElapsedText()))

	shuffle := buttonStyle
	if status.Shuffle {
		shuffle = activeButtonStyle
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		buttonStyle.Render(status.Label), " ",
		buttonStyle.Render("Skip"), " ",
		buttonStyle.Render("Previous"), " ",
		shuffle.Render("Shuffle"),
	)

	lines := []string{nowPlaying, controls}
	if next := upNext(status.Queue); next != "" {
		lines = append(lines, mutedStyle.Render(next))
	}
	return playerBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// upNext lists the first queued names.
func upNext(queue []string) string {
	if len(queue) == 0 {
		return ""
	}
	shown := queue
	if len(shown) > upNextCount {
		shown = shown[:upNextCount]
	}
	text := "Up next: " + strings.Join(shown, ", ")
	if rest := len(queue) - len(shown); rest > 0 {
		text += fmt.Sprintf(" (+%d)", rest)
	}
	return text
}

func (m *Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return mutedStyle.Render(strings.Join(parts, " • "))
}

func renderModal(msg notification.Message) string {
	title := modalInfoTitleStyle.Render(msg.Title)
	if msg.IsError() {
		title = modalErrorTitleStyle.Render(msg.Title)
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		msg.Body,
		"",
		mutedStyle.Render("[ OK ]  enter"),
	)
	return modalStyle.Render(body)
}
