package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the player's key bindings. Keys not bound here go to the file chooser.
type keyMap struct {
	PlayPause key.Binding
	Skip      key.Binding
	Previous  key.Binding
	Shuffle   key.Binding
	Quit      key.Binding
	Dismiss   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space/p", "play/pause")),
		Skip:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		Previous:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous")),
		Shuffle:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Dismiss:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "ok")),
	}
}

// help returns the one-line key summary.
func (k keyMap) help() []key.Binding {
	return []key.Binding{k.PlayPause, k.Skip, k.Previous, k.Shuffle, k.Quit}
}
