package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/sprint/internal/engine"
)

type keyMap struct {
	Restart key.Binding
	Again   key.Binding
	Close   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "start game"),
		),
		Again: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play again"),
			key.WithDisabled(),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close results"),
			key.WithDisabled(),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// setResultsOpen toggles the bindings that only apply to the results panel.
func (k *keyMap) setResultsOpen(open bool) {
	k.Again.SetEnabled(open)
	k.Close.SetEnabled(open)
}

// setPhase relabels the restart binding for the session phase.
func (k *keyMap) setPhase(p engine.Phase) {
	label := "start game"
	switch p {
	case engine.PhaseActive:
		label = "restart"
	case engine.PhaseCompleted:
		label = "play again"
	}
	k.Restart.SetHelp("ctrl+r", label)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Again, k.Close, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
