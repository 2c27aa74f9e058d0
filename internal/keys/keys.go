// Package keys contains keybinding definitions.
package keys

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

// KeyMap defines the keybindings for the dashboard.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Details   key.Binding
	Refresh   key.Binding
	Advance   key.Binding
	MoveBack  key.Binding
	Color     key.Binding
	Yank      key.Binding
	StageKeys StageKeys

	// General
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// StageKeys selects stages by position. Stages[i] clicks pipeline.Stages()[i].
type StageKeys struct {
	Stages []key.Binding
	Clear  key.Binding
}

// DefaultStageKeys binds 1..n to the stages in display order and 0/c to clear.
func DefaultStageKeys() StageKeys {
	stages := pipeline.Stages()
	bindings := make([]key.Binding, len(stages))
	for i, s := range stages {
		n := fmt.Sprintf("%d", i+1)
		bindings[i] = key.NewBinding(
			key.WithKeys(n),
			key.WithHelp(n, pipeline.Info(s).Label),
		)
	}
	return StageKeys{
		Stages: bindings,
		Clear: key.NewBinding(
			key.WithKeys("0", "c"),
			key.WithHelp("c", "clear stage"),
		),
	}
}

// Match returns the stage whose binding matches msg.
func (k StageKeys) Match(msg fmt.Stringer) (pipeline.Stage, bool) {
	stages := pipeline.Stages()
	for i, b := range k.Stages {
		if i >= len(stages) {
			break
		}
		if matches(msg, b) {
			return stages[i], true
		}
	}
	return 0, false
}

// MatchClear reports whether msg is a clear key.
func (k StageKeys) MatchClear(msg fmt.Stringer) bool {
	return matches(msg, k.Clear)
}

// matches mirrors key.Matches for any Stringer so callers need not convert
// tea.KeyMsg values built in tests.
func matches(msg fmt.Stringer, b key.Binding) bool {
	if !b.Enabled() {
		return false
	}
	s := msg.String()
	for _, k := range b.Keys() {
		if s == k {
			return true
		}
	}
	return false
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),

		// Actions
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle details"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh deals"),
		),
		Advance: key.NewBinding(
			key.WithKeys(">", "L"),
			key.WithHelp(">", "next stage"),
		),
		MoveBack: key.NewBinding(
			key.WithKeys("<", "H"),
			key.WithHelp("<", "previous stage"),
		),
		Color: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "stage color"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy deal id"),
		),
		StageKeys: DefaultStageKeys(),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close details"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StageKeys.Clear, k.Details, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		append(append([]key.Binding{}, k.StageKeys.Stages...), k.StageKeys.Clear), // Stages
		{k.Up, k.Down, k.Details, k.Escape},                                      // Navigation
		{k.Advance, k.MoveBack, k.Refresh, k.Color, k.Yank},                       // Actions
		{k.Help, k.Quit},                                                         // General
	}
}
