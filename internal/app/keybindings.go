package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for cadence.
type KeyMap struct {
	// Navigation
	CursorDown   key.Binding
	CursorUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	// Browser
	Activate key.Binding
	Up       key.Binding
	Home     key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Refresh  key.Binding
	EditPath key.Binding

	// File actions
	Mark    key.Binding
	Queue   key.Binding
	CopyLib key.Binding
	MoveLib key.Binding
	Delete  key.Binding

	// Playback
	PlayPause key.Binding
	NextTrack key.Binding
	PrevTrack key.Binding
	Stop      key.Binding

	// Sources
	NextSource key.Binding
	PrevSource key.Binding

	// Modes
	CommandMode key.Binding
	SearchMode  key.Binding

	// Actions
	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		CursorDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		CursorUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "first entry"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last entry"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open directory / play file"),
		),
		Up: key.NewBinding(
			key.WithKeys("backspace", "h"),
			key.WithHelp("Backspace/h", "parent directory"),
		),
		Home: key.NewBinding(
			key.WithKeys("~"),
			key.WithHelp("~", "home directory"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo navigation"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+r", "redo navigation"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh listing"),
		),
		EditPath: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "edit path"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "mark entry"),
		),
		Queue: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append to queue"),
		),
		CopyLib: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy to library"),
		),
		MoveLib: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move to library"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete files"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play/pause"),
		),
		NextTrack: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next track"),
		),
		PrevTrack: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous track"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop playback"),
		),
		NextSource: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next source"),
		),
		PrevSource: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous source"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command mode"),
		),
		SearchMode: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
