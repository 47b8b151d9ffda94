package ui

import (
	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/menubutton/pkg/actionmenu"
)

// KeyMap holds the board-level bindings plus the bindings of the focused
// menu, so one help view can show both.
type KeyMap struct {
	NextRow   key.Binding
	PrevRow   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	Menu actionmenu.KeyMap
}

// DefaultKeyMap returns the board bindings for mode. Function mode uses
// F-keys for help and quit, matching the menus' arrow-only bindings.
func DefaultKeyMap(mode actionmenu.KeyMode) KeyMap {
	km := KeyMap{
		NextRow:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next item")),
		PrevRow:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous item")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Menu:      actionmenu.DefaultKeyMap(mode),
	}
	if mode == actionmenu.KeyModeFunction {
		km.Help = key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help"))
		km.Quit = key.NewBinding(key.WithKeys("f10"), key.WithHelp("F10", "quit"))
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu.Next, k.Menu.Select, k.Menu.Close, k.NextRow, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Menu.Next, k.Menu.Prev, k.Menu.Select, k.Menu.Close},
		{k.NextRow, k.PrevRow},
		{k.Help, k.Quit},
	}
}
