package actionmenu

import (
	"charm.land/bubbles/v2/key"
)

// KeyMode selects the extra bindings layered over the arrow keys.
type KeyMode string

const (
	// KeyModeVim adds j/k.
	KeyModeVim KeyMode = "vim"
	// KeyModeEmacs adds ctrl+n/ctrl+p and ctrl+g to close.
	KeyModeEmacs KeyMode = "emacs"
	// KeyModeFunction uses the arrow keys only.
	KeyModeFunction KeyMode = "function"
)

// DefaultKeyMode is used when Config.KeyMode is empty.
const DefaultKeyMode = KeyModeVim

// ValidKeyModes lists all valid key modes for validation.
var ValidKeyModes = []KeyMode{KeyModeVim, KeyModeEmacs, KeyModeFunction}

// IsValidKeyMode checks if a key mode string is valid.
func IsValidKeyMode(mode string) bool {
	for _, m := range ValidKeyModes {
		if string(m) == mode {
			return true
		}
	}
	return false
}

// KeyMap holds the bindings the menu reacts to while it has input focus.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultKeyMap returns the bindings for mode.
func DefaultKeyMap(mode KeyMode) KeyMap {
	km := KeyMap{
		Next:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Prev:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Select: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "select")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
	switch mode {
	case KeyModeEmacs:
		km.Next = key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("C-n", "next"))
		km.Prev = key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("C-p", "previous"))
		km.Close = key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("C-g", "close"))
	case KeyModeFunction:
	default:
		km.Next = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next"))
		km.Prev = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous"))
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Select, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
