package ui

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusSuccess
	statusError
)

// statusLine is the one-line message area under the rows.
type statusLine struct {
	kind statusKind
	text string
}

func (s *statusLine) set(kind statusKind, text string) {
	s.kind = kind
	s.text = text
}

func (s statusLine) View(st boardStyles, width int) string {
	if s.kind == statusNone {
		return ""
	}
	var style lipgloss.Style
	prefix := ""
	switch s.kind {
	case statusSuccess:
		style, prefix = st.Success, "✓ "
	case statusError:
		style, prefix = st.Error, "✗ "
	default:
		style = st.Info
	}
	text := prefix + s.text
	if width > 0 {
		text = ansi.Truncate(text, width, "…")
	}
	return style.Render(text)
}
