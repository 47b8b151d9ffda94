package actionmenu

import (
	"charm.land/lipgloss/v2"
)

// Styles holds the lipgloss styles used by View.
type Styles struct {
	Row         lipgloss.Style
	RowFocused  lipgloss.Style
	RowDisabled lipgloss.Style
	Spinner     lipgloss.Style
}

// DefaultStyles returns the built-in palette, or attribute-only styles when
// noColor is set.
func DefaultStyles(noColor bool) Styles {
	if noColor {
		return Styles{
			Row:         lipgloss.NewStyle(),
			RowFocused:  lipgloss.NewStyle().Reverse(true),
			RowDisabled: lipgloss.NewStyle().Faint(true),
			Spinner:     lipgloss.NewStyle(),
		}
	}
	return Styles{
		Row:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
		RowFocused:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("81")).Bold(true),
		RowDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("236")),
		Spinner:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	}
}
