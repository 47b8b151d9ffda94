package ui

import "charm.land/lipgloss/v2"

type boardStyles struct {
	Title    lipgloss.Style
	Name     lipgloss.Style
	Focused  lipgloss.Style
	Disabled lipgloss.Style
	Marker   lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
}

func newBoardStyles(noColor bool) boardStyles {
	if noColor {
		return boardStyles{
			Title:    lipgloss.NewStyle().Bold(true),
			Name:     lipgloss.NewStyle(),
			Focused:  lipgloss.NewStyle().Bold(true),
			Disabled: lipgloss.NewStyle().Faint(true),
			Marker:   lipgloss.NewStyle(),
			Warning:  lipgloss.NewStyle(),
			Info:     lipgloss.NewStyle(),
			Success:  lipgloss.NewStyle(),
			Error:    lipgloss.NewStyle().Bold(true),
		}
	}
	return boardStyles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Name:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Focused:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		Warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
