// Package formatter renders a board listing for non-interactive output:
// a columnar table or an ASCII tree.
package formatter

import (
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var (
	defaultHeaderFG   = lipgloss.Color("12")
	defaultHeaderBG   = lipgloss.Color("236")
	defaultKeyColor   = lipgloss.Color("14")
	defaultValueColor = lipgloss.Color("248")
	defaultSeparator  = lipgloss.Color("240")
	defaultMuted      = lipgloss.Color("242")

	headerStyle    lipgloss.Style
	keyStyle       lipgloss.Style
	valueStyle     lipgloss.Style
	separatorStyle lipgloss.Style
	mutedStyle     lipgloss.Style
)

// TableColors controls the rendered colors. Nil fields fall back to the
// defaults.
type TableColors struct {
	HeaderFG       color.Color
	HeaderBG       color.Color
	KeyColor       color.Color
	ValueColor     color.Color
	SeparatorColor color.Color
	MutedColor     color.Color
}

func orDefault(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}

func applyTableTheme(tc TableColors) {
	headerStyle = lipgloss.NewStyle().Bold(true).
		Foreground(orDefault(tc.HeaderFG, defaultHeaderFG)).
		Background(orDefault(tc.HeaderBG, defaultHeaderBG))
	keyStyle = lipgloss.NewStyle().Foreground(orDefault(tc.KeyColor, defaultKeyColor))
	valueStyle = lipgloss.NewStyle().Foreground(orDefault(tc.ValueColor, defaultValueColor))
	separatorStyle = lipgloss.NewStyle().Foreground(orDefault(tc.SeparatorColor, defaultSeparator))
	mutedStyle = lipgloss.NewStyle().Faint(true).Foreground(orDefault(tc.MutedColor, defaultMuted))
}

// SetTableTheme overrides the package styles.
func SetTableTheme(tc TableColors) {
	applyTableTheme(tc)
}

//nolint:gochecknoinits // initialize default table theme for package consumers
func init() {
	applyTableTheme(TableColors{})
}

// truncate cuts s to maxLen display cells, ending in "..." when there is
// room for it.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

// padRight left-aligns s in width cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}

// padLeft right-aligns s in width cells.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(truncate(s, width), width)
}

// getTerminalWidth returns the terminal width, or a default if detection fails
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}

func joinCells(cells []string, sepWidth int) string {
	return strings.Join(cells, strings.Repeat(" ", sepWidth))
}
