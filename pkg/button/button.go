// Package button is the simple action button: one clickable control with an
// icon, a tooltip and a disabled flag. It emits a single activation per
// click and nothing while disabled.
package button

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// DefaultIconSize is used when Config.IconSize is empty.
const DefaultIconSize = "1x"

var (
	// ErrMissingIcon is returned when Config.Icon is empty.
	ErrMissingIcon = errors.New("button icon is required")
	// ErrMissingTooltip is returned when Config.TooltipText is empty.
	ErrMissingTooltip = errors.New("button tooltip text is required")
	// ErrInvalidIconSize is returned for sizes outside ValidIconSizes.
	ErrInvalidIconSize = errors.New("invalid icon size")
)

// ValidIconSizes lists the accepted icon sizes, smallest first. The size
// controls horizontal padding around the glyph.
var ValidIconSizes = []string{"xs", "sm", "1x", "lg", "2x", "3x"}

// glyphs maps icon identifiers to terminal glyphs. Identifiers may carry a
// style prefix ("fa-solid fa-pen") and an "fa-" prefix; both are ignored.
var glyphs = map[string]string{
	"ellipsis-vertical": "⋮",
	"ellipsis":          "…",
	"bars":              "≡",
	"gear":              "⚙",
	"pen":               "✎",
	"trash":             "✗",
	"check":             "✓",
	"plus":              "+",
	"caret-down":        "▾",
}

// Config is the caller-facing description of a button.
type Config struct {
	Icon        string
	TooltipText string
	IconSize    string
	Disabled    bool
}

// Model is a simple action button.
type Model struct {
	icon     string
	tooltip  string
	size     string
	disabled bool

	highlighted bool
	noColor     bool

	// OnActivate is called once per accepted click.
	OnActivate func()
}

// New validates cfg and returns a button.
func New(cfg Config) (*Model, error) {
	icon := strings.TrimSpace(cfg.Icon)
	if icon == "" {
		return nil, ErrMissingIcon
	}
	if strings.TrimSpace(cfg.TooltipText) == "" {
		return nil, ErrMissingTooltip
	}
	size := strings.TrimSpace(cfg.IconSize)
	if size == "" {
		size = DefaultIconSize
	}
	if !IsValidIconSize(size) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIconSize, size)
	}
	return &Model{
		icon:     icon,
		tooltip:  cfg.TooltipText,
		size:     size,
		disabled: cfg.Disabled,
	}, nil
}

// IsValidIconSize reports whether size is one of ValidIconSizes.
func IsValidIconSize(size string) bool {
	for _, s := range ValidIconSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Click activates the button. It returns false, and does not call
// OnActivate, when the button is disabled.
func (m *Model) Click() bool {
	if m.disabled {
		return false
	}
	if m.OnActivate != nil {
		m.OnActivate()
	}
	return true
}

func (m *Model) Icon() string { return m.icon }
func (m *Model) TooltipText() string { return m.tooltip }
func (m *Model) IconSize() string { return m.size }
func (m *Model) Disabled() bool { return m.disabled }

// SetDisabled toggles click suppression.
func (m *Model) SetDisabled(disabled bool) {
	m.disabled = disabled
}

// SetHighlighted marks the button as the logical focus target.
func (m *Model) SetHighlighted(highlighted bool) {
	m.highlighted = highlighted
}

// SetNoColor disables color in View.
func (m *Model) SetNoColor(noColor bool) {
	m.noColor = noColor
}

// Glyph resolves the icon identifier to the rendered glyph.
func (m *Model) Glyph() string {
	return Glyph(m.icon)
}

// Glyph resolves an icon identifier. Unknown identifiers render as-is.
func Glyph(icon string) string {
	fields := strings.Fields(icon)
	if len(fields) == 0 {
		return ""
	}
	name := strings.TrimPrefix(fields[len(fields)-1], "fa-")
	if g, ok := glyphs[name]; ok {
		return g
	}
	return name
}

func padding(size string) int {
	switch size {
	case "xs", "sm":
		return 0
	case "lg", "2x":
		return 2
	case "3x":
		return 3
	default:
		return 1
	}
}

// View renders the button on a single line.
func (m *Model) View() string {
	style := lipgloss.NewStyle().Padding(0, padding(m.size))
	if !m.noColor {
		style = style.Foreground(lipgloss.Color("81"))
		if m.highlighted {
			style = style.Background(lipgloss.Color("236")).Bold(true)
		}
		if m.disabled {
			style = style.Foreground(lipgloss.Color("240")).Faint(true)
		}
	} else if m.highlighted {
		style = style.Reverse(true)
	}
	return style.Render(m.Glyph())
}

// Width returns the display width of View.
func (m *Model) Width() int {
	return ansi.StringWidth(m.View())
}
