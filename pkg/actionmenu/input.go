package actionmenu

import (
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"
)

// Target identifies what a screen cell belongs to.
type Target int

const (
	TargetNone Target = iota
	TargetTrigger
	TargetItem
)

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.typeBuf = ""
		if m.open {
			m.log.V(1).Info("menu dismissed", "key", msg.String())
			m.closeMenu()
		}
		return nil
	case key.Matches(msg, m.keys.Next):
		m.navigate(Forward)
		return nil
	case key.Matches(msg, m.keys.Prev):
		m.navigate(Backward)
		return nil
	case key.Matches(msg, m.keys.Select):
		if !m.open {
			// the trigger's own keyboard click
			m.Activate()
			return nil
		}
		if m.focusedIndex == -1 {
			return nil
		}
		return m.Select(m.focusedIndex)
	}
	if m.open && m.typeAhead {
		m.typeAheadKey(msg.Text)
	}
	return nil
}

// navigate opens a closed menu (focus lands on the first enabled option) or
// moves focus to the next enabled option in dir.
func (m *Model) navigate(dir Direction) {
	m.typeBuf = ""
	if !m.open {
		m.Activate()
		return
	}
	m.focusedIndex = NextEnabledIndex(m.options, m.focusedIndex, dir)
}

// typeAheadKey moves focus to the enabled option that best matches the
// typed prefix. A key that breaks the match restarts the buffer.
func (m *Model) typeAheadKey(text string) {
	runes := []rune(text)
	if len(runes) != 1 || !unicode.IsPrint(runes[0]) || unicode.IsSpace(runes[0]) {
		return
	}
	m.typeBuf += text
	if idx := m.matchLabel(m.typeBuf); idx >= 0 {
		m.focusedIndex = idx
		return
	}
	m.typeBuf = text
	if idx := m.matchLabel(m.typeBuf); idx >= 0 {
		m.focusedIndex = idx
	}
}

func (m *Model) matchLabel(pattern string) int {
	labels := make([]string, 0, len(m.options))
	indexes := make([]int, 0, len(m.options))
	for i, opt := range m.options {
		if opt.Enabled() {
			labels = append(labels, opt.Label)
			indexes = append(indexes, i)
		}
	}
	matches := fuzzy.Find(pattern, labels)
	if len(matches) == 0 {
		return -1
	}
	return indexes[matches[0].Index]
}

// HitTest maps a cell, relative to the trigger's top-left corner, to the
// trigger or an option row.
func (m *Model) HitTest(x, y int) (Target, int) {
	if x < 0 || y < 0 {
		return TargetNone, -1
	}
	if y == 0 {
		if x < m.trigger.Width() {
			return TargetTrigger, -1
		}
		return TargetNone, -1
	}
	if !m.open || x >= m.MenuWidth() {
		return TargetNone, -1
	}
	if idx := y - 1; idx < len(m.options) {
		return TargetItem, idx
	}
	return TargetNone, -1
}

func (m *Model) handleMouse(msg tea.MouseClickMsg) tea.Cmd {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	target, idx := m.HitTest(mouse.X-m.originX, mouse.Y-m.originY)
	switch target {
	case TargetTrigger:
		m.Activate()
	case TargetItem:
		return m.Select(idx)
	}
	return nil
}
