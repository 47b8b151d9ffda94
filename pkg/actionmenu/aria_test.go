package actionmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerAttrs(t *testing.T) {
	m := newTestMenu(t, editDeleteArchive())

	closed := m.TriggerAttrs()
	assert.False(t, closed.Expanded)
	assert.Equal(t, PopupMenu, closed.HasPopup)
	assert.Equal(t, m.ID()+"-menu", closed.Controls)
	assert.Equal(t, m.ID()+"-trigger", closed.ID)
	assert.Equal(t, "false", closed.Attributes()["aria-expanded"])

	m.Activate()
	open := m.TriggerAttrs()
	assert.True(t, open.Expanded)
	assert.Equal(t, closed.Controls, open.Controls, "controls id is stable")
	assert.Equal(t, "true", open.Attributes()["aria-expanded"])
}

func TestMenuAttrs(t *testing.T) {
	m := newTestMenu(t, editDeleteArchive())
	_, ok := m.MenuAttrs()
	assert.False(t, ok)

	m.Activate()
	attrs, ok := m.MenuAttrs()
	require.True(t, ok)
	assert.Equal(t, RoleMenu, attrs.Role)
	assert.Equal(t, m.TriggerAttrs().Controls, attrs.ID)
	assert.Equal(t, m.TriggerAttrs().ID, attrs.LabelledBy)
	assert.Equal(t, map[string]string{
		"id":              attrs.ID,
		"role":            "menu",
		"aria-labelledby": attrs.LabelledBy,
	}, attrs.Attributes())
}

func TestItemAttrs_SingleTabStop(t *testing.T) {
	options := []Option{
		{Label: "A", Action: noopAction},
		{Label: "B", Action: noopAction, Disabled: true},
		{Label: "C", Action: noopAction},
	}
	m := newTestMenu(t, options)
	m.Activate()
	press(m, keyDown)
	require.Equal(t, 2, m.FocusedIndex())

	attrs := m.ItemAttrs()
	require.Len(t, attrs, 3)
	reachable := 0
	for i, a := range attrs {
		assert.Equal(t, RoleMenuItem, a.Role)
		assert.Equal(t, options[i].Disabled, a.Disabled)
		if a.Reachable() {
			reachable++
			assert.Equal(t, 2, i)
		} else {
			assert.Equal(t, -1, a.TabIndex)
		}
	}
	assert.Equal(t, 1, reachable)
	assert.Equal(t, "true", attrs[1].Attributes()["aria-disabled"])
	assert.Equal(t, "0", attrs[2].Attributes()["tabindex"])
}

func TestDeriveItemAttrs_NoFocus(t *testing.T) {
	attrs := DeriveItemAttrs(State{FocusedIndex: -1}, opts(true, true))
	for _, a := range attrs {
		assert.False(t, a.Reachable())
	}
}

func TestInstances_HaveDistinctIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		m := newTestMenu(t, editDeleteArchive())
		controls := m.TriggerAttrs().Controls
		require.False(t, seen[controls], "duplicate menu id %s", controls)
		seen[controls] = true
	}
}
