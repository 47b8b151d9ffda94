package actionmenu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editDeleteArchive() []Option {
	return []Option{
		{Label: "Edit", Action: noopAction},
		{Label: "Delete", Action: noopAction},
		{Label: "Archive", Action: noopAction},
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nil item", func(c *Config) { c.Item = nil }},
		{"missing icon", func(c *Config) { c.Icon = "" }},
		{"missing tooltip", func(c *Config) { c.TooltipText = "" }},
		{"bad icon size", func(c *Config) { c.IconSize = "huge" }},
		{"empty label", func(c *Config) { c.Options = []Option{{Label: " ", Action: noopAction}} }},
		{"nil action", func(c *Config) { c.Options = []Option{{Label: "Edit"}} }},
		{"bad key mode", func(c *Config) { c.KeyMode = "nano" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(editDeleteArchive())
			tt.mutate(&cfg)
			m, err := New(cfg)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	m, err := New(testConfig(editDeleteArchive()))
	require.NoError(t, err)

	assert.False(t, m.IsOpen())
	assert.Equal(t, -1, m.FocusedIndex())
	assert.False(t, m.IsExecuting())
	assert.True(t, m.Mounted())
	assert.False(t, m.Focused())
	assert.Equal(t, "1x", m.Trigger().IconSize())
	assert.Equal(t, DefaultKeyMode, m.KeyMode())
	assert.Contains(t, m.ID(), idPrefix)
	assert.Nil(t, m.Init())
}

func TestNew_EmptyOptionsAllowed(t *testing.T) {
	m := newTestMenu(t, nil)
	assert.True(t, m.Activate())
	assert.True(t, m.IsOpen())
	assert.Equal(t, -1, m.FocusedIndex())
	assert.Empty(t, m.ItemAttrs())
}

func TestActivate_OpenEmitsOnceAndFocusesFirstEnabled(t *testing.T) {
	options := []Option{
		{Label: "Disabled", Action: noopAction, Disabled: true},
		{Label: "Enabled 1", Action: noopAction},
		{Label: "Enabled 2", Action: noopAction},
	}
	m := newTestMenu(t, options)
	log := subscribe(m)

	m.Activate()

	assert.True(t, m.IsOpen())
	assert.Equal(t, 1, m.FocusedIndex())
	require.Len(t, log.events, 1)
	assert.Equal(t, EventOpen, log.events[0].Type)
	assert.Equal(t, m.ID(), log.events[0].InstanceID)
}

func TestActivate_TogglesClosed(t *testing.T) {
	m := newTestMenu(t, editDeleteArchive())
	log := subscribe(m)

	m.Activate()
	m.Activate()

	assert.False(t, m.IsOpen())
	assert.Equal(t, -1, m.FocusedIndex())
	assert.Equal(t, 1, log.count(EventOpen))
	assert.Equal(t, 1, log.count(EventClose))
}

func TestActivate_SuppressedWhenDisabled(t *testing.T) {
	m := newTestMenu(t, editDeleteArchive(), func(c *Config) { c.Disabled = true })
	log := subscribe(m)

	assert.False(t, m.Activate())
	press(m, keyDown, keyEnter)

	assert.False(t, m.IsOpen())
	assert.Empty(t, log.events)
	assert.True(t, m.Disabled())
}

func TestSetDisabled_ForceClosesWithoutSelect(t *testing.T) {
	called := 0
	options := []Option{{Label: "Edit", Action: func(context.Context, any) error { called++; return nil }}}
	m := newTestMenu(t, options)
	m.Activate()
	log := subscribe(m)

	m.SetDisabled(true)

	assert.False(t, m.IsOpen())
	assert.Equal(t, -1, m.FocusedIndex())
	assert.Equal(t, 1, log.count(EventClose))
	assert.Equal(t, 0, log.count(EventSelect))
	assert.Equal(t, 0, called)

	// already closed: no second close notification
	m.SetDisabled(true)
	assert.Equal(t, 1, log.count(EventClose))

	m.SetDisabled(false)
	assert.True(t, m.Activate())
	assert.True(t, m.IsOpen())
}

func TestClose_ReturnsFocusToTrigger(t *testing.T) {
	m := newTestMenu(t, editDeleteArchive())
	m.Activate()
	assert.False(t, m.TriggerFocused())

	m.Close()
	assert.False(t, m.IsOpen())
	assert.True(t, m.TriggerFocused())
}

func TestSetOptions_RefocusesWhenFocusedRowDisappears(t *testing.T) {
	m := newTestMenu(t, editDeleteArchive())
	m.Activate()
	press(m, keyDown, keyDown)
	require.Equal(t, 2, m.FocusedIndex())

	require.NoError(t, m.SetOptions([]Option{
		{Label: "Only", Action: noopAction, Disabled: true},
		{Label: "Other", Action: noopAction},
	}))
	assert.Equal(t, 1, m.FocusedIndex())

	err := m.SetOptions([]Option{{Label: "broken"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Len(t, m.Options(), 2)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	m := newTestMenu(t, editDeleteArchive())
	first := &eventLog{}
	second := &eventLog{}
	unsubscribe := m.Subscribe(first.listen)
	m.Subscribe(second.listen)
	assert.NotPanics(t, func() { m.Subscribe(nil)() })

	m.Activate()
	unsubscribe()
	unsubscribe()
	m.Activate()

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 2)
}

func TestInstances_AreIndependent(t *testing.T) {
	a := newTestMenu(t, editDeleteArchive(), func(c *Config) { c.Item = &testItem{ID: 1} })
	b := newTestMenu(t, editDeleteArchive(), func(c *Config) { c.Item = &testItem{ID: 2} })
	require.NotEqual(t, a.ID(), b.ID())
	require.NotEqual(t, a.TriggerAttrs().Controls, b.TriggerAttrs().Controls)

	a.Activate()
	assert.True(t, a.IsOpen())
	assert.False(t, b.IsOpen())

	b.Activate()
	press(b, keyDown)
	assert.True(t, a.IsOpen())
	assert.Equal(t, 0, a.FocusedIndex())
	assert.Equal(t, 1, b.FocusedIndex())

	// a's completion never touches b
	cmd := a.Select(0)
	require.NotNil(t, cmd)
	assert.True(t, a.IsExecuting())
	assert.False(t, b.IsExecuting())
	done := actionCmd(t, cmd)()
	b.Update(done)
	assert.True(t, b.IsOpen())
	assert.True(t, a.IsExecuting())
	a.Update(done)
	assert.False(t, a.IsExecuting())
	assert.False(t, a.IsOpen())
	assert.True(t, b.IsOpen())
}

func TestUnmount_ResetsStateAndIgnoresLateMessages(t *testing.T) {
	release := make(chan struct{})
	options := []Option{{Label: "Slow", Action: func(context.Context, any) error {
		<-release
		return nil
	}}}
	m := newTestMenu(t, options)
	log := subscribe(m)
	m.Activate()
	run := actionCmd(t, m.Select(0))

	result := make(chan any, 1)
	go func() { result <- run() }()

	m.Unmount()
	assert.False(t, m.Mounted())
	assert.False(t, m.IsOpen())
	assert.False(t, m.IsExecuting())
	assert.Equal(t, -1, m.FocusedIndex())

	close(release)
	done := <-result
	before := len(log.events)
	assert.NotPanics(t, func() {
		_, cmd := m.Update(done)
		assert.Nil(t, cmd)
	})
	assert.Len(t, log.events, before)
	assert.False(t, m.Activate())
	press(m, keyDown)
	assert.False(t, m.IsOpen())
}
