// Package actionmenu implements the two-level action button: a trigger
// button that toggles an attached option menu, with keyboard navigation,
// single-flight option execution and derived accessibility attributes.
//
// A Model is a Bubble Tea component. Hosts forward messages to Update and
// render View; outbound notifications are delivered to Subscribe listeners
// synchronously on the event loop.
package actionmenu

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/menubutton/pkg/button"
	"github.com/oakwood-commons/menubutton/pkg/logger"
)

const (
	defaultMaxWidth = 32
	minMenuWidth    = 8
	idPrefix        = "action-menu-"
)

// Config is the inbound configuration of one menu instance.
type Config struct {
	// Context is handed to every action. It also carries the logger.
	Context context.Context

	Item        any
	Icon        string
	TooltipText string
	IconSize    string
	Disabled    bool
	Options     []Option

	KeyMode KeyMode
	// TypeAhead moves focus to the option whose label best matches the
	// typed characters. Keys bound by KeyMode keep their binding, so in vim
	// mode "j" and "k" navigate and never start a match.
	TypeAhead bool
	NoColor   bool
	// MaxWidth caps the menu width in cells; labels are truncated to fit.
	MaxWidth int

	// OnError, when set, receives every failed action in addition to the
	// ActionErrorMsg command returned from Update.
	OnError func(ActionErrorMsg)
}

// Model is one action menu instance. All fields are private to the
// instance; nothing is shared between instances.
type Model struct {
	id  string
	ctx context.Context
	log logr.Logger

	item    any
	options []Option
	trigger *button.Model

	keys      KeyMap
	keyMode   KeyMode
	typeAhead bool
	typeBuf   string
	onError   func(ActionErrorMsg)

	open         bool
	focusedIndex int
	executing    bool
	mounted      bool
	hasFocus     bool
	seq          uint64

	subs      []subscription
	nextSubID int

	spinner  spinner.Model
	styles   Styles
	noColor  bool
	maxWidth int

	originX int
	originY int
}

// New validates cfg and mounts a closed menu.
func New(cfg Config) (*Model, error) {
	if cfg.Item == nil {
		return nil, fmt.Errorf("%w: subject item is required", ErrInvalidConfig)
	}
	trigger, err := button.New(button.Config{
		Icon:        cfg.Icon,
		TooltipText: cfg.TooltipText,
		IconSize:    cfg.IconSize,
		Disabled:    cfg.Disabled,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := validateOptions(cfg.Options); err != nil {
		return nil, err
	}
	mode := cfg.KeyMode
	if mode == "" {
		mode = DefaultKeyMode
	}
	if !IsValidKeyMode(string(mode)) {
		return nil, fmt.Errorf("%w: unknown key mode %q", ErrInvalidConfig, mode)
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	maxWidth := cfg.MaxWidth
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	if maxWidth < minMenuWidth {
		maxWidth = minMenuWidth
	}

	id := idPrefix + uuid.NewString()
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		id:           id,
		ctx:          ctx,
		log:          logger.ForComponent(ctx, "actionmenu", "id", id),
		item:         cfg.Item,
		options:      cfg.Options,
		trigger:      trigger,
		keys:         DefaultKeyMap(mode),
		keyMode:      mode,
		typeAhead:    cfg.TypeAhead,
		onError:      cfg.OnError,
		focusedIndex: -1,
		mounted:      true,
		spinner:      s,
		styles:       DefaultStyles(cfg.NoColor),
		noColor:      cfg.NoColor,
		maxWidth:     maxWidth,
	}
	trigger.SetNoColor(cfg.NoColor)
	trigger.OnActivate = m.toggle
	return m, nil
}

// ID returns the process-unique instance id.
func (m *Model) ID() string { return m.id }

// State returns a snapshot of the menu state.
func (m *Model) State() State {
	return State{
		InstanceID:   m.id,
		Open:         m.open,
		FocusedIndex: m.focusedIndex,
		Executing:    m.executing,
	}
}

func (m *Model) IsOpen() bool { return m.open }
func (m *Model) FocusedIndex() int { return m.focusedIndex }
func (m *Model) IsExecuting() bool { return m.executing }
func (m *Model) Mounted() bool { return m.mounted }
func (m *Model) Item() any { return m.item }
func (m *Model) Options() []Option { return m.options }
func (m *Model) KeyMap() KeyMap { return m.keys }
func (m *Model) KeyMode() KeyMode { return m.keyMode }
func (m *Model) Disabled() bool { return m.trigger.Disabled() }
func (m *Model) Trigger() *button.Model { return m.trigger }

// TriggerFocused reports whether logical focus sits on the trigger rather
// than on an option row.
func (m *Model) TriggerFocused() bool {
	return !m.open || m.focusedIndex == -1
}

// SetItem replaces the subject item handed to subsequent actions.
func (m *Model) SetItem(item any) {
	m.item = item
}

// SetOptions replaces the option list. While open, focus moves to the first
// enabled option if the focused row is gone or disabled.
func (m *Model) SetOptions(options []Option) error {
	if err := validateOptions(options); err != nil {
		return err
	}
	m.options = options
	if m.open {
		if m.focusedIndex < 0 || m.focusedIndex >= len(options) || options[m.focusedIndex].Disabled {
			m.focusedIndex = FirstEnabledIndex(options)
		}
	}
	return nil
}

// SetDisabled updates the caller's disabled flag. Disabling force-closes an
// open menu without selecting anything.
func (m *Model) SetDisabled(disabled bool) {
	m.trigger.SetDisabled(disabled)
	if disabled && m.open {
		m.log.V(1).Info("menu force-closed", "reason", "disabled")
		m.closeMenu()
	}
}

// SetNoColor switches between colored and attribute-only rendering.
func (m *Model) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.styles = DefaultStyles(noColor)
	m.trigger.SetNoColor(noColor)
}

// SetPosition records the screen cell of the trigger's top-left corner so
// mouse coordinates can be translated.
func (m *Model) SetPosition(x, y int) {
	m.originX = x
	m.originY = y
}

// Position returns the cell recorded by SetPosition.
func (m *Model) Position() (x, y int) {
	return m.originX, m.originY
}

// Activate is a click on the trigger. It toggles the menu unless disabled.
func (m *Model) Activate() bool {
	if !m.mounted {
		return false
	}
	return m.trigger.Click()
}

func (m *Model) toggle() {
	if m.open {
		m.closeMenu()
		return
	}
	m.openMenu()
}

func (m *Model) openMenu() {
	if m.open {
		return
	}
	m.open = true
	m.typeBuf = ""
	m.focusedIndex = FirstEnabledIndex(m.options)
	m.log.V(1).Info("menu opened", "focused", m.focusedIndex)
	m.emit(Event{Type: EventOpen})
}

func (m *Model) closeMenu() {
	if !m.open {
		return
	}
	m.open = false
	m.typeBuf = ""
	m.focusedIndex = -1
	m.log.V(1).Info("menu closed")
	m.emit(Event{Type: EventClose})
}

// Close closes the menu and returns logical focus to the trigger. It is the
// Escape transition.
func (m *Model) Close() {
	if !m.mounted {
		return
	}
	m.closeMenu()
}

// Unmount tears the instance down. State returns to its initial values,
// listeners are dropped, and every later message, including the completion
// of an in-flight action, is ignored.
func (m *Model) Unmount() {
	m.mounted = false
	m.open = false
	m.focusedIndex = -1
	m.executing = false
	m.hasFocus = false
	m.typeBuf = ""
	m.subs = nil
	m.log.V(1).Info("menu unmounted")
}

// Focus gives the container input focus.
func (m *Model) Focus() tea.Cmd {
	m.hasFocus = true
	return nil
}

// Blur removes input focus. The menu state is left unchanged.
func (m *Model) Blur() {
	m.hasFocus = false
}

// Focused reports whether the container has input focus.
func (m *Model) Focused() bool {
	return m.hasFocus
}

// Init implements the Bubble Tea component contract.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses (while focused), mouse clicks, spinner ticks
// and action completions. Messages addressed to other instances are
// ignored.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.mounted {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !m.hasFocus {
			return m, nil
		}
		return m, m.handleKey(msg)
	case tea.MouseClickMsg:
		return m, m.handleMouse(msg)
	case ActionDoneMsg:
		return m, m.finish(msg)
	case spinner.TickMsg:
		if !m.executing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Height returns the number of lines View renders.
func (m *Model) Height() int {
	if !m.open {
		return 1
	}
	return 1 + max(len(m.options), 1)
}

// MenuWidth returns the width in cells of every option row.
func (m *Model) MenuWidth() int {
	w := minMenuWidth
	for _, opt := range m.options {
		// two cells of focus marker, one of trailing padding
		w = max(w, runewidth.StringWidth(opt.Label)+3)
	}
	return min(w, m.maxWidth)
}

// View renders the trigger and, while open, one line per option.
func (m *Model) View() string {
	m.trigger.SetHighlighted(m.hasFocus && m.TriggerFocused())
	head := m.trigger.View()
	if m.executing {
		head += " " + m.styles.Spinner.Render(m.spinner.View())
	}
	if !m.open {
		return head
	}
	lines := make([]string, 0, 1+len(m.options))
	lines = append(lines, head)
	width := m.MenuWidth()
	if len(m.options) == 0 {
		lines = append(lines, m.styles.RowDisabled.Render(runewidth.FillRight("  (no actions)", width)))
	}
	for i, opt := range m.options {
		lines = append(lines, m.renderRow(i, opt, width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(i int, opt Option, width int) string {
	marker := "  "
	if i == m.focusedIndex {
		marker = "› "
	}
	labelWidth := width - 3
	label := runewidth.FillRight(runewidth.Truncate(opt.Label, labelWidth, "…"), labelWidth)
	text := marker + label + " "

	style := m.styles.Row
	switch {
	case opt.Disabled || m.executing:
		style = m.styles.RowDisabled
	case i == m.focusedIndex:
		style = m.styles.RowFocused
	}
	return style.Render(text)
}
