// Package ui implements the menu board: a terminal screen listing subject
// items, each with its own independent action menu.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/menubutton/internal/actions"
	"github.com/oakwood-commons/menubutton/internal/cel"
	"github.com/oakwood-commons/menubutton/internal/config"
	"github.com/oakwood-commons/menubutton/internal/formatter"
	"github.com/oakwood-commons/menubutton/pkg/actionmenu"
	"github.com/oakwood-commons/menubutton/pkg/logger"
	"github.com/oakwood-commons/menubutton/pkg/settings"
)

// Mode controls how key presses are routed.
type Mode int

const (
	// NormalMode routes keys to the focused row.
	NormalMode Mode = iota
	// HelpMode shows the full key help and swallows other input.
	HelpMode
)

const (
	// headerLines is the title plus a blank line.
	headerLines  = 2
	maxNameWidth = 24
	minNameWidth = 4
)

// Options configures a board. Key mode, type-ahead and color come from
// the run settings in the context passed to NewModel.
type Options struct {
	Board *config.Board
	// Evaluator compiles disabled_when predicates. A new one is created
	// when nil.
	Evaluator *cel.Evaluator
}

// Model is the board's root model.
type Model struct {
	log logr.Logger

	title string
	rows  []*rowModel
	byID  map[string]*rowModel
	focus int
	mode  Mode

	keys      KeyMap
	help      help.Model
	status    statusLine
	styles    boardStyles
	nameWidth int

	width    int
	height   int
	quitting bool
}

// NewModel builds one row per board item and focuses the first row.
func NewModel(ctx context.Context, o Options) (*Model, error) {
	if o.Board == nil {
		return nil, errors.New("board is required")
	}
	eval := o.Evaluator
	if eval == nil {
		var err error
		if eval, err = cel.NewEvaluator(); err != nil {
			return nil, err
		}
	}
	run := settings.ForContext(ctx)
	mode := actionmenu.KeyMode(run.KeyMode)
	if mode == "" {
		mode = actionmenu.DefaultKeyMode
	}

	m := &Model{
		log:    logger.ForComponent(ctx, "board"),
		title:  o.Board.Title,
		byID:   make(map[string]*rowModel, len(o.Board.Items)),
		keys:   DefaultKeyMap(mode),
		help:   help.New(),
		styles: newBoardStyles(run.NoColor),
	}
	settings := rowSettings{
		defaults:  o.Board.Defaults,
		keyMode:   mode,
		typeAhead: run.TypeAhead,
		noColor:   run.NoColor,
	}
	for i := range o.Board.Items {
		item := &o.Board.Items[i]
		row, err := newRow(ctx, item, o.Board.OptionsFor(*item), eval, settings)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", item.ID, err)
		}
		for _, w := range row.warnings {
			m.log.Info("disabled_when failed; option disabled", "error", w.Error())
		}
		row.menu.Subscribe(m.onMenuEvent(row))
		m.rows = append(m.rows, row)
		m.byID[row.ID()] = row
		m.nameWidth = max(m.nameWidth, runewidth.StringWidth(item.Name))
	}
	m.nameWidth = min(max(m.nameWidth, minNameWidth), maxNameWidth)
	if len(m.rows) > 0 {
		m.rows[0].Focus()
	}
	m.layout()
	return m, nil
}

func (m *Model) onMenuEvent(row *rowModel) actionmenu.Listener {
	return func(ev actionmenu.Event) {
		m.log.V(1).Info("menu event", "item", row.item.ID, "event", ev.Type.String(), "index", ev.Index)
		if ev.Type == actionmenu.EventSelect && ev.Option != nil {
			m.status.set(statusInfo, fmt.Sprintf("Running %s on %s…", ev.Option.Label, row.Title()))
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.rows))
	for _, r := range m.rows {
		cmds = append(cmds, r.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	case tea.MouseClickMsg:
		cmd = m.handleMouse(msg)
	case actionmenu.ActionDoneMsg:
		cmd = m.handleDone(msg)
	case actionmenu.ActionErrorMsg:
		m.handleError(msg)
	case spinner.TickMsg:
		cmds := make([]tea.Cmd, 0, len(m.rows))
		for _, r := range m.rows {
			_, c := r.Update(msg)
			cmds = append(cmds, c)
		}
		cmd = tea.Batch(cmds...)
	}
	m.layout()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}
	if m.mode == HelpMode {
		if key.Matches(msg, m.keys.Help, m.keys.Quit, m.keys.Menu.Close) {
			m.mode = NormalMode
		}
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.NextRow):
		m.moveFocus(1)
		return nil
	case key.Matches(msg, m.keys.PrevRow):
		m.moveFocus(-1)
		return nil
	}

	row := m.focusedRow()
	if row == nil || !row.menu.IsOpen() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Help):
			m.mode = HelpMode
			return nil
		}
	}
	if row == nil {
		return nil
	}
	_, cmd := row.Update(msg)
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseClickMsg) tea.Cmd {
	if m.mode == HelpMode {
		return nil
	}
	mouse := msg.Mouse()
	for i, r := range m.rows {
		x, y := r.menu.Position()
		if target, _ := r.menu.HitTest(mouse.X-x, mouse.Y-y); target == actionmenu.TargetNone {
			continue
		}
		m.setFocus(i)
		_, cmd := r.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleDone(msg actionmenu.ActionDoneMsg) tea.Cmd {
	row, ok := m.byID[msg.InstanceID]
	if !ok || !row.menu.IsExecuting() {
		return nil
	}
	_, cmd := row.Update(msg)
	if row.menu.IsExecuting() || msg.Err != nil {
		return cmd
	}
	spec, _ := row.spec(msg.Index)
	text, err := actions.Message(spec.Action, row.item)
	if err != nil || text == "" {
		text = fmt.Sprintf("%s on %s done", spec.Label, row.Title())
	}
	m.status.set(statusSuccess, text)
	return cmd
}

func (m *Model) handleError(msg actionmenu.ActionErrorMsg) {
	row, ok := m.byID[msg.InstanceID]
	if !ok {
		return
	}
	label := ""
	if msg.Option != nil {
		label = msg.Option.Label
	}
	var panicErr *actionmenu.ActionPanicError
	if errors.As(msg.Err, &panicErr) {
		m.status.set(statusError, fmt.Sprintf("%s on %s crashed: %v", label, row.Title(), panicErr.Value))
		return
	}
	m.status.set(statusError, fmt.Sprintf("%s on %s failed: %v", label, row.Title(), msg.Err))
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	for _, r := range m.rows {
		r.menu.Unmount()
	}
	return tea.Quit
}

func (m *Model) moveFocus(delta int) {
	n := len(m.rows)
	if n == 0 {
		return
	}
	m.setFocus(((m.focus+delta)%n + n) % n)
}

func (m *Model) setFocus(i int) {
	if i == m.focus {
		return
	}
	m.rows[m.focus].Blur()
	m.focus = i
	m.rows[i].Focus()
}

func (m *Model) focusedRow() *rowModel {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.focus]
}

// layout assigns every menu the screen cell of its trigger so mouse
// clicks can be hit-tested. Rows below an open menu move down.
func (m *Model) layout() {
	y := headerLines
	for _, r := range m.rows {
		r.nameWidth = m.nameWidth
		r.menu.SetPosition(r.prefixWidth(), y)
		y += r.Height()
	}
}

// Focused returns the index of the focused row.
func (m *Model) Focused() int { return m.focus }

// Mode returns the current routing mode.
func (m *Model) Mode() Mode { return m.mode }

// Menu returns the action menu of row i.
func (m *Model) Menu(i int) *actionmenu.Model { return m.rows[i].menu }

// Len returns the number of rows.
func (m *Model) Len() int { return len(m.rows) }

// Status returns the status line text.
func (m *Model) Status() string { return m.status.text }

// Listing flattens the board as the menus currently see it.
func (m *Model) Listing() formatter.Listing {
	l := formatter.Listing{Title: m.title, Items: make([]formatter.ListedItem, len(m.rows))}
	for i, r := range m.rows {
		opts := r.menu.Options()
		listed := make([]formatter.ListedOption, len(opts))
		for j, o := range opts {
			listed[j] = formatter.ListedOption{Label: o.Label, Disabled: o.Disabled}
		}
		l.Items[i] = formatter.ListedItem{
			ID:       r.item.ID,
			Name:     r.item.Name,
			Disabled: r.menu.Disabled(),
			Options:  listed,
		}
	}
	return l
}

// Render returns the board as text.
func (m *Model) Render() string {
	var b strings.Builder
	title := m.title
	if title == "" {
		title = "Actions"
	}
	b.WriteString(m.styles.Title.Render(title) + "\n\n")
	for _, r := range m.rows {
		b.WriteString(r.View() + "\n")
	}
	b.WriteString("\n")
	if s := m.status.View(m.styles, m.width); s != "" {
		b.WriteString(s + "\n")
	}
	m.help.ShowAll = m.mode == HelpMode
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	// Enable keyboard enhancements for proper modifier key detection (e.g., Shift+Tab)
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}
