package ui

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/menubutton/internal/actions"
	"github.com/oakwood-commons/menubutton/internal/cel"
	"github.com/oakwood-commons/menubutton/internal/config"
	"github.com/oakwood-commons/menubutton/pkg/actionmenu"
)

// rowModel is one board row: a subject item and the action menu that acts
// on it.
type rowModel struct {
	item  *config.Item
	specs []config.OptionSpec
	menu  *actionmenu.Model

	// predicate evaluation failures; the affected options are disabled
	warnings []error

	nameWidth int
	styles    boardStyles
}

type rowSettings struct {
	defaults  config.Defaults
	keyMode   actionmenu.KeyMode
	typeAhead bool
	noColor   bool
}

func newRow(ctx context.Context, item *config.Item, specs []config.OptionSpec, eval *cel.Evaluator, s rowSettings) (*rowModel, error) {
	opts, warnings, err := actions.Options(specs, item, eval)
	if err != nil {
		return nil, err
	}
	icon := s.defaults.Icon
	if item.Icon != "" {
		icon = item.Icon
	}
	menu, err := actionmenu.New(actionmenu.Config{
		Context:     ctx,
		Item:        item,
		Icon:        icon,
		TooltipText: s.defaults.TooltipText,
		IconSize:    s.defaults.IconSize,
		Disabled:    item.Disabled,
		Options:     opts,
		KeyMode:     s.keyMode,
		TypeAhead:   s.typeAhead,
		NoColor:     s.noColor,
		MaxWidth:    s.defaults.MaxWidth,
	})
	if err != nil {
		return nil, err
	}
	return &rowModel{
		item:     item,
		specs:    specs,
		menu:     menu,
		warnings: warnings,
		styles:   newBoardStyles(s.noColor),
	}, nil
}

func (r *rowModel) ID() string    { return r.menu.ID() }
func (r *rowModel) Title() string { return r.item.Name }

func (r *rowModel) Init() tea.Cmd { return r.menu.Init() }

func (r *rowModel) Update(msg tea.Msg) (*rowModel, tea.Cmd) {
	var cmd tea.Cmd
	r.menu, cmd = r.menu.Update(msg)
	return r, cmd
}

func (r *rowModel) Focus() tea.Cmd { return r.menu.Focus() }

// Blur leaves the menu state alone; an open menu stays open.
func (r *rowModel) Blur() { r.menu.Blur() }

func (r *rowModel) Focused() bool { return r.menu.Focused() }

// prefixWidth is the number of cells before the trigger.
func (r *rowModel) prefixWidth() int {
	return 2 + r.nameWidth + 2
}

// Height is the number of lines View renders.
func (r *rowModel) Height() int {
	return r.menu.Height()
}

// spec returns the option spec behind menu option index.
func (r *rowModel) spec(index int) (config.OptionSpec, bool) {
	if index < 0 || index >= len(r.specs) {
		return config.OptionSpec{}, false
	}
	return r.specs[index], true
}

func (r *rowModel) View() string {
	marker := "  "
	if r.Focused() {
		marker = r.styles.Marker.Render("▸ ")
	}
	name := runewidth.FillRight(runewidth.Truncate(r.item.Name, r.nameWidth, "…"), r.nameWidth)
	switch {
	case r.menu.Disabled():
		name = r.styles.Disabled.Render(name)
	case r.Focused():
		name = r.styles.Focused.Render(name)
	default:
		name = r.styles.Name.Render(name)
	}

	lines := strings.Split(r.menu.View(), "\n")
	indent := strings.Repeat(" ", r.prefixWidth())
	var b strings.Builder
	b.WriteString(marker + name + "  " + lines[0])
	if len(r.warnings) > 0 {
		b.WriteString(" " + r.styles.Warning.Render("!"))
	}
	for _, line := range lines[1:] {
		b.WriteString("\n" + indent + line)
	}
	return b.String()
}
