package actionmenu

import "strconv"

const (
	RoleMenu     = "menu"
	RoleMenuItem = "menuitem"
	// PopupMenu is the aria-haspopup value of the trigger.
	PopupMenu = "menu"
)

// State is a read-only snapshot of one menu instance.
type State struct {
	InstanceID   string
	Open         bool
	FocusedIndex int
	Executing    bool
}

// MenuID returns the id of the menu container, referenced by the trigger's
// aria-controls. It is stable for the lifetime of the instance.
func (s State) MenuID() string {
	return s.InstanceID + "-menu"
}

// TriggerID returns the id of the trigger element.
func (s State) TriggerID() string {
	return s.InstanceID + "-trigger"
}

// TriggerAttrs are the accessibility attributes of the trigger.
type TriggerAttrs struct {
	ID       string
	HasPopup string
	Expanded bool
	Controls string
}

// Attributes renders the attributes as name/value pairs.
func (a TriggerAttrs) Attributes() map[string]string {
	return map[string]string{
		"id":            a.ID,
		"aria-haspopup": a.HasPopup,
		"aria-expanded": strconv.FormatBool(a.Expanded),
		"aria-controls": a.Controls,
	}
}

// MenuAttrs are the accessibility attributes of the menu container.
type MenuAttrs struct {
	ID         string
	Role       string
	LabelledBy string
}

// Attributes renders the attributes as name/value pairs.
func (a MenuAttrs) Attributes() map[string]string {
	return map[string]string{
		"id":              a.ID,
		"role":            a.Role,
		"aria-labelledby": a.LabelledBy,
	}
}

// ItemAttrs are the accessibility attributes of one option row. TabIndex is
// 0 for the single keyboard-reachable row and -1 for every other row.
type ItemAttrs struct {
	Role     string
	Disabled bool
	TabIndex int
}

// Reachable reports whether the row is the sequential-navigation tab stop.
func (a ItemAttrs) Reachable() bool {
	return a.TabIndex == 0
}

// Attributes renders the attributes as name/value pairs.
func (a ItemAttrs) Attributes() map[string]string {
	return map[string]string{
		"role":          a.Role,
		"aria-disabled": strconv.FormatBool(a.Disabled),
		"tabindex":      strconv.Itoa(a.TabIndex),
	}
}

// DeriveTriggerAttrs derives the trigger attributes from s.
func DeriveTriggerAttrs(s State) TriggerAttrs {
	return TriggerAttrs{
		ID:       s.TriggerID(),
		HasPopup: PopupMenu,
		Expanded: s.Open,
		Controls: s.MenuID(),
	}
}

// DeriveMenuAttrs derives the container attributes. ok is false while the
// menu is closed, when no container is present.
func DeriveMenuAttrs(s State) (attrs MenuAttrs, ok bool) {
	if !s.Open {
		return MenuAttrs{}, false
	}
	return MenuAttrs{ID: s.MenuID(), Role: RoleMenu, LabelledBy: s.TriggerID()}, true
}

// DeriveItemAttrs derives the attributes of every option row.
func DeriveItemAttrs(s State, options []Option) []ItemAttrs {
	out := make([]ItemAttrs, len(options))
	for i, opt := range options {
		tab := -1
		if i == s.FocusedIndex {
			tab = 0
		}
		out[i] = ItemAttrs{Role: RoleMenuItem, Disabled: opt.Disabled, TabIndex: tab}
	}
	return out
}

// TriggerAttrs returns the trigger attributes for the current state.
func (m *Model) TriggerAttrs() TriggerAttrs {
	return DeriveTriggerAttrs(m.State())
}

// MenuAttrs returns the container attributes; ok is false while closed.
func (m *Model) MenuAttrs() (MenuAttrs, bool) {
	return DeriveMenuAttrs(m.State())
}

// ItemAttrs returns the attributes of every option row.
func (m *Model) ItemAttrs() []ItemAttrs {
	return DeriveItemAttrs(m.State(), m.options)
}
