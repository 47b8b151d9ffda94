package config

// Board is a menu-board file: a list of subject items that each get their
// own action menu. Options declared at the top level apply to every item
// that does not declare its own.
type Board struct {
	Title    string       `yaml:"title" toml:"title"`
	Defaults Defaults     `yaml:"defaults" toml:"defaults"`
	Options  []OptionSpec `yaml:"options" toml:"options"`
	Items    []Item       `yaml:"items" toml:"items"`
}

// Defaults holds the trigger and input settings shared by all menus on the
// board. Command-line flags override KeyMode and TypeAhead.
type Defaults struct {
	Icon        string `yaml:"icon" toml:"icon"`
	TooltipText string `yaml:"tooltip" toml:"tooltip"`
	IconSize    string `yaml:"icon_size" toml:"icon_size"`
	KeyMode     string `yaml:"key_mode" toml:"key_mode"`
	TypeAhead   bool   `yaml:"type_ahead" toml:"type_ahead"`
	MaxWidth    int    `yaml:"max_width" toml:"max_width"`
}

// Item is one subject item. Fields are free-form and visible to
// disabled_when predicates and message templates.
type Item struct {
	ID       string         `yaml:"id" toml:"id"`
	Name     string         `yaml:"name" toml:"name"`
	Icon     string         `yaml:"icon,omitempty" toml:"icon,omitempty"`
	Disabled bool           `yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	Fields   map[string]any `yaml:"fields,omitempty" toml:"fields,omitempty"`
	Options  []OptionSpec   `yaml:"options,omitempty" toml:"options,omitempty"`
}

// OptionSpec declares one menu option.
type OptionSpec struct {
	Label        string     `yaml:"label" toml:"label"`
	Disabled     bool       `yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	DisabledWhen string     `yaml:"disabled_when,omitempty" toml:"disabled_when,omitempty"`
	Action       ActionSpec `yaml:"action" toml:"action"`
}

// ActionSpec declares what selecting an option does. Message is a
// text/template rendered against the item's variables.
type ActionSpec struct {
	Type    string `yaml:"type" toml:"type"`
	Message string `yaml:"message,omitempty" toml:"message,omitempty"`
	Delay   string `yaml:"delay,omitempty" toml:"delay,omitempty"`
}

// Vars returns the variables an item exposes to predicates and templates:
// its fields plus "id" and "name".
func (it Item) Vars() map[string]any {
	vars := make(map[string]any, len(it.Fields)+2)
	for k, v := range it.Fields {
		vars[k] = v
	}
	vars["id"] = it.ID
	vars["name"] = it.Name
	return vars
}

// OptionsFor returns the item's own options, or the board-level ones.
func (b *Board) OptionsFor(it Item) []OptionSpec {
	if len(it.Options) > 0 {
		return it.Options
	}
	return b.Options
}
