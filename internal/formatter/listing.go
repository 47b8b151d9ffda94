package formatter

import (
	"fmt"
	"strings"
)

// Listing is a flattened view of a menu board.
type Listing struct {
	Title string
	Items []ListedItem
}

// ListedItem is one subject item and its menu.
type ListedItem struct {
	ID       string
	Name     string
	Disabled bool
	Options  []ListedOption
}

// ListedOption is one option row as the menu would show it.
type ListedOption struct {
	Label    string
	Disabled bool
}

// Output formats.
const (
	OutputTable = "table"
	OutputTree  = "tree"
)

// ValidOutputs lists the formats Render accepts.
var ValidOutputs = []string{OutputTable, OutputTree}

// Render renders l in the named format.
func Render(l Listing, format string, opts ColumnarOptions) (string, error) {
	switch format {
	case "", OutputTable:
		return RenderTable(l, opts), nil
	case OutputTree:
		return RenderTree(l, opts.NoColor), nil
	default:
		return "", fmt.Errorf("invalid output %q: valid values are %s", format, strings.Join(ValidOutputs, ", "))
	}
}

var listingColumns = []string{"ID", "NAME", "STATE", "OPTIONS"}

var listingHints = map[string]ColumnHint{
	"ID":      {Priority: 3, MaxWidth: 24},
	"NAME":    {Priority: 2, MaxWidth: 32},
	"STATE":   {Priority: 4},
	"OPTIONS": {Priority: 1},
}

// RenderTable renders one line per item with its options in a single
// column. Disabled options are bracketed.
func RenderTable(l Listing, opts ColumnarOptions) string {
	rows := make([][]string, len(l.Items))
	muted := make(map[int]bool)
	for i, it := range l.Items {
		rows[i] = []string{it.ID, it.Name, itemState(it), optionSummary(it.Options)}
		if it.Disabled {
			muted[i] = true
		}
	}
	if opts.ColumnHints == nil {
		opts.ColumnHints = listingHints
	}
	if opts.MutedRows == nil {
		opts.MutedRows = muted
	}
	table := RenderColumnarTable(listingColumns, rows, opts)
	if l.Title == "" {
		return table
	}
	title := l.Title
	if !opts.NoColor {
		title = keyStyle.Bold(true).Render(title)
	}
	return title + "\n\n" + table
}

func itemState(it ListedItem) string {
	if it.Disabled {
		return "disabled"
	}
	return "enabled"
}

func optionSummary(options []ListedOption) string {
	if len(options) == 0 {
		return "(no actions)"
	}
	parts := make([]string, len(options))
	for i, o := range options {
		if o.Disabled {
			parts[i] = "[" + o.Label + "]"
		} else {
			parts[i] = o.Label
		}
	}
	return strings.Join(parts, ", ")
}
