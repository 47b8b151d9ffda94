package formatter

import (
	"sort"
	"strconv"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

const (
	columnSepWidth = 2
	minColWidth    = 3
)

// ColumnarOptions configures columnar table rendering.
type ColumnarOptions struct {
	NoColor bool

	// TotalWidth is the total available width. If 0, uses terminal width.
	TotalWidth int

	// RowNumbers adds a leading "#" column.
	RowNumbers bool

	// HiddenColumns specifies columns to omit from output.
	HiddenColumns []string

	// ColumnHints are keyed by column name.
	ColumnHints map[string]ColumnHint

	// MutedRows are rendered faint (for example disabled items).
	MutedRows map[int]bool
}

// RenderColumnarTable renders rows under a header of column names.
func RenderColumnarTable(columns []string, rows [][]string, opts ColumnarOptions) string {
	columns, rows = filterColumns(columns, rows, opts.HiddenColumns)
	if len(columns) == 0 || len(rows) == 0 {
		return ""
	}

	hints := make([]ColumnHint, len(columns))
	headers := make([]string, len(columns))
	for i, col := range columns {
		hints[i] = opts.ColumnHints[col]
		headers[i] = col
		if hints[i].DisplayName != "" {
			headers[i] = hints[i].DisplayName
		}
	}

	total := opts.TotalWidth
	if total <= 0 {
		total = getTerminalWidth()
	}
	numWidth := 0
	if opts.RowNumbers {
		numWidth = max(len(strconv.Itoa(len(rows))), 1)
		total -= numWidth + columnSepWidth
	}
	widths := calculateColumnWidths(headers, rows, total, hints)

	var b strings.Builder
	head := make([]string, 0, len(headers)+1)
	if opts.RowNumbers {
		head = append(head, padRight("#", numWidth))
	}
	for i, h := range headers {
		head = append(head, padRight(h, widths[i]))
	}
	line := joinCells(head, columnSepWidth)
	sep := strings.Repeat("─", runewidth.StringWidth(line))
	if !opts.NoColor {
		line = headerStyle.Render(line)
		sep = separatorStyle.Render(sep)
	}
	b.WriteString(line + "\n" + sep + "\n")

	for r, row := range rows {
		cells := make([]string, 0, len(row)+1)
		if opts.RowNumbers {
			num := padRight(strconv.Itoa(r+1), numWidth)
			if !opts.NoColor {
				num = keyStyle.Render(num)
			}
			cells = append(cells, num)
		}
		for i := range widths {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if hints[i].Align == "right" {
				val = padLeft(val, widths[i])
			} else {
				val = padRight(val, widths[i])
			}
			if !opts.NoColor {
				if opts.MutedRows[r] {
					val = mutedStyle.Render(val)
				} else {
					val = valueStyle.Render(val)
				}
			}
			cells = append(cells, val)
		}
		b.WriteString(strings.TrimRight(joinCells(cells, columnSepWidth), " ") + "\n")
	}
	return b.String()
}

func filterColumns(columns []string, rows [][]string, hidden []string) ([]string, [][]string) {
	if len(hidden) == 0 {
		return columns, rows
	}
	hiddenSet := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		hiddenSet[h] = true
	}
	keep := make([]int, 0, len(columns))
	visible := make([]string, 0, len(columns))
	for i, col := range columns {
		if !hiddenSet[col] {
			keep = append(keep, i)
			visible = append(visible, col)
		}
	}
	out := make([][]string, len(rows))
	for r, row := range rows {
		next := make([]string, len(keep))
		for j, idx := range keep {
			if idx < len(row) {
				next[j] = row[idx]
			}
		}
		out[r] = next
	}
	return visible, out
}

// calculateColumnWidths sizes every column to its widest cell, applies
// MaxWidth caps, then shrinks the lowest-priority columns until the row
// fits available.
func calculateColumnWidths(headers []string, rows [][]string, available int, hints []ColumnHint) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}
	for i, h := range hints {
		if h.MaxWidth > 0 && widths[i] > h.MaxWidth {
			widths[i] = h.MaxWidth
		}
	}
	usable := available - (len(widths)-1)*columnSepWidth
	if usable <= 0 {
		return widths
	}
	return shrinkByPriority(widths, usable, hints)
}

// shrinkByPriority reduces widths to fit usable, lowest priority first.
// Among equal priorities the widest column gives way first.
func shrinkByPriority(widths []int, usable int, hints []ColumnHint) []int {
	excess := -usable
	for _, w := range widths {
		excess += w
	}
	if excess <= 0 {
		return widths
	}
	order := make([]int, len(widths))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := hints[order[a]].Priority, hints[order[b]].Priority
		if pa != pb {
			return pa < pb
		}
		return widths[order[a]] > widths[order[b]]
	})
	for _, idx := range order {
		if excess <= 0 {
			break
		}
		shrink := min(widths[idx]-minColWidth, excess)
		if shrink <= 0 {
			continue
		}
		widths[idx] -= shrink
		excess -= shrink
	}
	return widths
}
