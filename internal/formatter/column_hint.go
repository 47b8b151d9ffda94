package formatter

// ColumnHint provides display hints for one column of a columnar table.
type ColumnHint struct {
	// MaxWidth caps the column width in cells. 0 = no cap.
	MaxWidth int

	// Priority controls column importance when shrinking.
	// Higher values resist shrinking; lower values shrink first.
	Priority int

	// Align controls text alignment: "right" or "left" (default).
	Align string

	// DisplayName overrides the column header text.
	DisplayName string
}
