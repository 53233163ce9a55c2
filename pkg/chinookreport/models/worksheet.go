package models

// FormatRule is a named cell format applied to a column range.
type FormatRule string

const (
	// FormatNone leaves the cell format unchanged (width-only rule).
	FormatNone FormatRule = ""
	// FormatCenter centers cell contents.
	FormatCenter FormatRule = "center"
	// FormatCurrency centers and formats as $#,##0.00.
	FormatCurrency FormatRule = "currency"
	// FormatPercentage centers and formats as 0.00%.
	FormatPercentage FormatRule = "percentage"
)

// ColumnRange is a contiguous span of output columns (1-based, inclusive).
type ColumnRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Col returns a range covering a single column.
func Col(n int) ColumnRange {
	return ColumnRange{First: n, Last: n}
}

// Cols returns a range covering columns first through last.
func Cols(first, last int) ColumnRange {
	return ColumnRange{First: first, Last: last}
}

// ColumnFormat assigns a width and a format rule to a column range.
type ColumnFormat struct {
	// Range is the set of columns the rule applies to.
	Range ColumnRange `json:"range"`
	// Width is the column width in characters; 0 keeps the current width.
	Width float64 `json:"width,omitempty"`
	// Rule is the cell format.
	Rule FormatRule `json:"rule"`
}

// WorksheetSpec binds one ReportTable to a named sheet and its formatting.
type WorksheetSpec struct {
	// Sheet is the worksheet name, unique within the workbook.
	Sheet string `json:"sheet"`
	// Table is the data written to the sheet.
	Table *ReportTable `json:"-"`
	// IncludeIndex prefixes each row with the table's display index.
	IncludeIndex bool `json:"include_index"`
	// Formats are applied in order; later rules win on overlapping columns.
	Formats []ColumnFormat `json:"formats,omitempty"`
}

// Offset returns the number of output columns preceding the table's first column.
func (s WorksheetSpec) Offset() int {
	if s.IncludeIndex {
		return 1
	}
	return 0
}

// OutputColumn returns the 1-based output column of the named table column, or 0.
func (s WorksheetSpec) OutputColumn(name string) int {
	idx := s.Table.ColumnIndex(name)
	if idx < 0 {
		return 0
	}
	return idx + 1 + s.Offset()
}

// Width returns the number of output columns written for the sheet.
func (s WorksheetSpec) Width() int {
	return len(s.Table.Columns) + s.Offset()
}
