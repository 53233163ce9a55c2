package writer

import (
	"fmt"

	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
	"github.com/xuri/excelize/v2"
)

// formatHeader styles the header row and index labels.
const formatHeader models.FormatRule = "header"

const (
	currencyFormat = "$#,##0.00"
	// percentNumFmt is the built-in 0.00% number format.
	percentNumFmt = 10
)

// ApplyFormats applies the sheet's column formats in order, then restores the
// header style on row 1 and the index column, which column styles overwrite.
func (w *Workbook) ApplyFormats(spec models.WorksheetSpec) error {
	for _, cf := range spec.Formats {
		if err := w.ApplyColumnFormat(spec.Sheet, cf.Range, cf.Width, cf.Rule); err != nil {
			return err
		}
	}
	return w.styleHeaders(spec)
}

// styleHeaders sets the header style on the column names and the index labels.
// The blank index header cell is left untouched.
func (w *Workbook) styleHeaders(spec models.WorksheetSpec) error {
	if spec.Table == nil || len(spec.Table.Columns) == 0 {
		return nil
	}
	styleID, err := w.style(formatHeader)
	if err != nil {
		return err
	}

	first, err := excelize.CoordinatesToCellName(spec.Offset()+1, 1)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(spec.Width(), 1)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(spec.Sheet, first, last, styleID); err != nil {
		return fmt.Errorf("sheet %q header style: %w", spec.Sheet, err)
	}

	if !spec.IncludeIndex || spec.Table.Len() == 0 {
		return nil
	}
	last, err = excelize.CoordinatesToCellName(1, spec.Table.Len()+1)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(spec.Sheet, "A2", last, styleID); err != nil {
		return fmt.Errorf("sheet %q index style: %w", spec.Sheet, err)
	}
	return nil
}

// ApplyColumnFormat sets the width and cell format of a column range.
// A zero width leaves the width unchanged; FormatNone leaves the format unchanged.
// Later calls override earlier ones on overlapping columns.
func (w *Workbook) ApplyColumnFormat(sheet string, r models.ColumnRange, width float64, rule models.FormatRule) error {
	if r.First < 1 || r.Last < r.First {
		return fmt.Errorf("sheet %q: invalid column range %d:%d", sheet, r.First, r.Last)
	}

	first, err := excelize.ColumnNumberToName(r.First)
	if err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(r.Last)
	if err != nil {
		return err
	}

	if width > 0 {
		if err := w.f.SetColWidth(sheet, first, last, width); err != nil {
			return fmt.Errorf("sheet %q columns %s:%s width: %w", sheet, first, last, err)
		}
	}

	if rule == models.FormatNone {
		return nil
	}
	styleID, err := w.style(rule)
	if err != nil {
		return err
	}
	if err := w.f.SetColStyle(sheet, first+":"+last, styleID); err != nil {
		return fmt.Errorf("sheet %q columns %s:%s style: %w", sheet, first, last, err)
	}
	return nil
}

// style returns the workbook style ID for rule, registering it on first use.
func (w *Workbook) style(rule models.FormatRule) (int, error) {
	if id, ok := w.styles[rule]; ok {
		return id, nil
	}

	style, err := styleFor(rule)
	if err != nil {
		return 0, err
	}
	id, err := w.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("format %q: %w", rule, err)
	}
	w.styles[rule] = id
	return id, nil
}

func styleFor(rule models.FormatRule) (*excelize.Style, error) {
	center := &excelize.Alignment{Horizontal: "center"}

	switch rule {
	case formatHeader:
		return &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
			Border: []excelize.Border{
				{Type: "left", Color: "000000", Style: 1},
				{Type: "top", Color: "000000", Style: 1},
				{Type: "right", Color: "000000", Style: 1},
				{Type: "bottom", Color: "000000", Style: 1},
			},
		}, nil
	case models.FormatCenter:
		return &excelize.Style{Alignment: center}, nil
	case models.FormatCurrency:
		numFmt := currencyFormat
		return &excelize.Style{Alignment: center, CustomNumFmt: &numFmt}, nil
	case models.FormatPercentage:
		return &excelize.Style{Alignment: center, NumFmt: percentNumFmt}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", rule)
	}
}
