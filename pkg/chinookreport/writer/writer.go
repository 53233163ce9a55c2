// Package writer lays report tables, formats and charts out in an xlsx workbook.
package writer

import (
	"fmt"

	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
	"github.com/xuri/excelize/v2"
)

// PrintAreaName is the defined name Excel uses for a sheet's print area.
const PrintAreaName = "_xlnm.Print_Area"

// defaultSheet is the sheet every new excelize file starts with.
const defaultSheet = "Sheet1"

// Workbook is an in-memory report workbook.
type Workbook struct {
	f      *excelize.File
	sheets []string
	specs  map[string]models.WorksheetSpec
	styles map[models.FormatRule]int
}

// New creates an empty workbook.
func New() *Workbook {
	return &Workbook{
		f:      excelize.NewFile(),
		specs:  make(map[string]models.WorksheetSpec),
		styles: make(map[models.FormatRule]int),
	}
}

// File returns the underlying excelize file.
func (w *Workbook) File() *excelize.File {
	return w.f
}

// Sheets returns the written sheet names in order.
func (w *Workbook) Sheets() []string {
	return append([]string(nil), w.sheets...)
}

// WriteTable creates the worksheet and writes the header and every row in table order.
func (w *Workbook) WriteTable(spec models.WorksheetSpec) error {
	if spec.Table == nil {
		return fmt.Errorf("sheet %q: no table", spec.Sheet)
	}
	if _, ok := w.specs[spec.Sheet]; ok {
		return fmt.Errorf("sheet %q already written", spec.Sheet)
	}
	if spec.IncludeIndex && len(spec.Table.Index) != spec.Table.Len() {
		return fmt.Errorf("sheet %q: index has %d labels for %d rows", spec.Sheet, len(spec.Table.Index), spec.Table.Len())
	}

	if err := w.addSheet(spec.Sheet); err != nil {
		return err
	}

	// Header row; the index column has no header.
	header := make([]interface{}, 0, spec.Width())
	if spec.IncludeIndex {
		header = append(header, nil)
	}
	for _, col := range spec.Table.Columns {
		header = append(header, col.Name)
	}
	if err := w.f.SetSheetRow(spec.Sheet, "A1", &header); err != nil {
		return fmt.Errorf("sheet %q header: %w", spec.Sheet, err)
	}

	for i, row := range spec.Table.Rows {
		values := make([]interface{}, 0, spec.Width())
		if spec.IncludeIndex {
			values = append(values, spec.Table.Index[i])
		}
		values = append(values, row...)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(spec.Sheet, cell, &values); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", spec.Sheet, i+1, err)
		}
	}

	if err := w.setPrintArea(spec); err != nil {
		return err
	}

	w.sheets = append(w.sheets, spec.Sheet)
	w.specs[spec.Sheet] = spec
	return nil
}

// addSheet renames the default sheet for the first table and appends new sheets after it.
func (w *Workbook) addSheet(name string) error {
	if len(w.sheets) == 0 {
		if err := w.f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		return nil
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("sheet %q: %w", name, err)
	}
	return nil
}

// setPrintArea limits printing to the header and the written rows.
func (w *Workbook) setPrintArea(spec models.WorksheetSpec) error {
	end, err := excelize.CoordinatesToCellName(spec.Width(), spec.Table.Len()+1, true)
	if err != nil {
		return err
	}
	return w.f.SetDefinedName(&excelize.DefinedName{
		Name:     PrintAreaName,
		RefersTo: fmt.Sprintf("%s!$A$1:%s", quoteSheet(spec.Sheet), end),
		Scope:    spec.Sheet,
	})
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	return w.f.SaveAs(path)
}

// Close releases the workbook's resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}
