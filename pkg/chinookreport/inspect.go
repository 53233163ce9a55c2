package chinookreport

import (
	"path/filepath"

	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/parser"
	"github.com/xuri/excelize/v2"
)

// Inspect reads a generated workbook back and summarizes each sheet in workbook order.
func Inspect(path string) (*models.WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	charts, err := parser.ExtractCharts(path)
	if err != nil {
		return nil, err
	}
	printAreas := parser.ExtractPrintAreas(f)

	wb := &models.WorkbookData{BookName: filepath.Base(path)}
	for _, sheetName := range f.GetSheetList() {
		header, rows, err := parser.ReadSheet(f, sheetName)
		if err != nil {
			return nil, &InspectError{SheetName: sheetName, Component: "rows", Err: err}
		}
		used, err := parser.UsedRange(f, sheetName)
		if err != nil {
			return nil, &InspectError{SheetName: sheetName, Component: "used_range", Err: err}
		}

		wb.Sheets = append(wb.Sheets, models.SheetData{
			Name:       sheetName,
			Header:     header,
			Rows:       len(rows),
			UsedRange:  used,
			PrintAreas: printAreas[sheetName],
			Charts:     charts[sheetName],
		})
	}

	return wb, nil
}
