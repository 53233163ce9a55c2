package parser

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ReadSheet returns the header row and the data rows of a sheet.
// Numeric cells are returned as int64 or float64, empty cells as nil.
func ReadSheet(f *excelize.File, sheetName string) (header []string, rows [][]interface{}, err error) {
	all, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, nil
	}

	header = all[0]
	width := len(header)
	for _, row := range all[1:] {
		if len(row) > width {
			width = len(row)
		}
	}
	for len(header) < width {
		header = append(header, "")
	}

	for _, row := range all[1:] {
		values := make([]interface{}, width)
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			values[colIdx] = parseValue(cellValue)
		}
		rows = append(rows, values)
	}

	return header, rows, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
