package models

// SheetData represents a report sheet read back from a workbook.
type SheetData struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Header is the first row of the sheet.
	Header []string `json:"header"`
	// Rows is the number of data rows below the header.
	Rows int `json:"rows"`
	// UsedRange is the bounding box of non-empty cells.
	UsedRange *Area `json:"used_range,omitempty"`
	// PrintAreas contains user-defined print areas.
	PrintAreas []Area `json:"print_areas,omitempty"`
	// Charts contains charts embedded in the sheet.
	Charts []ChartData `json:"charts,omitempty"`
}
