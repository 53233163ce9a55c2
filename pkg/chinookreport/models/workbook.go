package models

// WorkbookData represents a report workbook with its sheets in workbook order.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists the sheets in workbook order.
	Sheets []SheetData `json:"sheets"`
}

// Sheet returns the named sheet, or nil.
func (w *WorkbookData) Sheet(name string) *SheetData {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i]
		}
	}
	return nil
}
