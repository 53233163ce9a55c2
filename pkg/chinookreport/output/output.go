// Package output renders generation results and workbook summaries for the CLI.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON writes v as JSON followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// WriteResult renders the sheets written by a generation run.
func WriteResult(w io.Writer, result *chinookreport.Result) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Sheet", "Rows"})
	for _, s := range result.Sheets {
		t.AppendRow(table.Row{s.Name, s.Rows})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "wrote %s\n", result.OutputPath)
}

// WriteWorkbook renders one row per sheet, then one row per chart series.
func WriteWorkbook(w io.Writer, wb *models.WorkbookData) {
	_, _ = fmt.Fprintln(w, wb.BookName)

	sheets := newTable(w)
	sheets.AppendHeader(table.Row{"Sheet", "Rows", "Used Range", "Print Area", "Charts", "Header"})
	for _, s := range wb.Sheets {
		sheets.AppendRow(table.Row{s.Name, s.Rows, usedRange(s.UsedRange), printAreas(s.PrintAreas), len(s.Charts), strings.Join(s.Header, ", ")})
	}
	sheets.Render()

	var chartRows []table.Row
	for _, s := range wb.Sheets {
		for _, c := range s.Charts {
			for _, p := range c.Plots {
				for _, series := range p.Series {
					chartRows = append(chartRows, table.Row{s.Name, c.Anchor, c.Title, p.Type, series.NameRange, series.CategoryRange, series.ValueRange})
				}
			}
		}
	}
	if len(chartRows) == 0 {
		return
	}

	charts := newTable(w)
	charts.AppendHeader(table.Row{"Sheet", "Anchor", "Title", "Type", "Name", "Categories", "Values"})
	charts.AppendRows(chartRows)
	charts.Render()
}

func usedRange(a *models.Area) string {
	if a == nil {
		return "-"
	}
	return a.String()
}

func printAreas(areas []models.Area) string {
	if len(areas) == 0 {
		return "-"
	}
	parts := make([]string, len(areas))
	for i, a := range areas {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
