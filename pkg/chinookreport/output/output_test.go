package output

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
)

func sampleWorkbook() *models.WorkbookData {
	return &models.WorkbookData{
		BookName: "chinook_reports.xlsx",
		Sheets: []models.SheetData{
			{
				Name:       "CustomersPerCountry",
				Header:     []string{"", "Country", "CustomersCount"},
				Rows:       3,
				UsedRange:  &models.Area{R1: 1, C1: 1, R2: 4, C2: 3},
				PrintAreas: []models.Area{{R1: 1, C1: 1, R2: 4, C2: 3}},
			},
			{
				Name:   "SongsByGenre",
				Header: []string{"", "Name", "Songs", "Running Total %"},
				Rows:   3,
				Charts: []models.ChartData{{
					Name:   "Chart 1",
					Anchor: "E2",
					Title:  "Songs By Genre - Pareto Chart",
					Plots: []models.PlotData{
						{Type: "Column", Series: []models.SeriesData{{NameRange: "SongsByGenre!$C$1", CategoryRange: "SongsByGenre!$B$2:$B$25", ValueRange: "SongsByGenre!$C$2:$C$25"}}},
						{Type: "Line", Series: []models.SeriesData{{NameRange: "SongsByGenre!$D$1", CategoryRange: "SongsByGenre!$B$2:$B$25", ValueRange: "SongsByGenre!$D$2:$D$25"}}},
					},
				}},
			},
		},
	}
}

func TestToJSON(t *testing.T) {
	wb := sampleWorkbook()

	compact, err := ToJSON(wb, false)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")

	pretty, err := ToJSON(wb, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"book_name\"")

	var decoded models.WorkbookData
	require.NoError(t, json.Unmarshal(pretty, &decoded))
	assert.Equal(t, *wb, decoded)
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	WriteWorkbook(&buf, sampleWorkbook())

	out := buf.String()
	assert.Contains(t, out, "chinook_reports.xlsx")
	assert.Contains(t, out, "CustomersPerCountry")
	assert.Contains(t, out, "R1C1:R4C3")
	assert.Contains(t, out, "Songs By Genre - Pareto Chart")
	assert.Contains(t, out, "SongsByGenre!$D$2:$D$25")
	assert.Contains(t, out, "Line")
}

func TestWriteWorkbook_NoCharts(t *testing.T) {
	wb := sampleWorkbook()
	wb.Sheets = wb.Sheets[:1]

	var buf bytes.Buffer
	WriteWorkbook(&buf, wb)
	assert.NotContains(t, buf.String(), "Anchor")
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	WriteResult(&buf, &chinookreport.Result{
		OutputPath: "out.xlsx",
		Sheets:     []chinookreport.SheetSummary{{Name: "SongsByGenre", Rows: 25}},
	})

	assert.Contains(t, buf.String(), "SongsByGenre")
	assert.Contains(t, buf.String(), "25")
	assert.Contains(t, buf.String(), "wrote out.xlsx")
}
