package chinookreport

import (
	"fmt"

	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/transform"
	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetCustomersPerCountry = "CustomersPerCountry"
	SheetTopSongs            = "100SongsBySales"
	SheetArtistPrice         = "EntireCollArtistPrice"
	SheetSongsByGenre        = "SongsByGenre"
)

// Chart labels of the SongsByGenre Pareto chart.
const (
	ParetoTitle       = "Songs By Genre - Pareto Chart"
	ParetoXAxisTitle  = "Genre"
	ParetoYAxisTitle  = "Songs Count"
	ParetoY2AxisTitle = "Running Percentage"
	// ParetoColumnSeries is the legend label of the song-count series.
	ParetoColumnSeries = "Songs Count"
)

// Tables holds the four metric tables of one run.
type Tables struct {
	CustomersPerCountry *models.ReportTable
	TopSongsBySales     *models.ReportTable
	ArtistCatalogPrice  *models.ReportTable
	SongsByGenre        *models.ReportTable
}

// Layout binds each table to its sheet and column formats.
func Layout(t *Tables) []models.WorksheetSpec {
	customers := models.WorksheetSpec{Sheet: SheetCustomersPerCountry, Table: t.CustomersPerCountry, IncludeIndex: true}
	customers.Formats = []models.ColumnFormat{
		{Range: span(customers, "Country", "CustomersCount"), Width: 18, Rule: models.FormatCenter},
	}

	songs := models.WorksheetSpec{Sheet: SheetTopSongs, Table: t.TopSongsBySales, IncludeIndex: true}
	songs.Formats = []models.ColumnFormat{
		{Range: span(songs, "Song", "Album"), Width: 26, Rule: models.FormatCenter},
		{Range: span(songs, "TotalSales", "TotalSales"), Rule: models.FormatCurrency},
	}

	artists := models.WorksheetSpec{Sheet: SheetArtistPrice, Table: t.ArtistCatalogPrice}
	artists.Formats = []models.ColumnFormat{
		{Range: span(artists, "ArtistName", "ArtistName"), Width: 35, Rule: models.FormatCenter},
		{Range: span(artists, "TotalSongs", "TotalSongs"), Rule: models.FormatCenter},
		{Range: span(artists, "TotalPrice", "TotalPrice"), Rule: models.FormatCurrency},
		{Range: span(artists, "ArtistName", "ArtistName"), Width: 26, Rule: models.FormatCenter},
	}

	genres := models.WorksheetSpec{Sheet: SheetSongsByGenre, Table: t.SongsByGenre, IncludeIndex: true}
	genres.Formats = []models.ColumnFormat{
		{Range: span(genres, "Name", "Songs"), Width: 17, Rule: models.FormatCenter},
		{Range: span(genres, transform.RunningShareColumn, transform.RunningShareColumn), Width: 14, Rule: models.FormatPercentage},
	}

	return []models.WorksheetSpec{customers, songs, artists, genres}
}

func span(spec models.WorksheetSpec, first, last string) models.ColumnRange {
	return models.Cols(spec.OutputColumn(first), spec.OutputColumn(last))
}

// ParetoChart builds the column+line chart over the genre sheet.
// The series cover a fixed window of opts.Rows rows regardless of how many genres were written.
// The column series label is stored in the anchor cell, which the chart covers,
// so the anchor must lie right of the table.
func ParetoChart(spec models.WorksheetSpec, opts ChartOptions) (models.ComboChart, error) {
	if opts.Rows < 1 {
		return models.ComboChart{}, fmt.Errorf("chart rows must be positive, got %d", opts.Rows)
	}
	col, row, err := excelize.CellNameToCoordinates(opts.Anchor)
	if err != nil {
		return models.ComboChart{}, fmt.Errorf("chart anchor: %w", err)
	}

	if col <= spec.Width() {
		return models.ComboChart{}, fmt.Errorf("chart anchor %s overlaps the table columns", opts.Anchor)
	}

	names := spec.OutputColumn("Name")
	songs := spec.OutputColumn("Songs")
	share := spec.OutputColumn(transform.RunningShareColumn)
	if names == 0 || songs == 0 || share == 0 {
		return models.ComboChart{}, fmt.Errorf("sheet %q lacks the genre columns", spec.Sheet)
	}

	window := func(column int) models.CellRange {
		return models.CellRange{Sheet: spec.Sheet, Column: column, FirstRow: 2, LastRow: 1 + opts.Rows}
	}
	header := func(column int) models.CellRef {
		return models.CellRef{Sheet: spec.Sheet, Column: column, Row: 1}
	}

	anchor := models.CellRef{Sheet: spec.Sheet, Column: col, Row: row}

	return models.ComboChart{
		Sheet:      spec.Sheet,
		Anchor:     anchor,
		Title:      ParetoTitle,
		XAxisTitle: ParetoXAxisTitle,
		Width:      opts.Width,
		Height:     opts.Height,
		Series: []models.ChartSpec{
			{
				Kind:       models.ChartColumn,
				Name:       anchor,
				Label:      ParetoColumnSeries,
				Categories: window(names),
				Values:     window(songs),
				Axis:       models.AxisPrimary,
				AxisTitle:  ParetoYAxisTitle,
			},
			{
				Kind:       models.ChartLine,
				Name:       header(share),
				Categories: window(names),
				Values:     window(share),
				Axis:       models.AxisSecondary,
				AxisTitle:  ParetoY2AxisTitle,
			},
		},
	}, nil
}
