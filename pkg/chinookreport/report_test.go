package chinookreport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/chinooktest"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/parser"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/source"
	"github.com/xuri/excelize/v2"

	_ "modernc.org/sqlite"
)

func generate(t *testing.T, f chinooktest.Fixture) (string, *Result) {
	t.Helper()
	opts := DefaultOptions()
	opts.DatabasePath = chinooktest.NewDB(t, f)
	opts.OutputPath = filepath.Join(t.TempDir(), "chinook_reports.xlsx")

	result, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	return opts.OutputPath, result
}

func TestGenerate(t *testing.T) {
	out, result := generate(t, chinooktest.Sample())

	assert.Equal(t, []SheetSummary{
		{Name: SheetCustomersPerCountry, Rows: 3},
		{Name: SheetTopSongs, Rows: 5},
		{Name: SheetArtistPrice, Rows: 2},
		{Name: SheetSongsByGenre, Rows: 3},
	}, result.Sheets)

	wb, err := Inspect(out)
	require.NoError(t, err)
	assert.Equal(t, "chinook_reports.xlsx", wb.BookName)

	names := make([]string, 0, len(wb.Sheets))
	for _, s := range wb.Sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{SheetCustomersPerCountry, SheetTopSongs, SheetArtistPrice, SheetSongsByGenre}, names)

	assert.Equal(t, []string{"", "Country", "CustomersCount"}, wb.Sheet(SheetCustomersPerCountry).Header)
	assert.Equal(t, []string{"", "Song", "Artist", "Album", "TotalSales"}, wb.Sheet(SheetTopSongs).Header)
	assert.Equal(t, []string{"ArtistName", "TotalSongs", "TotalPrice"}, wb.Sheet(SheetArtistPrice).Header)
	// The trailing column is the legend label cell under the chart.
	assert.Equal(t, []string{"", "Name", "Songs", "Running Total %", ""}, wb.Sheet(SheetSongsByGenre).Header)

	genres := wb.Sheet(SheetSongsByGenre)
	assert.Equal(t, &models.Area{R1: 1, C1: 1, R2: 4, C2: 5}, genres.UsedRange)
	assert.Equal(t, []models.Area{{R1: 1, C1: 1, R2: 4, C2: 4}}, genres.PrintAreas)

	for _, s := range wb.Sheets[:3] {
		assert.Empty(t, s.Charts, s.Name)
	}
	require.Len(t, genres.Charts, 1)
	chart := genres.Charts[0]
	assert.Equal(t, "E2", chart.Anchor)
	assert.Equal(t, ParetoTitle, chart.Title)
	require.Len(t, chart.Plots, 2)
	assert.Equal(t, "SongsByGenre!$E$2", chart.Plots[0].Series[0].NameRange)
	assert.Equal(t, "SongsByGenre!$D$1", chart.Plots[1].Series[0].NameRange)
	assert.Equal(t, "SongsByGenre!$B$2:$B$25", chart.Plots[0].Series[0].CategoryRange)
	assert.Equal(t, "SongsByGenre!$C$2:$C$25", chart.Plots[0].Series[0].ValueRange)
	assert.Equal(t, "SongsByGenre!$D$2:$D$25", chart.Plots[1].Series[0].ValueRange)
}

func TestGenerate_SheetContents(t *testing.T) {
	out, _ := generate(t, chinooktest.Sample())

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	_, rows, err := parser.ReadSheet(f, SheetCustomersPerCountry)
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{
		{int64(1), "Canada", int64(5)},
		{int64(2), "USA", int64(5)},
		{int64(3), "Brazil", int64(2)},
	}, rows)

	label, err := f.GetCellValue(SheetSongsByGenre, "E2")
	require.NoError(t, err)
	assert.Equal(t, ParetoColumnSeries, label)

	_, rows, err = parser.ReadSheet(f, SheetArtistPrice)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Iron Maiden", rows[0][0])
	assert.Equal(t, "AC/DC", rows[1][0])

	width, err := f.GetColWidth(SheetArtistPrice, "A")
	require.NoError(t, err)
	assert.Equal(t, 26.0, width)
	width, err = f.GetColWidth(SheetTopSongs, "D")
	require.NoError(t, err)
	assert.Equal(t, 26.0, width)
	width, err = f.GetColWidth(SheetSongsByGenre, "D")
	require.NoError(t, err)
	assert.Equal(t, 14.0, width)
}

func TestGenerate_RunningShare(t *testing.T) {
	var fx chinooktest.Fixture
	for _, g := range []struct {
		name  string
		songs int
	}{{"Rock", 50}, {"Jazz", 30}, {"Blues", 20}} {
		id := fx.AddGenre(g.name)
		fx.AddArtist(g.name+" Band", g.songs, id, 0.99)
	}
	out, _ := generate(t, fx)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	_, rows, err := parser.ReadSheet(f, SheetSongsByGenre)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []interface{}{int64(1), "Rock", int64(50), 0.5}, rows[0][:4])
	assert.Equal(t, []interface{}{int64(2), "Jazz", int64(30)}, rows[1][:3])
	assert.InDelta(t, 0.8, rows[1][3], 1e-12)
	assert.Equal(t, int64(1), rows[2][3])
}

func TestGenerate_ChartWindowExcludesExtraGenres(t *testing.T) {
	var fx chinooktest.Fixture
	for i := 0; i < 30; i++ {
		id := fx.AddGenre(fmt.Sprintf("Genre %02d", i))
		fx.AddArtist(fmt.Sprintf("Artist %02d", i), 30-i, id, 0.99)
	}
	out, result := generate(t, fx)
	assert.Equal(t, 30, result.Sheets[3].Rows)

	wb, err := Inspect(out)
	require.NoError(t, err)
	chart := wb.Sheet(SheetSongsByGenre).Charts[0]
	assert.Equal(t, "SongsByGenre!$C$2:$C$25", chart.Plots[0].Series[0].ValueRange)
	assert.Equal(t, 30, wb.Sheet(SheetSongsByGenre).Rows)
}

func TestGenerate_ChartRowsOption(t *testing.T) {
	opts := DefaultOptions()
	opts.DatabasePath = chinooktest.NewDB(t, chinooktest.Sample())
	opts.OutputPath = filepath.Join(t.TempDir(), "out.xlsx")
	opts.Chart.Rows = 3
	opts.Chart.Anchor = "G5"

	_, err := Generate(context.Background(), opts)
	require.NoError(t, err)

	wb, err := Inspect(opts.OutputPath)
	require.NoError(t, err)
	chart := wb.Sheet(SheetSongsByGenre).Charts[0]
	assert.Equal(t, "G5", chart.Anchor)
	assert.Equal(t, "SongsByGenre!$B$2:$B$4", chart.Plots[1].Series[0].CategoryRange)
	assert.Equal(t, "SongsByGenre!$G$5", chart.Plots[0].Series[0].NameRange)
}

func TestGenerate_MissingDatabase(t *testing.T) {
	opts := DefaultOptions()
	opts.DatabasePath = filepath.Join(t.TempDir(), "missing.db")
	opts.OutputPath = filepath.Join(t.TempDir(), "out.xlsx")

	_, err := Generate(context.Background(), opts)

	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, StageConnect, dsErr.Stage)
	assert.Contains(t, err.Error(), "connect")
	assert.NoFileExists(t, opts.OutputPath)
}

func TestGenerate_QueryFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE customers (CustomerId INTEGER PRIMARY KEY, Country TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	opts := DefaultOptions()
	opts.DatabasePath = path
	opts.OutputPath = filepath.Join(t.TempDir(), "out.xlsx")

	_, err = Generate(context.Background(), opts)

	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, StageQuery, dsErr.Stage)
	assert.Equal(t, "Top100SongsBySales", dsErr.Query)
	assert.Contains(t, err.Error(), "Top100SongsBySales")
	assert.NoFileExists(t, opts.OutputPath)
}

func TestGenerate_UnwritableOutput(t *testing.T) {
	opts := DefaultOptions()
	opts.DatabasePath = chinooktest.NewDB(t, chinooktest.Sample())
	opts.OutputPath = filepath.Join(t.TempDir(), "no-such-dir", "out.xlsx")

	_, err := Generate(context.Background(), opts)

	var wErr *WriteError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, StageSave, wErr.Stage)
	assert.Equal(t, opts.OutputPath, wErr.Path)
}

func TestGenerate_InvalidChartOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.DatabasePath = chinooktest.NewDB(t, chinooktest.Sample())
	opts.OutputPath = filepath.Join(t.TempDir(), "out.xlsx")
	opts.Chart.Anchor = "not a cell"

	_, err := Generate(context.Background(), opts)

	var wErr *WriteError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, StageChart, wErr.Stage)
	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

type failingRunner struct {
	failOn string
}

func (r failingRunner) Query(_ context.Context, name, _ string) (*models.ReportTable, error) {
	if name == r.failOn {
		return nil, errors.New("boom")
	}
	return nil, errors.New("unexpected query " + name)
}

func TestExtract_StopsAtFirstFailure(t *testing.T) {
	_, err := Extract(context.Background(), failingRunner{failOn: "CustomersPerCountry"})

	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "CustomersPerCountry", dsErr.Query)
	assert.EqualError(t, dsErr.Err, "boom")
}

func TestPostProcess(t *testing.T) {
	path := chinooktest.NewDB(t, chinooktest.Sample())
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	tables, err := Extract(context.Background(), source.New(db))
	require.NoError(t, err)
	require.NoError(t, PostProcess(tables))

	assert.Equal(t, []int{1, 2, 3}, tables.CustomersPerCountry.Index)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, tables.TopSongsBySales.Index)
	assert.Equal(t, []int{1, 2, 3}, tables.SongsByGenre.Index)
	assert.Nil(t, tables.ArtistCatalogPrice.Index)
	assert.Equal(t, []string{"Name", "Songs", "Running Total %"}, tables.SongsByGenre.ColumnNames())

	for _, table := range []*models.ReportTable{tables.CustomersPerCountry, tables.TopSongsBySales, tables.ArtistCatalogPrice, tables.SongsByGenre} {
		assert.True(t, table.Frozen(), table.Name)
	}
}

func TestLayout(t *testing.T) {
	tables := &Tables{
		CustomersPerCountry: &models.ReportTable{Columns: cols("Country", "CustomersCount")},
		TopSongsBySales:     &models.ReportTable{Columns: cols("Song", "Artist", "Album", "TotalSales")},
		ArtistCatalogPrice:  &models.ReportTable{Columns: cols("ArtistName", "TotalSongs", "TotalPrice")},
		SongsByGenre:        &models.ReportTable{Columns: cols("Name", "Songs", "Running Total %")},
	}

	specs := Layout(tables)
	require.Len(t, specs, 4)

	assert.Equal(t, []models.ColumnFormat{
		{Range: models.Cols(2, 3), Width: 18, Rule: models.FormatCenter},
	}, specs[0].Formats)
	assert.Equal(t, []models.ColumnFormat{
		{Range: models.Cols(2, 4), Width: 26, Rule: models.FormatCenter},
		{Range: models.Col(5), Rule: models.FormatCurrency},
	}, specs[1].Formats)
	assert.False(t, specs[2].IncludeIndex)
	assert.Equal(t, []models.ColumnFormat{
		{Range: models.Col(1), Width: 35, Rule: models.FormatCenter},
		{Range: models.Col(2), Rule: models.FormatCenter},
		{Range: models.Col(3), Rule: models.FormatCurrency},
		{Range: models.Col(1), Width: 26, Rule: models.FormatCenter},
	}, specs[2].Formats)
	assert.Equal(t, []models.ColumnFormat{
		{Range: models.Cols(2, 3), Width: 17, Rule: models.FormatCenter},
		{Range: models.Col(4), Width: 14, Rule: models.FormatPercentage},
	}, specs[3].Formats)
}

func TestParetoChart(t *testing.T) {
	spec := models.WorksheetSpec{
		Sheet:        SheetSongsByGenre,
		Table:        &models.ReportTable{Columns: cols("Name", "Songs", "Running Total %")},
		IncludeIndex: true,
	}

	chart, err := ParetoChart(spec, DefaultChartOptions())
	require.NoError(t, err)
	assert.Equal(t, models.CellRef{Sheet: SheetSongsByGenre, Column: 5, Row: 2}, chart.Anchor)
	assert.Equal(t, uint(885), chart.Width)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, models.CellRef{Sheet: SheetSongsByGenre, Column: 5, Row: 2}, chart.Series[0].Name)
	assert.Equal(t, ParetoColumnSeries, chart.Series[0].Label)
	assert.Equal(t, models.CellRef{Sheet: SheetSongsByGenre, Column: 4, Row: 1}, chart.Series[1].Name)
	assert.Empty(t, chart.Series[1].Label)
	assert.Equal(t, models.CellRange{Sheet: SheetSongsByGenre, Column: 2, FirstRow: 2, LastRow: 25}, chart.Series[0].Categories)
	assert.Equal(t, models.AxisPrimary, chart.Series[0].Axis)
	assert.Equal(t, models.CellRange{Sheet: SheetSongsByGenre, Column: 4, FirstRow: 2, LastRow: 25}, chart.Series[1].Values)
	assert.Equal(t, models.AxisSecondary, chart.Series[1].Axis)
	assert.Equal(t, ParetoY2AxisTitle, chart.Series[1].AxisTitle)

	_, err = ParetoChart(spec, ChartOptions{Rows: 0, Anchor: "E2"})
	assert.Error(t, err)

	_, err = ParetoChart(spec, ChartOptions{Rows: 24, Anchor: "D2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps the table")

	spec.Table = &models.ReportTable{Columns: cols("Name", "Songs")}
	_, err = ParetoChart(spec, DefaultChartOptions())
	assert.Error(t, err)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `data source error in query "SongsByGenre": boom`,
		(&DataSourceError{Stage: StageQuery, Query: "SongsByGenre", Err: errors.New("boom")}).Error())
	assert.Equal(t, `write error in sheet "SongsByGenre" (chart): boom`,
		(&WriteError{Stage: StageChart, Sheet: "SongsByGenre", Err: errors.New("boom")}).Error())
	assert.Equal(t, `write error (save out.xlsx): boom`,
		(&WriteError{Stage: StageSave, Path: "out.xlsx", Err: errors.New("boom")}).Error())
}

func cols(names ...string) []models.Column {
	columns := make([]models.Column, len(names))
	for i, n := range names {
		columns[i] = models.Column{Name: n}
	}
	return columns
}
