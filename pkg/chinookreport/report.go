package chinookreport

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/metrics"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/source"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/transform"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/writer"
)

// SheetSummary describes one written sheet.
type SheetSummary struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// Result describes a generated report.
type Result struct {
	OutputPath string         `json:"output_path"`
	Sheets     []SheetSummary `json:"sheets"`
}

// Generate reads the metrics from the database and writes the report workbook.
// All queries complete before the workbook is created.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	db, err := source.Open(ctx, opts.DatabasePath)
	if err != nil {
		return nil, &DataSourceError{Stage: StageConnect, Path: opts.DatabasePath, Err: err}
	}
	defer db.Close()

	tables, err := Extract(ctx, db)
	if err != nil {
		return nil, err
	}

	if err := PostProcess(tables); err != nil {
		return nil, err
	}

	specs := Layout(tables)
	chart, err := ParetoChart(specs[len(specs)-1], opts.Chart)
	if err != nil {
		return nil, &WriteError{Stage: StageChart, Sheet: SheetSongsByGenre, Err: err}
	}

	wb, err := Render(ctx, specs, chart)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if err := wb.SaveAs(opts.OutputPath); err != nil {
		return nil, &WriteError{Stage: StageSave, Path: opts.OutputPath, Err: err}
	}

	result := &Result{OutputPath: opts.OutputPath}
	for _, spec := range specs {
		result.Sheets = append(result.Sheets, SheetSummary{Name: spec.Sheet, Rows: spec.Table.Len()})
	}
	logger.Info().Str("output", opts.OutputPath).Int("sheets", len(result.Sheets)).Msg("report written")
	return result, nil
}

// Extract runs every metric query in report order.
func Extract(ctx context.Context, r metrics.Runner) (*Tables, error) {
	logger := zerolog.Ctx(ctx)

	run := func(q metrics.Query) (*models.ReportTable, error) {
		table, err := metrics.Run(ctx, r, q)
		if err != nil {
			return nil, &DataSourceError{Stage: StageQuery, Query: q.Name, Err: err}
		}
		logger.Debug().Str("query", q.Name).Int("rows", table.Len()).Msg("query complete")
		return table, nil
	}

	var t Tables
	var err error
	if t.CustomersPerCountry, err = run(metrics.CustomersPerCountry); err != nil {
		return nil, err
	}
	if t.TopSongsBySales, err = run(metrics.TopSongsBySales); err != nil {
		return nil, err
	}
	if t.ArtistCatalogPrice, err = run(metrics.ArtistCatalogPrice); err != nil {
		return nil, err
	}
	if t.SongsByGenre, err = run(metrics.SongsByGenre); err != nil {
		return nil, err
	}
	return &t, nil
}

// PostProcess adds the genre running share, assigns display indexes and freezes every table.
func PostProcess(t *Tables) error {
	if err := transform.AddRunningShare(t.SongsByGenre, "Songs", transform.RunningShareColumn); err != nil {
		return err
	}
	for _, table := range []*models.ReportTable{t.CustomersPerCountry, t.TopSongsBySales, t.SongsByGenre} {
		if err := transform.AssignIndex(table); err != nil {
			return err
		}
	}
	for _, table := range []*models.ReportTable{t.CustomersPerCountry, t.TopSongsBySales, t.ArtistCatalogPrice, t.SongsByGenre} {
		table.Freeze()
	}
	return nil
}

// Render writes, styles and charts the sheets into a new in-memory workbook.
// The caller owns the returned workbook and must close it.
func Render(ctx context.Context, specs []models.WorksheetSpec, chart models.ComboChart) (*writer.Workbook, error) {
	logger := zerolog.Ctx(ctx)
	wb := writer.New()

	for _, spec := range specs {
		if err := wb.WriteTable(spec); err != nil {
			_ = wb.Close()
			return nil, &WriteError{Stage: StageWrite, Sheet: spec.Sheet, Err: err}
		}
		logger.Debug().Str("sheet", spec.Sheet).Int("rows", spec.Table.Len()).Msg("sheet written")
	}

	for _, spec := range specs {
		if err := wb.ApplyFormats(spec); err != nil {
			_ = wb.Close()
			return nil, &WriteError{Stage: StageStyle, Sheet: spec.Sheet, Err: err}
		}
	}

	if err := wb.AddComboChart(chart); err != nil {
		_ = wb.Close()
		return nil, &WriteError{Stage: StageChart, Sheet: chart.Sheet, Err: err}
	}

	return wb, nil
}
