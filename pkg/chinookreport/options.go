// Package chinookreport builds the music-store metrics workbook.
package chinookreport

// ChartOptions configures the Pareto chart on the SongsByGenre sheet.
type ChartOptions struct {
	// Rows is the number of genre rows the chart series reference, starting below the header.
	// Genres beyond the window are not plotted; a shorter table leaves trailing cells empty.
	Rows int
	// Anchor is the cell holding the chart's top-left corner.
	Anchor string
	// Width is the chart width in pixels.
	Width uint
	// Height is the chart height in pixels.
	Height uint
}

// Options configures report generation.
type Options struct {
	// DatabasePath is the SQLite store to read.
	DatabasePath string
	// OutputPath is the workbook to write.
	OutputPath string
	// Chart configures the Pareto chart.
	Chart ChartOptions
}

// DefaultChartOptions returns the chart layout of the standard report.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Rows:   24,
		Anchor: "E2",
		Width:  885,
		Height: 500,
	}
}

// DefaultOptions returns default report options.
func DefaultOptions() Options {
	return Options{
		DatabasePath: "chinook.db",
		OutputPath:   "chinook_reports.xlsx",
		Chart:        DefaultChartOptions(),
	}
}
