package models

// ChartKind is the plot type of a chart series.
type ChartKind string

const (
	// ChartColumn is a vertical bar plot.
	ChartColumn ChartKind = "column"
	// ChartLine is a line plot.
	ChartLine ChartKind = "line"
)

// Axis selects the value axis a series is plotted against.
type Axis string

const (
	// AxisPrimary is the left value axis.
	AxisPrimary Axis = "primary"
	// AxisSecondary is the right value axis.
	AxisSecondary Axis = "secondary"
)

// CellRef addresses a single cell (1-based column and row).
type CellRef struct {
	Sheet  string `json:"sheet,omitempty"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
}

// CellRange addresses a vertical span of cells within one column.
type CellRange struct {
	Sheet    string `json:"sheet"`
	Column   int    `json:"column"`
	FirstRow int    `json:"first_row"`
	LastRow  int    `json:"last_row"`
}

// Rows returns the number of rows covered by the range.
func (r CellRange) Rows() int {
	if r.LastRow < r.FirstRow {
		return 0
	}
	return r.LastRow - r.FirstRow + 1
}

// ChartSpec describes one data series and its axis binding.
type ChartSpec struct {
	// Kind is the plot type.
	Kind ChartKind `json:"kind"`
	// Name references the cell holding the series name.
	Name CellRef `json:"name"`
	// Label, when set, is written into the Name cell before the chart is inserted.
	Label string `json:"label,omitempty"`
	// Categories are the category labels (X axis).
	Categories CellRange `json:"categories"`
	// Values are the plotted values.
	Values CellRange `json:"values"`
	// Axis is the value axis the series uses.
	Axis Axis `json:"axis"`
	// AxisTitle is the title of the series' value axis.
	AxisTitle string `json:"axis_title,omitempty"`
}

// ComboChart combines several series into one chart embedded in a sheet.
type ComboChart struct {
	// Sheet is the worksheet the chart is inserted into.
	Sheet string `json:"sheet"`
	// Anchor is the top-left cell of the chart.
	Anchor CellRef `json:"anchor"`
	// Title is the chart title.
	Title string `json:"title"`
	// XAxisTitle is the category axis title.
	XAxisTitle string `json:"x_axis_title,omitempty"`
	// Width is the chart width in pixels.
	Width uint `json:"width"`
	// Height is the chart height in pixels.
	Height uint `json:"height"`
	// Series lists the series; the first one defines the base chart.
	Series []ChartSpec `json:"series"`
}
