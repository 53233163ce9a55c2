package models

// SeriesData is a chart series as stored in a workbook.
type SeriesData struct {
	// NameRange is the reference of the cell holding the series name.
	NameRange string `json:"name_range,omitempty"`
	// CategoryRange is the reference for the category labels.
	CategoryRange string `json:"category_range,omitempty"`
	// ValueRange is the reference for the values.
	ValueRange string `json:"value_range,omitempty"`
}

// PlotData is one chart-type group inside a chart's plot area.
type PlotData struct {
	// Type is the plot type (e.g., Column, Line).
	Type string `json:"type"`
	// Series lists the series of the group.
	Series []SeriesData `json:"series"`
}

// ValueAxisData is a value axis of a chart.
type ValueAxisData struct {
	// Title is the axis title.
	Title string `json:"title,omitempty"`
	// Position is the axis position ("l" or "r").
	Position string `json:"position,omitempty"`
}

// ChartData is an embedded chart read back from a workbook.
type ChartData struct {
	// Name is the drawing object name.
	Name string `json:"name"`
	// Anchor is the cell holding the chart's top-left corner (e.g., "E2").
	Anchor string `json:"anchor"`
	// OffsetX is the horizontal offset from the anchor cell in pixels.
	OffsetX int `json:"offset_x,omitempty"`
	// OffsetY is the vertical offset from the anchor cell in pixels.
	OffsetY int `json:"offset_y,omitempty"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// Plots lists the plot groups in document order.
	Plots []PlotData `json:"plots"`
	// ValueAxes lists the value axes in document order.
	ValueAxes []ValueAxisData `json:"value_axes,omitempty"`
}
