package writer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
	"github.com/xuri/excelize/v2"
)

var chartTypes = map[models.ChartKind]excelize.ChartType{
	models.ChartColumn: excelize.Col,
	models.ChartLine:   excelize.Line,
}

// AddComboChart combines the chart's series into one chart and inserts it at the anchor.
// The first series forms the base chart; the others are overlaid on it.
func (w *Workbook) AddComboChart(c models.ComboChart) error {
	if len(c.Series) == 0 {
		return fmt.Errorf("chart %q has no series", c.Title)
	}

	charts := make([]*excelize.Chart, 0, len(c.Series))
	for _, s := range c.Series {
		chart, err := seriesChart(s)
		if err != nil {
			return fmt.Errorf("chart %q: %w", c.Title, err)
		}
		charts = append(charts, chart)
	}

	base := charts[0]
	base.Title = []excelize.RichTextRun{{Text: c.Title}}
	if c.XAxisTitle != "" {
		base.XAxis.Title = []excelize.RichTextRun{{Text: c.XAxisTitle}}
	}
	base.Dimension = excelize.ChartDimension{Width: c.Width, Height: c.Height}
	base.Legend = excelize.ChartLegend{Position: "bottom"}

	for _, s := range c.Series {
		if err := w.writeLabel(s); err != nil {
			return fmt.Errorf("chart %q: %w", c.Title, err)
		}
	}

	anchor, err := excelize.CoordinatesToCellName(c.Anchor.Column, c.Anchor.Row)
	if err != nil {
		return fmt.Errorf("chart %q anchor: %w", c.Title, err)
	}

	if err := w.f.AddChart(c.Sheet, anchor, base, charts[1:]...); err != nil {
		return fmt.Errorf("chart %q: %w", c.Title, err)
	}
	return nil
}

// writeLabel stores a series label in its name cell. Existing content is never overwritten.
func (w *Workbook) writeLabel(s models.ChartSpec) error {
	if s.Label == "" {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(s.Name.Column, s.Name.Row)
	if err != nil {
		return err
	}
	current, err := w.f.GetCellValue(s.Name.Sheet, cell)
	if err != nil {
		return err
	}
	if current != "" && current != s.Label {
		return fmt.Errorf("series label cell %s!%s already holds %q", s.Name.Sheet, cell, current)
	}
	return w.f.SetCellValue(s.Name.Sheet, cell, s.Label)
}

func seriesChart(s models.ChartSpec) (*excelize.Chart, error) {
	chartType, ok := chartTypes[s.Kind]
	if !ok {
		return nil, fmt.Errorf("unsupported chart kind %q", s.Kind)
	}

	name, err := CellRef(s.Name)
	if err != nil {
		return nil, err
	}
	categories, err := RangeRef(s.Categories)
	if err != nil {
		return nil, err
	}
	values, err := RangeRef(s.Values)
	if err != nil {
		return nil, err
	}

	chart := &excelize.Chart{
		Type: chartType,
		Series: []excelize.ChartSeries{{
			Name:       name,
			Categories: categories,
			Values:     values,
		}},
		YAxis: excelize.ChartAxis{
			Secondary: s.Axis == models.AxisSecondary,
		},
	}
	if s.AxisTitle != "" {
		chart.YAxis.Title = []excelize.RichTextRun{{Text: s.AxisTitle}}
	}
	return chart, nil
}

// CellRef renders an absolute single-cell reference such as SongsByGenre!$C$1.
func CellRef(ref models.CellRef) (string, error) {
	cell, err := excelize.CoordinatesToCellName(ref.Column, ref.Row, true)
	if err != nil {
		return "", err
	}
	return quoteSheet(ref.Sheet) + "!" + cell, nil
}

// RangeRef renders an absolute column-span reference such as SongsByGenre!$B$2:$B$25.
func RangeRef(r models.CellRange) (string, error) {
	if r.Rows() == 0 {
		return "", fmt.Errorf("empty range rows %d:%d", r.FirstRow, r.LastRow)
	}
	first, err := excelize.CoordinatesToCellName(r.Column, r.FirstRow, true)
	if err != nil {
		return "", err
	}
	last, err := excelize.CoordinatesToCellName(r.Column, r.LastRow, true)
	if err != nil {
		return "", err
	}
	return quoteSheet(r.Sheet) + "!" + first + ":" + last, nil
}

// quoteSheet quotes sheet names that are not plain identifiers.
func quoteSheet(name string) string {
	plain := name != ""
	for i, r := range name {
		if (i == 0 && unicode.IsDigit(r)) || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.') {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
