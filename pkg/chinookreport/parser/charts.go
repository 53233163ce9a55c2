package parser

import (
	"archive/zip"
	"encoding/xml"
	"path"
	"strconv"
	"strings"

	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
	"github.com/xuri/excelize/v2"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// chartInfo holds chart metadata from drawing.xml.
type chartInfo struct {
	name      string
	chartPath string
	anchor    string
	offsetX   int
	offsetY   int
}

// ExtractCharts extracts embedded charts from an xlsx file, keyed by sheet name.
func ExtractCharts(xlsxPath string) (map[string][]models.ChartData, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheetChartMap, err := getSheetChartMap(&r.Reader)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.ChartData)
	for sheetName, chartInfos := range sheetChartMap {
		var charts []models.ChartData
		for _, ci := range chartInfos {
			chart, err := parseChartFile(&r.Reader, ci)
			if err != nil {
				return nil, err
			}
			if chart != nil {
				charts = append(charts, *chart)
			}
		}
		result[sheetName] = charts
	}

	return result, nil
}

// getSheetChartMap returns a mapping of sheet names to their chart info.
func getSheetChartMap(r *zip.Reader) (map[string][]chartInfo, error) {
	result := make(map[string][]chartInfo)

	parts, err := sheetParts(r)
	if err != nil {
		return nil, err
	}

	for sheetName, sheetPath := range parts {
		sheetRelsXML, err := readZipFile(r, relsPathFor(sheetPath))
		if err != nil {
			return nil, err
		}
		if sheetRelsXML == nil {
			continue
		}

		for _, target := range parseRelationships(sheetRelsXML, "drawing") {
			drawingPath := resolveRelativePath(target, path.Dir(sheetPath))
			result[sheetName] = append(result[sheetName], getChartInfosFromDrawing(r, drawingPath)...)
		}
	}

	return result, nil
}

// getChartInfosFromDrawing extracts chart info from a drawing XML file.
func getChartInfosFromDrawing(r *zip.Reader, drawingPath string) []chartInfo {
	var result []chartInfo

	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil || drawingXML == nil {
		return result
	}

	anchors := parseDrawingForCharts(drawingXML)
	if len(anchors) == 0 {
		return result
	}

	relsXML, err := readZipFile(r, relsPathFor(drawingPath))
	if err != nil || relsXML == nil {
		return result
	}
	chartPaths := parseRelationships(relsXML, "chart")

	for _, a := range anchors {
		if chartPath, ok := chartPaths[a.rID]; ok {
			result = append(result, chartInfo{
				name:      a.name,
				chartPath: resolveRelativePath(chartPath, path.Dir(drawingPath)),
				anchor:    a.anchor,
				offsetX:   a.offsetX,
				offsetY:   a.offsetY,
			})
		}
	}

	return result
}

// chartAnchor holds the anchor of a chart frame in drawing.xml.
type chartAnchor struct {
	rID     string
	name    string
	anchor  string
	offsetX int
	offsetY int
}

// parseDrawingForCharts returns chart frames in document order.
func parseDrawingForCharts(data []byte) []chartAnchor {
	var result []chartAnchor
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && (se.Name.Local == "twoCellAnchor" || se.Name.Local == "oneCellAnchor") {
			a := parseAnchor(decoder)
			if a.rID != "" {
				result = append(result, a)
			}
		}
	}

	return result
}

// parseAnchor parses a cell anchor, reading its start cell and chart frame.
func parseAnchor(decoder *xml.Decoder) chartAnchor {
	var a chartAnchor
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				a.anchor, a.offsetX, a.offsetY = parseAnchorFrom(decoder)
				depth--
			case "graphicFrame":
				a.rID, a.name = parseGraphicFrameContent(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return a
}

// parseAnchorFrom converts a zero-based xdr:from marker to a cell name and pixel offsets.
func parseAnchorFrom(decoder *xml.Decoder) (cell string, offsetX, offsetY int) {
	var col, row int
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			txt, err := readElementText(decoder)
			if err != nil {
				break
			}
			v, _ := strconv.ParseInt(strings.TrimSpace(txt), 10, 64)
			switch t.Name.Local {
			case "col":
				col = int(v)
			case "row":
				row = int(v)
			case "colOff":
				offsetX = EMUToPixels(v)
			case "rowOff":
				offsetY = EMUToPixels(v)
			}
		case xml.EndElement:
			depth--
		}
	}

	cell, _ = excelize.CoordinatesToCellName(col+1, row+1)
	return cell, offsetX, offsetY
}

// parseGraphicFrameContent parses graphicFrame content.
func parseGraphicFrameContent(decoder *xml.Decoder) (rID, name string) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				name = attr(t, "name")
			case "chart":
				rID = attr(t, "id")
			}
		case xml.EndElement:
			depth--
		}
	}

	return rID, name
}

// parseChartFile parses a chart XML file.
func parseChartFile(r *zip.Reader, ci chartInfo) (*models.ChartData, error) {
	chartXML, err := readZipFile(r, ci.chartPath)
	if err != nil || chartXML == nil {
		return nil, err
	}

	chart := parseChartXML(chartXML)
	chart.Name = ci.name
	chart.Anchor = ci.anchor
	chart.OffsetX = ci.offsetX
	chart.OffsetY = ci.offsetY
	return chart, nil
}

// parseChartXML parses chart XML content.
func parseChartXML(data []byte) *models.ChartData {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	chart := &models.ChartData{}

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" {
			parseChartElement(decoder, chart)
		}
	}

	return chart
}

// parseChartElement parses the c:chart element.
func parseChartElement(decoder *xml.Decoder, chart *models.ChartData) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				chart.Title = parseChartTitle(decoder)
				depth--
			case "plotArea":
				chart.Plots, chart.ValueAxes = parsePlotArea(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseChartTitle concatenates the text runs of a title element.
func parseChartTitle(decoder *xml.Decoder) string {
	var b strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := readElementText(decoder); err == nil {
					b.WriteString(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(b.String())
}

// parsePlotArea parses every chart-type group and value axis of a plot area.
func parsePlotArea(decoder *xml.Decoder) (plots []models.PlotData, axes []models.ValueAxisData) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if ct, ok := ChartTypeMap[t.Name.Local]; ok {
				plots = append(plots, parsePlotGroup(decoder, ct))
				depth--
			} else if t.Name.Local == "valAx" {
				axes = append(axes, parseValueAxis(decoder))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return plots, axes
}

// parsePlotGroup parses the series of one chart-type element.
// Vertical bar groups are reported as Column.
func parsePlotGroup(decoder *xml.Decoder, chartType string) models.PlotData {
	plot := models.PlotData{Type: chartType}
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "barDir":
				if attr(t, "val") == "col" {
					plot.Type = "Column"
				}
			case "ser":
				plot.Series = append(plot.Series, parseSingleSeries(decoder))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return plot
}

// parseSingleSeries parses a single series element.
func parseSingleSeries(decoder *xml.Decoder) models.SeriesData {
	var s models.SeriesData
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				s.NameRange = parseFormula(decoder)
				depth--
			case "cat":
				s.CategoryRange = parseFormula(decoder)
				depth--
			case "val":
				s.ValueRange = parseFormula(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return s
}

// parseFormula returns the first c:f reference below the current element.
func parseFormula(decoder *xml.Decoder) string {
	var formula string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "f" && formula == "" {
				if txt, err := readElementText(decoder); err == nil {
					formula = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return formula
}

// parseValueAxis parses a value axis element.
func parseValueAxis(decoder *xml.Decoder) models.ValueAxisData {
	var axis models.ValueAxisData
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				axis.Title = parseChartTitle(decoder)
				depth--
			case "axPos":
				axis.Position = attr(t, "val")
			}
		case xml.EndElement:
			depth--
		}
	}

	return axis
}
