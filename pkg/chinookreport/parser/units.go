// Package parser reads report workbooks back: sheet contents, print areas and embedded charts.
package parser

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
const EMUPerPixel = 9525

// EMUToPixels converts EMU to pixels at 96 DPI.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}
