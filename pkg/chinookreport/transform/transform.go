// Package transform derives presentation columns from query results.
package transform

import (
	"fmt"

	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
)

// RunningShareColumn is the header of the cumulative share column.
const RunningShareColumn = "Running Total %"

// RunningShare returns the cumulative sum of values normalized to their total.
// For non-negative input the result is non-decreasing, within [0,1], and ends at 1.
// A zero total yields all zeros.
func RunningShare(values []float64) []float64 {
	var total float64
	for _, v := range values {
		total += v
	}

	shares := make([]float64, len(values))
	if total == 0 {
		return shares
	}

	var running float64
	for i, v := range values {
		running += v
		shares[i] = running / total
	}
	if len(shares) > 0 {
		shares[len(shares)-1] = 1
	}
	return shares
}

// AddRunningShare appends the running share of the source column, in the table's row order.
func AddRunningShare(t *models.ReportTable, source, name string) error {
	values, err := t.Float64s(source)
	if err != nil {
		return err
	}
	for i, v := range values {
		if v < 0 {
			return fmt.Errorf("column %q row %d: negative value %v", source, i+1, v)
		}
	}

	shares := RunningShare(values)
	cells := make([]any, len(shares))
	for i, s := range shares {
		cells[i] = s
	}
	return t.AppendColumn(models.Column{Name: name, Type: models.ColumnReal}, cells)
}

// AssignIndex labels rows 1..n for display.
func AssignIndex(t *models.ReportTable) error {
	index := make([]int, t.Len())
	for i := range index {
		index[i] = i + 1
	}
	return t.SetIndex(index)
}
