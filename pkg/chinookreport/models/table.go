// Package models defines data structures for report generation and read-back.
package models

import (
	"errors"
	"fmt"
)

// ErrFrozen indicates a mutation of a table that has been frozen.
var ErrFrozen = errors.New("table is frozen")

// ColumnType is the value type of a report column.
type ColumnType string

const (
	// ColumnText holds string values.
	ColumnText ColumnType = "text"
	// ColumnInteger holds int64 values.
	ColumnInteger ColumnType = "integer"
	// ColumnReal holds float64 values.
	ColumnReal ColumnType = "real"
)

// Column is a named, typed column of a ReportTable.
type Column struct {
	// Name is the column header, taken from the query projection.
	Name string `json:"name"`
	// Type is the value type of the column.
	Type ColumnType `json:"type"`
}

// ReportTable is an ordered tabular query result.
type ReportTable struct {
	// Name identifies the query that produced the table.
	Name string `json:"name"`
	// Columns lists the columns in projection order.
	Columns []Column `json:"columns"`
	// Rows holds one value per column, in the order returned by the database.
	Rows [][]any `json:"rows"`
	// Index is the 1-based display index, nil when the table has none.
	Index []int `json:"index,omitempty"`

	frozen bool
}

// Len returns the number of rows.
func (t *ReportTable) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the 0-based position of the named column, or -1.
func (t *ReportTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames returns the column names in order.
func (t *ReportTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Float64s returns the named column converted to float64.
// NULL values are returned as 0.
func (t *ReportTable) Float64s(name string) ([]float64, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in %s", name, t.Name)
	}

	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		switch v := row[idx].(type) {
		case nil:
		case int64:
			values[i] = float64(v)
		case float64:
			values[i] = v
		default:
			return nil, fmt.Errorf("column %q row %d: non-numeric value %v (%T)", name, i+1, v, v)
		}
	}
	return values, nil
}

// AppendColumn adds a column with one value per row.
func (t *ReportTable) AppendColumn(col Column, values []any) error {
	if t.frozen {
		return fmt.Errorf("append %q to %s: %w", col.Name, t.Name, ErrFrozen)
	}
	if len(values) != len(t.Rows) {
		return fmt.Errorf("append %q to %s: got %d values for %d rows", col.Name, t.Name, len(values), len(t.Rows))
	}
	if t.ColumnIndex(col.Name) >= 0 {
		return fmt.Errorf("append %q to %s: column already exists", col.Name, t.Name)
	}

	t.Columns = append(t.Columns, col)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// SetIndex assigns the display index.
func (t *ReportTable) SetIndex(index []int) error {
	if t.frozen {
		return fmt.Errorf("index %s: %w", t.Name, ErrFrozen)
	}
	if len(index) != len(t.Rows) {
		return fmt.Errorf("index %s: got %d labels for %d rows", t.Name, len(index), len(t.Rows))
	}
	t.Index = index
	return nil
}

// Freeze marks the table immutable.
func (t *ReportTable) Freeze() {
	t.frozen = true
}

// Frozen reports whether Freeze has been called.
func (t *ReportTable) Frozen() bool {
	return t.frozen
}
