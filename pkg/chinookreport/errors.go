package chinookreport

import (
	"fmt"
)

// Stages reported by DataSourceError and WriteError.
const (
	StageConnect = "connect"
	StageQuery   = "query"
	StageWrite   = "write"
	StageStyle   = "style"
	StageChart   = "chart"
	StageSave    = "save"
)

// DataSourceError represents a failure to open the store or run a metric query.
type DataSourceError struct {
	Stage string // "connect" or "query"
	Path  string
	Query string
	Err   error
}

func (e *DataSourceError) Error() string {
	if e.Stage == StageQuery {
		return fmt.Sprintf("data source error in query %q: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("data source error (%s %s): %v", e.Stage, e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// WriteError represents a failure while building or saving the workbook.
type WriteError struct {
	Stage string // "write", "style", "chart" or "save"
	Sheet string
	Path  string
	Err   error
}

func (e *WriteError) Error() string {
	if e.Stage == StageSave {
		return fmt.Sprintf("write error (save %s): %v", e.Path, e.Err)
	}
	return fmt.Sprintf("write error in sheet %q (%s): %v", e.Sheet, e.Stage, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// InspectError represents a failure reading back one component of a sheet.
type InspectError struct {
	SheetName string
	Component string // "rows", "used_range"
	Err       error
}

func (e *InspectError) Error() string {
	return fmt.Sprintf("inspect error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *InspectError) Unwrap() error {
	return e.Err
}
