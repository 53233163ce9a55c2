// Package source reads report tables from a SQLite music-store database.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// ErrNotFound indicates the database path does not exist.
var ErrNotFound = errors.New("database file not found")

// DB is a single-connection, read-only handle to the store.
type DB struct {
	db *sql.DB
}

// Open opens the SQLite file at path read-only and checks that it is a valid store.
// The file is never created.
func Open(ctx context.Context, path string) (*DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	// sqlite_master is readable in every valid store; other files fail here.
	var tables int
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master").Scan(&tables); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("not a valid database: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("tables", tables).Msg("database opened")
	return &DB{db: db}, nil
}

// readOnlyDSN builds a read-only SQLite URI for path.
// The path is percent-escaped so '#', '?' and '%' stay part of the file name.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

// New wraps an existing connection pool.
func New(db *sql.DB) *DB {
	return &DB{db: db}
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Query executes a parameterless read query and returns its result as a table.
// Column types are taken from the first non-NULL value of each column.
func (d *DB) Query(ctx context.Context, name, query string) (*models.ReportTable, error) {
	if d.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	table := &models.ReportTable{
		Name:    name,
		Columns: make([]models.Column, len(cols)),
		Rows:    [][]any{},
	}
	for i, col := range cols {
		table.Columns[i] = models.Column{Name: col}
	}

	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(table.Rows)+1, err)
		}
		for i := range values {
			values[i] = normalize(values[i])
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	for i := range table.Columns {
		table.Columns[i].Type = inferType(table.Rows, i)
	}

	return table, nil
}

// normalize maps driver values onto int64, float64, string or nil.
func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	case bool:
		if t {
			return int64(1)
		}
		return int64(0)
	default:
		return v
	}
}

func inferType(rows [][]any, col int) models.ColumnType {
	for _, row := range rows {
		switch row[col].(type) {
		case nil:
			continue
		case int64:
			return models.ColumnInteger
		case float64:
			return models.ColumnReal
		default:
			return models.ColumnText
		}
	}
	return models.ColumnText
}
