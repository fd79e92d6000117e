// Package source loads datasets into the in-memory table representation.
// The CSV path in pkg/table covers most uses; this package adds a
// DuckDB-backed path for inputs that benefit from its CSV sniffer or that
// already live in a DuckDB database.
package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
	"github.com/stayflow-labs/dataguard/pkg/table"
)

// LoadCSV loads a CSV file through an in-memory DuckDB instance. Every cell
// is read as text and parsed into the declared schema types by the table
// builder, so type tags behave identically across loading paths.
func LoadCSV(ctx context.Context, path string, schema table.Schema) (*table.Table, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT * FROM read_csv_auto(?, header=true, all_varchar=true)", path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer rows.Close()

	return ScanTable(rows, schema)
}

// Query loads the result of an arbitrary query against a DuckDB database
// file into a table.
func Query(ctx context.Context, dbPath, query string, schema table.Schema) (*table.Table, error) {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", dbPath, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query duckdb: %w", err)
	}
	defer rows.Close()

	return ScanTable(rows, schema)
}

// ScanTable drains a SQL result set into a table. Values are scanned as
// nullable text; SQL NULL becomes a null cell. Scanning is separated from
// connection handling so it can be tested without a live database.
func ScanTable(rows *sql.Rows, schema table.Schema) (*table.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	b := table.NewBuilder(cols, schema)
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	rec := make([]string, len(cols))

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range vals {
			if v.Valid {
				rec[i] = v.String
			} else {
				rec[i] = ""
			}
		}
		if err := b.AppendRecord(rec); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return b.Build()
}
