package table

// csv.go - typed CSV reading and writing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// timestampLayouts are tried in order when parsing timestamp cells.
var timestampLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ReadCSV reads a CSV stream with a header row into a table. Column names
// come from the header; column types come from the schema, matched by name.
// Header names not declared in the schema default to TypeString. Empty cells
// are null. A cell that cannot be parsed into its declared type fails the
// load immediately with row and column context.
func ReadCSV(r io.Reader, schema Schema) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	b := NewBuilder(header, schema)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", b.rows+1, err)
		}
		if err := b.AppendRecord(rec); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// ReadCSVFile reads a CSV file into a table. See ReadCSV.
func ReadCSVFile(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, schema)
}

// WriteCSV writes the table as CSV with a header row. Null cells are written
// empty; timestamps use the 2006-01-02 layout.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return err
	}
	rec := make([]string, len(t.cols))
	for i := 0; i < t.NumRows(); i++ {
		for j, c := range t.cols {
			rec[j] = c.cellString(i)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to a CSV file. See WriteCSV.
func (t *Table) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	if err := t.WriteCSV(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (c *Column) cellString(i int) string {
	if c.nulls[i] {
		return ""
	}
	switch c.typ {
	case TypeInt:
		return strconv.FormatInt(c.ints[i], 10)
	case TypeFloat:
		return strconv.FormatFloat(c.floats[i], 'g', -1, 64)
	case TypeTimestamp:
		return c.times[i].Format("2006-01-02")
	default:
		return c.strs[i]
	}
}

// =============================================================================
// Builder
// =============================================================================

// Builder accumulates string records into typed columns. It backs both the
// CSV reader and the DuckDB loading path. An empty cell is a null.
type Builder struct {
	builders []*columnBuilder
	header   []string
	rows     int
}

// NewBuilder creates a builder for the given header. Column types come from
// the schema, matched by name; undeclared names default to TypeString.
func NewBuilder(header []string, schema Schema) *Builder {
	b := &Builder{header: header}
	for _, name := range header {
		typ, _ := schema.TypeOf(name)
		b.builders = append(b.builders, &columnBuilder{name: name, typ: typ})
	}
	return b
}

// AppendRecord parses one record into the typed columns, failing fast with
// row and column context on a type mismatch.
func (b *Builder) AppendRecord(rec []string) error {
	if len(rec) != len(b.header) {
		return fmt.Errorf("row %d has %d cells, want %d", b.rows+1, len(rec), len(b.header))
	}
	b.rows++
	for i, cell := range rec {
		if err := b.builders[i].append(cell); err != nil {
			return fmt.Errorf("row %d, column %q: %w", b.rows, b.header[i], err)
		}
	}
	return nil
}

// Build finalizes the accumulated columns into a table.
func (b *Builder) Build() (*Table, error) {
	cols := make([]*Column, len(b.builders))
	for i, cb := range b.builders {
		cols[i] = cb.build()
	}
	return New(cols...)
}

type columnBuilder struct {
	name string
	typ  Type

	ints   []int64
	floats []float64
	strs   []string
	times  []time.Time
	nulls  []bool
	n      int
}

func (b *columnBuilder) append(cell string) error {
	null := cell == ""
	b.nulls = append(b.nulls, null)
	b.n++
	switch b.typ {
	case TypeInt:
		var v int64
		if !null {
			var err error
			v, err = strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return fmt.Errorf("parse %q as int: %w", cell, err)
			}
		}
		b.ints = append(b.ints, v)
	case TypeFloat:
		var v float64
		if !null {
			var err error
			v, err = strconv.ParseFloat(cell, 64)
			if err != nil {
				return fmt.Errorf("parse %q as float: %w", cell, err)
			}
		}
		b.floats = append(b.floats, v)
	case TypeTimestamp:
		var v time.Time
		if !null {
			var err error
			v, err = ParseTimestamp(cell)
			if err != nil {
				return err
			}
		}
		b.times = append(b.times, v)
	default:
		b.strs = append(b.strs, cell)
	}
	return nil
}

func (b *columnBuilder) build() *Column {
	return &Column{
		name:    b.name,
		typ:     b.typ,
		ints:    b.ints,
		floats:  b.floats,
		strs:    b.strs,
		times:   b.times,
		nulls:   b.nulls,
		numRows: b.n,
	}
}

// ParseTimestamp parses a timestamp cell, trying the supported layouts in
// order.
func ParseTimestamp(cell string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse %q as timestamp", cell)
}
