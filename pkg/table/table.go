// Package table provides an immutable in-memory columnar dataset with
// explicit per-column type tags. Values are parsed into their declared type
// at load time; a value that does not fit its column type is a load error,
// not a deferred check failure.
package table

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// Column
// =============================================================================

// Column holds one named, typed sequence of values with a null mask.
type Column struct {
	name string
	typ  Type

	ints    []int64
	floats  []float64
	strs    []string // TypeString and TypeCategorical
	times   []time.Time
	nulls   []bool
	numRows int
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the column type tag.
func (c *Column) Type() Type { return c.typ }

// Len returns the number of rows in the column.
func (c *Column) Len() int { return c.numRows }

// IsNull reports whether the value at row i is null.
func (c *Column) IsNull(i int) bool { return c.nulls[i] }

// Int returns the integer value at row i.
// The column must have TypeInt; null rows return 0.
func (c *Column) Int(i int) int64 { return c.ints[i] }

// Float returns the float value at row i. Valid for TypeFloat and TypeInt
// columns (ints are widened); null rows return 0.
func (c *Column) Float(i int) float64 {
	if c.typ == TypeInt {
		return float64(c.ints[i])
	}
	return c.floats[i]
}

// Value returns the string value at row i for string-like columns.
func (c *Column) Value(i int) string { return c.strs[i] }

// Time returns the timestamp at row i for TypeTimestamp columns.
func (c *Column) Time(i int) time.Time { return c.times[i] }

// Levels returns the sorted distinct non-null values of a string-like column.
func (c *Column) Levels() []string {
	seen := make(map[string]struct{})
	for i := 0; i < c.numRows; i++ {
		if c.nulls[i] {
			continue
		}
		seen[c.strs[i]] = struct{}{}
	}
	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)
	return levels
}

// ValueCounts returns the frequency of each distinct non-null value of a
// string-like column.
func (c *Column) ValueCounts() map[string]int {
	counts := make(map[string]int)
	for i := 0; i < c.numRows; i++ {
		if c.nulls[i] {
			continue
		}
		counts[c.strs[i]]++
	}
	return counts
}

// filter returns a copy of the column containing only rows where keep is true.
func (c *Column) filter(keep []bool) *Column {
	out := &Column{name: c.name, typ: c.typ}
	for i := 0; i < c.numRows; i++ {
		if !keep[i] {
			continue
		}
		out.nulls = append(out.nulls, c.nulls[i])
		switch c.typ {
		case TypeInt:
			out.ints = append(out.ints, c.ints[i])
		case TypeFloat:
			out.floats = append(out.floats, c.floats[i])
		case TypeTimestamp:
			out.times = append(out.times, c.times[i])
		default:
			out.strs = append(out.strs, c.strs[i])
		}
		out.numRows++
	}
	return out
}

// =============================================================================
// Column constructors
// =============================================================================

// NewIntColumn builds a TypeInt column. nulls may be nil for no nulls.
func NewIntColumn(name string, values []int64, nulls []bool) *Column {
	return &Column{name: name, typ: TypeInt, ints: values, nulls: nullMask(nulls, len(values)), numRows: len(values)}
}

// NewFloatColumn builds a TypeFloat column. nulls may be nil for no nulls.
func NewFloatColumn(name string, values []float64, nulls []bool) *Column {
	return &Column{name: name, typ: TypeFloat, floats: values, nulls: nullMask(nulls, len(values)), numRows: len(values)}
}

// NewStringColumn builds a TypeString column. nulls may be nil for no nulls.
func NewStringColumn(name string, values []string, nulls []bool) *Column {
	return &Column{name: name, typ: TypeString, strs: values, nulls: nullMask(nulls, len(values)), numRows: len(values)}
}

// NewCategoricalColumn builds a TypeCategorical column. nulls may be nil.
func NewCategoricalColumn(name string, values []string, nulls []bool) *Column {
	return &Column{name: name, typ: TypeCategorical, strs: values, nulls: nullMask(nulls, len(values)), numRows: len(values)}
}

// NewTimestampColumn builds a TypeTimestamp column. nulls may be nil.
func NewTimestampColumn(name string, values []time.Time, nulls []bool) *Column {
	return &Column{name: name, typ: TypeTimestamp, times: values, nulls: nullMask(nulls, len(values)), numRows: len(values)}
}

func nullMask(nulls []bool, n int) []bool {
	if nulls != nil {
		return nulls
	}
	return make([]bool, n)
}

// =============================================================================
// Table
// =============================================================================

// Table is an ordered sequence of equal-length named columns. Tables are
// treated as immutable once built; checks and the cleaner never modify one
// in place.
type Table struct {
	cols  []*Column
	index map[string]int
}

// New builds a table from columns, enforcing the equal-length and
// unique-name invariants.
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.name)
		}
		if i > 0 && c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.name, c.Len(), cols[0].Len())
		}
		t.index[c.name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// NumRows returns the row count. An empty table has zero rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int { return len(t.cols) }

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// Column returns the named column, or false when absent.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// NumericColumn returns the named column, requiring TypeInt or TypeFloat.
func (t *Table) NumericColumn(name string) (*Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	if c.typ != TypeInt && c.typ != TypeFloat {
		return nil, fmt.Errorf("column %q is %s, want a numeric type", name, c.typ)
	}
	return c, nil
}

// StringColumn returns the named column, requiring a string-like type.
func (t *Table) StringColumn(name string) (*Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	if c.typ != TypeString && c.typ != TypeCategorical {
		return nil, fmt.Errorf("column %q is %s, want string or categorical", name, c.typ)
	}
	return c, nil
}

// Filter returns a new table containing only rows where keep is true.
// keep must have NumRows entries.
func (t *Table) Filter(keep []bool) (*Table, error) {
	if len(keep) != t.NumRows() {
		return nil, fmt.Errorf("filter mask has %d entries, want %d", len(keep), t.NumRows())
	}
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.filter(keep)
	}
	return New(cols...)
}

// ReplaceColumn returns a new table with the same-named column swapped for
// col, preserving column order. The replacement must have matching length.
func (t *Table) ReplaceColumn(col *Column) (*Table, error) {
	i, ok := t.index[col.name]
	if !ok {
		return nil, fmt.Errorf("no column %q", col.name)
	}
	if col.Len() != t.NumRows() {
		return nil, fmt.Errorf("replacement column %q has %d rows, want %d", col.name, col.Len(), t.NumRows())
	}
	cols := make([]*Column, len(t.cols))
	copy(cols, t.cols)
	cols[i] = col
	return New(cols...)
}
