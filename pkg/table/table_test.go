package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnforcesInvariants(t *testing.T) {
	t.Run("unequal column lengths", func(t *testing.T) {
		_, err := New(
			NewIntColumn("a", []int64{1, 2}, nil),
			NewIntColumn("b", []int64{1}, nil),
		)
		assert.Error(t, err)
	})
	t.Run("duplicate column names", func(t *testing.T) {
		_, err := New(
			NewIntColumn("a", []int64{1}, nil),
			NewFloatColumn("a", []float64{1}, nil),
		)
		assert.Error(t, err)
	})
	t.Run("empty table", func(t *testing.T) {
		tbl, err := New()
		require.NoError(t, err)
		assert.Zero(t, tbl.NumRows())
	})
}

func TestColumnAccessors(t *testing.T) {
	tbl, err := New(
		NewIntColumn("id", []int64{1, 2, 3}, nil),
		NewFloatColumn("price", []float64{10, 0, 30}, []bool{false, true, false}),
		NewCategoricalColumn("borough", []string{"Queens", "Bronx", "Queens"}, nil),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "price", "borough"}, tbl.ColumnNames())
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumColumns())

	t.Run("numeric widens ints", func(t *testing.T) {
		col, err := tbl.NumericColumn("id")
		require.NoError(t, err)
		assert.Equal(t, 2.0, col.Float(1))
	})
	t.Run("numeric rejects strings", func(t *testing.T) {
		_, err := tbl.NumericColumn("borough")
		assert.Error(t, err)
	})
	t.Run("string rejects numerics", func(t *testing.T) {
		_, err := tbl.StringColumn("price")
		assert.Error(t, err)
	})
	t.Run("missing column", func(t *testing.T) {
		_, err := tbl.NumericColumn("nope")
		assert.Error(t, err)
	})
	t.Run("null mask", func(t *testing.T) {
		col, err := tbl.NumericColumn("price")
		require.NoError(t, err)
		assert.False(t, col.IsNull(0))
		assert.True(t, col.IsNull(1))
	})
}

func TestLevelsAndValueCounts(t *testing.T) {
	col := NewCategoricalColumn("borough",
		[]string{"Queens", "Bronx", "Queens", ""},
		[]bool{false, false, false, true})

	assert.Equal(t, []string{"Bronx", "Queens"}, col.Levels())
	assert.Equal(t, map[string]int{"Queens": 2, "Bronx": 1}, col.ValueCounts())
}

func TestFilter(t *testing.T) {
	tbl, err := New(
		NewIntColumn("id", []int64{1, 2, 3, 4}, nil),
		NewStringColumn("name", []string{"a", "b", "c", "d"}, nil),
	)
	require.NoError(t, err)

	got, err := tbl.Filter([]bool{true, false, false, true})
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumRows())

	id, _ := got.Column("id")
	assert.Equal(t, int64(1), id.Int(0))
	assert.Equal(t, int64(4), id.Int(1))

	// Source table untouched
	assert.Equal(t, 4, tbl.NumRows())

	t.Run("bad mask length", func(t *testing.T) {
		_, err := tbl.Filter([]bool{true})
		assert.Error(t, err)
	})
}

func TestReplaceColumn(t *testing.T) {
	tbl, err := New(
		NewIntColumn("id", []int64{1, 2}, nil),
		NewStringColumn("last_review", []string{"2019-05-21", "2019-07-01"}, nil),
	)
	require.NoError(t, err)

	ts := []time.Time{
		time.Date(2019, 5, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	got, err := tbl.ReplaceColumn(NewTimestampColumn("last_review", ts, nil))
	require.NoError(t, err)

	// Order preserved, type swapped
	assert.Equal(t, []string{"id", "last_review"}, got.ColumnNames())
	col, _ := got.Column("last_review")
	assert.Equal(t, TypeTimestamp, col.Type())
	assert.Equal(t, ts[0], col.Time(0))

	t.Run("unknown name", func(t *testing.T) {
		_, err := tbl.ReplaceColumn(NewIntColumn("nope", []int64{1, 2}, nil))
		assert.Error(t, err)
	})
	t.Run("length mismatch", func(t *testing.T) {
		_, err := tbl.ReplaceColumn(NewIntColumn("id", []int64{1}, nil))
		assert.Error(t, err)
	})
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
		ok   bool
	}{
		{"int", TypeInt, true},
		{"Float", TypeFloat, true},
		{"datetime", TypeTimestamp, true},
		{"categorical", TypeCategorical, true},
		{"text", TypeString, true},
		{"blob", TypeString, false},
	}
	for _, tt := range tests {
		got, ok := ParseType(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}
