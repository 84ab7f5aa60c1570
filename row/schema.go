// Package row implements the Row & Schema component (spec §4.2, §3):
// an ordered value sequence plus the column metadata and constraints
// it must satisfy.
package row

import (
	"fmt"

	"github.com/freeeve/machdb/value"
)

// MaxColumnNameLen is spec §3's column/table name length bound.
const MaxColumnNameLen = 31

// Flag is a bitset of column constraint kinds from spec §3.
type Flag uint8

const (
	Nullable Flag = 1 << iota
	Unique
	PrimaryKey
	ForeignKey
)

func (f Flag) Has(bit Flag) bool { return f&bit != 0 }

// ColumnDef describes one column of a TableDef.
type ColumnDef struct {
	Name             string
	Type             value.Type
	Flags            Flag
	ReferencesTable  string
	ReferencesColumn string
}

// TableDef is a table's schema: its ordered columns and whether it is
// strict. For a strict table, INSERT and UPDATE convert each non-NULL
// value to the column's declared type with value.TryConvert (INT
// widens to FLOAT, numeric strings are parsed), storing NULL when the
// conversion fails; for a non-strict table values are stored as
// evaluated.
type TableDef struct {
	Columns []ColumnDef
	Strict  bool
}

// ColumnIndex performs the case-sensitive linear scan spec §4.2
// specifies for column_index(schema, name).
func ColumnIndex(schema *TableDef, name string) (int, bool) {
	for i, c := range schema.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Row is an ordered sequence of Values, one per column of its table's
// schema (spec §3 invariant 1).
type Row struct {
	Values []value.Value
}

// NewRow allocates a Row of the given width, every cell NULL.
func NewRow(width int) Row {
	vs := make([]value.Value, width)
	for i := range vs {
		vs[i] = value.Null
	}
	return Row{Values: vs}
}

// SetValue replaces the i-th value of r. Out-of-range i is a
// programming error per spec §4.2, so it panics rather than returning
// an error — callers are expected to have validated the index against
// the schema already.
func SetValue(r *Row, i int, v value.Value) {
	if i < 0 || i >= len(r.Values) {
		panic(fmt.Sprintf("row: set_value index %d out of range (len %d)", i, len(r.Values)))
	}
	r.Values[i] = v
}

// CopyRow deep-copies src. Value is an immutable value type in this
// implementation (strings are Go strings, themselves immutable), so
// copying the slice is sufficient to give the new Row independent
// ownership, matching spec's "deep-copies including strings" contract.
func CopyRow(src Row) Row {
	vs := make([]value.Value, len(src.Values))
	copy(vs, src.Values)
	return Row{Values: vs}
}
