// Package eval implements the Expression Evaluator (spec §4.5): two
// modes (predicate, value) over the same ast.Expr tree shape, plus the
// scalar function library (spec §4.6). The join evaluator variant
// (spec §4.5) is not a separate algorithm here — it is the same
// Binding evaluated against a temporarily merged schema/row, which is
// exactly what spec's own wording supports: "Schema of result =
// left.columns ++ right.columns ... duplicate names allowed — later
// lookups prefer leftmost match."
package eval

import (
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/value"
)

// Binding pairs one row with the schema that names its columns. It is
// the unit both predicate mode and value mode evaluate an expression
// against. For a join's ON predicate, callers build a Binding whose
// Schema is left.Columns++right.Columns and whose Row is the
// concatenation of the left and right row values (or right-width
// NULLs for an unmatched LEFT JOIN row) — column lookup naturally
// checks left columns first because they come first in the slice.
type Binding struct {
	Schema *row.TableDef
	Row    row.Row
	Logger dblog.Logger // may be nil; nil behaves like dblog.Nop
}

func (b Binding) log(level dblog.Level, format string, args ...any) {
	if b.Logger == nil {
		return
	}
	b.Logger.Log(level, format, args...)
}

// LookupColumn resolves a bare column name against b.Schema, per spec
// §4.5: unknown column names lookup fails (callers warn and fall back
// to NULL in value mode; predicate mode treats it as NULL too). When a
// name appears more than once (duplicate names from a join merge),
// the first — i.e. leftmost — match wins, per spec §4.7 Join.
func (b Binding) LookupColumn(name string) (value.Value, bool) {
	for i, c := range b.Schema.Columns {
		if c.Name == name {
			return b.Row.Values[i], true
		}
	}
	return value.Null, false
}

// Merge builds the join-mode Binding described above: left columns
// then right columns, left row values then right row values. rightRow
// may be nil for an unmatched LEFT JOIN row, in which case the right
// side is filled with NULLs.
func Merge(leftSchema *row.TableDef, leftRow row.Row, rightSchema *row.TableDef, rightRow *row.Row) Binding {
	cols := make([]row.ColumnDef, 0, len(leftSchema.Columns)+len(rightSchema.Columns))
	cols = append(cols, leftSchema.Columns...)
	cols = append(cols, rightSchema.Columns...)

	vals := make([]value.Value, 0, len(cols))
	vals = append(vals, leftRow.Values...)
	if rightRow != nil {
		vals = append(vals, rightRow.Values...)
	} else {
		for range rightSchema.Columns {
			vals = append(vals, value.Null)
		}
	}

	return Binding{
		Schema: &row.TableDef{Columns: cols},
		Row:    row.Row{Values: vals},
	}
}
