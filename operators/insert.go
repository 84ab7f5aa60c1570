package operators

import (
	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/eval"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/value"
)

// Insert appends the rows of stmt to t, per spec §4.7 Insert.
//
// With an explicit column list, provided values land at the named
// column positions and every other column stays NULL. Without one,
// values fill columns in declaration order. Either way, a row whose
// value count doesn't match the column count (the list's, or the
// schema's when there is no list) is an ERROR for that row only — it
// is skipped and insertion continues with the next row (documented
// source behavior, not a whole-statement abort).
//
// Each value is converted to its column's declared type when the
// table is strict; a failed conversion records NULL and logs rather
// than failing the row. After assignment, NOT NULL, UNIQUE, and
// FOREIGN KEY are checked in that order; a failing check rolls back
// only that column's new value (back to NULL), not the rest of the
// row — the source's partial-row behavior, preserved here rather than
// upgraded to whole-row rejection.
func Insert(logger dblog.Logger, cat *catalog.Catalog, t *catalog.Table, stmt *ast.InsertStmt) int {
	inserted := 0
	hasColumnList := len(stmt.Columns) > 0

	for _, exprs := range stmt.Values {
		var targets []int
		if hasColumnList {
			if len(exprs) != len(stmt.Columns) {
				logf(logger, dblog.Error, "insert into %s: %d values for %d-column list, row skipped", t.Name, len(exprs), len(stmt.Columns))
				continue
			}
			targets = targetColumns(t.Schema, stmt.Columns)
		} else {
			if len(exprs) != len(t.Schema.Columns) {
				logf(logger, dblog.Error, "insert into %s: %d values for %d columns, row skipped", t.Name, len(exprs), len(t.Schema.Columns))
				continue
			}
			targets = targetColumns(t.Schema, nil)
		}

		r := row.NewRow(len(t.Schema.Columns))
		blank := eval.Binding{Schema: t.Schema, Row: r, Logger: logger}
		for i, target := range targets {
			if target < 0 || i >= len(exprs) {
				continue
			}
			v := eval.EvalValue(exprs[i], blank)
			assignChecked(logger, cat, t, &r, target, v, -1)
		}
		t.Rows = append(t.Rows, r)
		inserted++
	}
	return inserted
}

// assignChecked writes v (type-converted per the column's declared
// type when the table is strict) into r.Values[colIdx], then runs the NOT NULL/UNIQUE/FOREIGN
// KEY checks on that column; any failure reverts just that column's
// value to NULL and logs a warning, per spec §4.7's partial-row quirk.
func assignChecked(logger dblog.Logger, cat *catalog.Catalog, t *catalog.Table, r *row.Row, colIdx int, v value.Value, excludeRow int) {
	col := t.Schema.Columns[colIdx]
	if !v.IsNull() && t.Schema.Strict {
		converted, ok := value.TryConvert(v, col.Type)
		if !ok {
			logf(logger, dblog.Warn, "%s.%s: value does not convert to %s, using NULL", t.Name, col.Name, col.Type)
			converted = value.Null
		}
		v = converted
	}
	row.SetValue(r, colIdx, v)

	if err := catalog.CheckNotNull(t.Schema, colIdx, v); err != nil {
		logf(logger, dblog.Warn, "%s.%s: %v, reverting column to NULL", t.Name, col.Name, err)
		row.SetValue(r, colIdx, value.Null)
		return
	}
	if err := catalog.CheckUnique(t, colIdx, v, excludeRow); err != nil {
		logf(logger, dblog.Warn, "%s.%s: %v, reverting column to NULL", t.Name, col.Name, err)
		row.SetValue(r, colIdx, value.Null)
		return
	}
	if err := cat.CheckForeignKey(t.Schema, colIdx, v); err != nil {
		logf(logger, dblog.Warn, "%s.%s: %v, reverting column to NULL", t.Name, col.Name, err)
		row.SetValue(r, colIdx, value.Null)
		return
	}
}

func logf(logger dblog.Logger, level dblog.Level, format string, args ...any) {
	if logger != nil {
		logger.Log(level, format, args...)
	}
}

// targetColumns resolves an optional explicit column list to schema
// indices. An empty list means "every column, in declaration order"
// (spec §4.7). An unresolvable name maps to -1 and is skipped.
func targetColumns(schema *row.TableDef, cols []*ast.ColName) []int {
	if len(cols) == 0 {
		out := make([]int, len(schema.Columns))
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, len(cols))
	for i, c := range cols {
		idx, ok := row.ColumnIndex(schema, c.Name())
		if !ok {
			idx = -1
		}
		out[i] = idx
	}
	return out
}
