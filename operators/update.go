package operators

import (
	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/eval"
	"github.com/freeeve/machdb/row"
)

// Update applies stmt's SET list to every row of t matching where, per
// spec §4.7 Update: each SET expression is evaluated against the row's
// pre-update values, assigned with the same type-conversion and
// per-column constraint rollback as Insert (assignChecked), and UNIQUE
// excludes the row being updated itself. Returns the number of rows
// matched (and thus assigned to, even if some of their columns got
// reverted by a failing check).
func Update(logger dblog.Logger, cat *catalog.Catalog, t *catalog.Table, stmt *ast.UpdateStmt) int {
	indices := FilterIndices(t, stmt.Where)
	for _, i := range indices {
		orig := t.Rows[i]
		b := eval.Binding{Schema: t.Schema, Row: orig, Logger: logger}
		next := row.CopyRow(orig)
		for _, set := range stmt.Set {
			colIdx, ok := row.ColumnIndex(t.Schema, set.Column.Name())
			if !ok {
				continue
			}
			v := eval.EvalValue(set.Expr, b)
			assignChecked(logger, cat, t, &next, colIdx, v, i)
		}
		t.Rows[i] = next
	}
	return len(indices)
}
