package operators

import (
	"fmt"

	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/eval"
	"github.com/freeeve/machdb/row"
)

// Join implements spec §4.7: only INNER and LEFT OUTER are supported;
// nested-loop cross product. For each left row, for each right row,
// the ON predicate is evaluated with the join evaluator variant
// (spec §4.5, implemented here as eval.Merge + eval.EvalPredicate).
// INNER emits matched pairs only; LEFT emits every left row at least
// once, concatenated with right-width NULLs when nothing matched.
// The result is materialized into a new table with a synthesized name
// appended to the catalog (spec §3 "Synthesized join table").
func Join(cat *catalog.Catalog, joinType ast.JoinType, left, right *catalog.Table, on ast.Expr) (*catalog.Table, error) {
	if joinType != ast.JoinInner && joinType != ast.JoinLeft {
		return nil, fmt.Errorf("join type %s is not supported", joinType)
	}

	mergedSchema := &row.TableDef{
		Columns: append(append([]row.ColumnDef{}, left.Schema.Columns...), right.Schema.Columns...),
	}

	var outRows []row.Row
	for _, lr := range left.Rows {
		matched := false
		for _, rr := range right.Rows {
			b := eval.Merge(left.Schema, lr, right.Schema, &rr)
			if eval.EvalPredicate(on, b) {
				matched = true
				outRows = append(outRows, row.CopyRow(b.Row))
			}
		}
		if !matched && joinType == ast.JoinLeft {
			b := eval.Merge(left.Schema, lr, right.Schema, nil)
			outRows = append(outRows, row.CopyRow(b.Row))
		}
	}

	name := cat.NextJoinTableName(left.ID, right.ID)
	t, err := cat.CreateTable(name, mergedSchema)
	if err != nil {
		return nil, err
	}
	t.Rows = outRows
	return t, nil
}

// LogJoin records the shape of a completed join, used by the executor
// so Join's materialization side effect is visible in the log stream
// the way every other operator's is.
func LogJoin(logger dblog.Logger, joinType ast.JoinType, left, right, result *catalog.Table) {
	if logger == nil {
		return
	}
	logger.Log(dblog.Debug, "join %s %s x %s -> %s (%d rows)", joinType, left.Name, right.Name, result.Name, len(result.Rows))
}
