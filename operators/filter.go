// Package operators implements the per-statement operators of spec
// §4.7: Filter, Project, Aggregate, Sort, Join, Insert, Update,
// Delete, and the DDL operators. Each operator is a top-level function
// taking the catalog and operator-specific arguments rather than a
// stateful object, mirroring the teacher parser's preference for flat
// top-level functions (parser/parser.go) over deep object hierarchies.
package operators

import (
	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/eval"
)

// Filter evaluates where against every row of t and returns how many
// rows matched. Spec §4.7: "counts/logs rows matching; used as a gate
// before Project. Does not mutate the input table." The actual row
// selection used to build a result happens in Project/Aggregate via
// FilterIndices, which runs the identical predicate.
func Filter(logger dblog.Logger, t *catalog.Table, where ast.Expr) int {
	indices := FilterIndices(t, where)
	if logger != nil {
		logger.Log(dblog.Debug, "filter %s: %d/%d rows matched", t.Name, len(indices), len(t.Rows))
	}
	return len(indices)
}

// FilterIndices returns the indices of t.Rows matching where in
// predicate mode (spec §4.5). A nil where matches every row.
func FilterIndices(t *catalog.Table, where ast.Expr) []int {
	if where == nil {
		out := make([]int, len(t.Rows))
		for i := range out {
			out[i] = i
		}
		return out
	}
	var out []int
	for i, r := range t.Rows {
		b := eval.Binding{Schema: t.Schema, Row: r}
		if eval.EvalPredicate(where, b) {
			out = append(out, i)
		}
	}
	return out
}
