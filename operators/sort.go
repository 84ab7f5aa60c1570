package operators

import (
	"sort"

	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/eval"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/value"
)

// SortRows stably sorts rows in place against schema according to
// orderBy, a multi-key ASC/DESC list (spec §4.7 Sort). The source used
// a bubble sort; spec requires only a stable comparison sort, so this
// uses sort.SliceStable, falling through each key in turn and
// preserving original relative order once all keys tie.
func SortRows(rows []row.Row, schema *row.TableDef, orderBy []*ast.OrderByExpr) {
	if len(orderBy) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, ob := range orderBy {
			bi := eval.Binding{Schema: schema, Row: rows[i]}
			bj := eval.Binding{Schema: schema, Row: rows[j]}
			vi := eval.EvalValue(ob.Expr, bi)
			vj := eval.EvalValue(ob.Expr, bj)
			ord := value.Compare(vi, vj)
			if ord == value.Equal || ord == value.Unordered {
				continue
			}
			less := ord == value.Less
			if ob.Desc {
				less = !less
			}
			return less
		}
		return false
	})
}
