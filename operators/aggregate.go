package operators

import (
	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/eval"
	"github.com/freeeve/machdb/value"
)

// Aggregate evaluates the aggregate expressions of a SELECT against
// t's rows matching where, per spec §4.7: exactly one synthetic
// result row comes out, independent of how many rows fed it. Each
// expr must satisfy eval.IsAggregateExpr; non-aggregate expressions
// (e.g. a GROUP BY key projected alongside an aggregate) are not
// handled here — grouping is out of scope (spec Non-goals).
func Aggregate(t *catalog.Table, where ast.Expr, exprs []ast.Expr) []value.Value {
	indices := FilterIndices(t, where)
	out := make([]value.Value, len(exprs))
	for i, expr := range exprs {
		info := eval.DecomposeAggregate(expr)
		out[i] = reduce(t, indices, info)
	}
	return out
}

func reduce(t *catalog.Table, indices []int, info eval.AggregateInfo) value.Value {
	switch info.Func {
	case "COUNT":
		if info.CountAll {
			return value.Int(int64(len(indices)))
		}
		return value.Int(int64(countNonNull(t, indices, info)))
	case "SUM":
		sum, _ := reduceNumeric(t, indices, info)
		return value.Float(sum)
	case "AVG":
		sum, n := reduceNumeric(t, indices, info)
		if n == 0 {
			return value.Float(0)
		}
		return value.Float(sum / float64(n))
	case "MIN":
		return minMax(t, indices, info, true)
	case "MAX":
		return minMax(t, indices, info, false)
	default:
		return value.Err
	}
}

// operandValues evaluates info.Operand against every row named by
// indices, in value mode, applying DISTINCT de-duplication first when
// requested (spec §4.7: "de-duplicate operand values prior to
// reduction using Value equality").
func operandValues(t *catalog.Table, indices []int, info eval.AggregateInfo) []value.Value {
	vals := make([]value.Value, 0, len(indices))
	for _, i := range indices {
		b := eval.Binding{Schema: t.Schema, Row: t.Rows[i]}
		vals = append(vals, eval.EvalValue(info.Operand, b))
	}
	if !info.Distinct {
		return vals
	}
	var out []value.Value
	for _, v := range vals {
		dup := false
		for _, seen := range out {
			if v.DistinctKey() == seen.DistinctKey() {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

func countNonNull(t *catalog.Table, indices []int, info eval.AggregateInfo) int {
	n := 0
	for _, v := range operandValues(t, indices, info) {
		if !v.IsNull() {
			n++
		}
	}
	return n
}

func reduceNumeric(t *catalog.Table, indices []int, info eval.AggregateInfo) (sum float64, count int) {
	for _, v := range operandValues(t, indices, info) {
		f, ok := v.AsFloat()
		if !ok {
			continue
		}
		sum += f
		count++
	}
	return sum, count
}

func minMax(t *catalog.Table, indices []int, info eval.AggregateInfo, wantMin bool) value.Value {
	var best float64
	haveBest := false
	for _, v := range operandValues(t, indices, info) {
		f, ok := v.AsFloat()
		if !ok {
			continue
		}
		if !haveBest || (wantMin && f < best) || (!wantMin && f > best) {
			best = f
			haveBest = true
		}
	}
	if !haveBest {
		return value.Int(0)
	}
	return value.Float(best)
}
