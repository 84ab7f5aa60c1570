package operators

import (
	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/eval"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/value"
)

// Result is the neutral, QueryResult-shaped output of Project: column
// names plus a row-major matrix of Values. The exec package wraps
// this into its public QueryResult rather than operators depending on
// exec (spec §3's QueryResult belongs to the executor layer, not the
// operator layer).
type Result struct {
	ColumnNames []string
	Rows        [][]value.Value
}

// Project implements spec §4.7 Project, the operator every SELECT
// always runs last. When aggregateResults is non-nil, the pipeline's
// Aggregate step has already run (spec §4.8 step 3) and items are
// assumed to all be aggregate expressions: Project reuses the
// precomputed values instead of re-evaluating, producing the single
// synthetic row Aggregate contracts for. Otherwise Project evaluates
// items in value mode against every row matching where, after sorting
// by orderBy and before applying limit.
func Project(t *catalog.Table, where ast.Expr, items []ast.SelectExpr, orderBy []*ast.OrderByExpr, limit *ast.Limit, aggregateResults []value.Value) Result {
	if aggregateResults != nil {
		return projectAggregate(items, aggregateResults)
	}
	return projectRows(t, where, items, orderBy, limit)
}

func projectAggregate(items []ast.SelectExpr, results []value.Value) Result {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = columnName(item, i)
	}
	return Result{ColumnNames: names, Rows: [][]value.Value{results}}
}

func projectRows(t *catalog.Table, where ast.Expr, items []ast.SelectExpr, orderBy []*ast.OrderByExpr, limit *ast.Limit) Result {
	names := outputColumnNames(t.Schema, items)

	indices := FilterIndices(t, where)
	rows := make([]row.Row, len(indices))
	for i, idx := range indices {
		rows[i] = t.Rows[idx]
	}
	SortRows(rows, t.Schema, orderBy)

	start, count := limitBounds(limit, len(rows))
	out := make([][]value.Value, 0, count)
	for _, r := range rows[start : start+count] {
		b := eval.Binding{Schema: t.Schema, Row: r}
		out = append(out, projectOneRow(b, t.Schema, items))
	}
	return Result{ColumnNames: names, Rows: out}
}

// outputColumnNames expands `*` items against schema and names every
// other item per spec §4.7: explicit alias, else bare column name,
// else the literal fallback "expr".
func outputColumnNames(schema *row.TableDef, items []ast.SelectExpr) []string {
	var names []string
	for i, item := range items {
		if isStar(item) {
			for _, c := range schema.Columns {
				names = append(names, c.Name)
			}
			continue
		}
		names = append(names, columnName(item, i))
	}
	return names
}

func projectOneRow(b eval.Binding, schema *row.TableDef, items []ast.SelectExpr) []value.Value {
	var out []value.Value
	for _, item := range items {
		if isStar(item) {
			out = append(out, b.Row.Values...)
			continue
		}
		out = append(out, eval.EvalValue(ItemExpr(item), b))
	}
	return out
}

func isStar(item ast.SelectExpr) bool {
	_, ok := item.(*ast.StarExpr)
	return ok
}

// ItemExpr unwraps a SelectExpr to the ast.Expr it projects, or nil
// for a `*`/table.* star item. Exported so the executor can inspect
// select-list items (e.g. to detect aggregate expressions) without
// duplicating the AliasedExpr unwrap.
func ItemExpr(item ast.SelectExpr) ast.Expr {
	if a, ok := item.(*ast.AliasedExpr); ok {
		return a.Expr
	}
	return nil
}

func columnName(item ast.SelectExpr, index int) string {
	a, ok := item.(*ast.AliasedExpr)
	if !ok {
		return "expr"
	}
	if a.Alias != "" {
		return a.Alias
	}
	if col, ok := a.Expr.(*ast.ColName); ok {
		return col.Name()
	}
	return "expr"
}

// limitBounds resolves an optional LIMIT/OFFSET clause against total
// available rows, per spec §4.7: "LIMIT caps row_count; 0 means no
// rows emitted."
func limitBounds(limit *ast.Limit, total int) (start, count int) {
	if limit == nil {
		return 0, total
	}
	offset := 0
	if limit.Offset != nil {
		offset = int(evalLimitInt(limit.Offset))
	}
	if offset > total {
		offset = total
	}
	n := total - offset
	if limit.Count != nil {
		n = int(evalLimitInt(limit.Count))
		if n < 0 {
			n = 0
		}
		if n > total-offset {
			n = total - offset
		}
	}
	return offset, n
}

func evalLimitInt(expr ast.Expr) int64 {
	v := eval.EvalValue(expr, eval.Binding{Schema: &row.TableDef{}, Row: row.Row{}})
	i, ok := v.AsFloat()
	if !ok {
		return 0
	}
	return int64(i)
}
