package eval

import "github.com/freeeve/machdb/ast"

var aggregateNames = map[string]bool{
	"COUNT": true, "SUM": true, "AVG": true, "MIN": true, "MAX": true,
}

// IsAggregateName reports whether name is one of spec §4.7's aggregate
// functions (COUNT, SUM, AVG, MIN, MAX).
func IsAggregateName(name string) bool {
	return aggregateNames[upper(name)]
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// IsAggregateExpr reports whether expr is a FuncExpr naming an
// aggregate function, the spec §4.5 "Aggregate{func, operand,
// distinct, count_all}" expression variant.
func IsAggregateExpr(expr ast.Expr) bool {
	f, ok := expr.(*ast.FuncExpr)
	return ok && IsAggregateName(f.Name)
}

// AggregateInfo is the decomposed shape of an Aggregate expression
// node (spec §4.5).
type AggregateInfo struct {
	Func     string
	Operand  ast.Expr // nil when CountAll
	Distinct bool
	CountAll bool
}

// DecomposeAggregate extracts AggregateInfo from a FuncExpr known (via
// IsAggregateExpr) to name an aggregate function.
func DecomposeAggregate(expr ast.Expr) AggregateInfo {
	f := expr.(*ast.FuncExpr)
	info := AggregateInfo{Func: upper(f.Name), Distinct: f.Distinct}
	if len(f.Args) == 1 {
		if _, isStar := f.Args[0].(*ast.StarExpr); isStar {
			info.CountAll = true
			return info
		}
		info.Operand = f.Args[0]
	}
	return info
}

// ContainsAggregate reports whether expr (or any subexpression reached
// by the limited traversal operators/select expressions need) is or
// contains an aggregate function call. Used by the executor to decide
// whether the Aggregate operator must run before Project (spec §4.8).
func ContainsAggregate(expr ast.Expr) bool {
	switch n := expr.(type) {
	case nil:
		return false
	case *ast.FuncExpr:
		if IsAggregateName(n.Name) {
			return true
		}
		for _, a := range n.Args {
			if ContainsAggregate(a) {
				return true
			}
		}
		return false
	case *ast.BinaryExpr:
		return ContainsAggregate(n.Left) || ContainsAggregate(n.Right)
	case *ast.UnaryExpr:
		return ContainsAggregate(n.Operand)
	case *ast.ParenExpr:
		return ContainsAggregate(n.Expr)
	case *ast.CastExpr:
		return ContainsAggregate(n.Expr)
	default:
		return false
	}
}
