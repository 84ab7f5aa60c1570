package eval

import (
	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/token"
	"github.com/freeeve/machdb/value"
)

// EvalValue evaluates expr in value mode (spec §4.5): returns a
// Value. Used inside projections and aggregate operands. Comparison
// operators yield Int(1)/Int(0), not bool, so a projected comparison
// materializes as a value; NULL on either side of a comparison or
// arithmetic operation yields Null.
func EvalValue(expr ast.Expr, b Binding) value.Value {
	if expr == nil {
		return value.Null
	}
	switch n := expr.(type) {
	case *ast.ParenExpr:
		return EvalValue(n.Expr, b)

	case *ast.Literal:
		return literalValue(n)

	case *ast.ColName:
		name := n.Name()
		v, ok := b.LookupColumn(name)
		if !ok {
			b.log(dblog.Warn, "unknown column %q", name)
			return value.Null
		}
		return v

	case *ast.StarExpr:
		// COUNT(*) is handled by the aggregate operator directly; a
		// bare star reaching value mode elsewhere has no scalar value.
		return value.Null

	case *ast.UnaryExpr:
		return evalUnary(n, b)

	case *ast.BinaryExpr:
		return evalBinaryValue(n, b)

	case *ast.FuncExpr:
		if IsAggregateName(n.Name) {
			// Aggregates are resolved by the Aggregate operator before
			// Project runs (spec §4.5); seeing one here is an error.
			b.log(dblog.Error, "aggregate function %s encountered in value mode", n.Name)
			return value.Err
		}
		return evalScalar(n, b)

	case *ast.CastExpr:
		return evalCast(n, b)

	case *ast.IsExpr, *ast.BetweenExpr, *ast.InExpr, *ast.LikeExpr:
		if EvalPredicate(expr, b) {
			return value.Int(1)
		}
		return value.Int(0)

	case *ast.Subquery, *ast.ExistsExpr:
		b.log(dblog.Warn, "subquery expressions are not evaluated")
		return value.Null

	default:
		return value.Null
	}
}

func literalValue(l *ast.Literal) value.Value {
	switch l.Type {
	case ast.LiteralNull:
		return value.Null
	case ast.LiteralInt:
		if v, ok := value.TryConvert(value.Str(l.Value), value.TypeInt); ok {
			return v
		}
		return value.Err
	case ast.LiteralFloat:
		if v, ok := value.TryConvert(value.Str(l.Value), value.TypeFloat); ok {
			return v
		}
		return value.Err
	case ast.LiteralString:
		return value.Str(l.Value)
	case ast.LiteralBool:
		if l.Value == "true" || l.Value == "1" {
			return value.Int(1)
		}
		return value.Int(0)
	default:
		return value.Null
	}
}

func evalUnary(n *ast.UnaryExpr, b Binding) value.Value {
	v := EvalValue(n.Operand, b)
	switch n.Op {
	case token.MINUS:
		if v.IsNull() {
			return value.Null
		}
		switch v.Kind() {
		case value.KindInt:
			return value.Int(-v.Int())
		case value.KindFloat:
			return value.Float(-v.Float())
		default:
			return value.Err
		}
	case token.NOT:
		if EvalPredicate(n.Operand, b) {
			return value.Int(0)
		}
		return value.Int(1)
	case token.PLUS:
		return v
	default:
		return value.Err
	}
}

func evalBinaryValue(n *ast.BinaryExpr, b Binding) value.Value {
	switch n.Op {
	case token.AND, token.OR:
		if EvalPredicate(n, b) {
			return value.Int(1)
		}
		return value.Int(0)
	case token.PLUS:
		return value.Arith("+", EvalValue(n.Left, b), EvalValue(n.Right, b))
	case token.MINUS:
		return value.Arith("-", EvalValue(n.Left, b), EvalValue(n.Right, b))
	case token.ASTERISK:
		return value.Arith("*", EvalValue(n.Left, b), EvalValue(n.Right, b))
	case token.SLASH:
		return value.Arith("/", EvalValue(n.Left, b), EvalValue(n.Right, b))
	case token.PERCENT:
		return value.Arith("%", EvalValue(n.Left, b), EvalValue(n.Right, b))
	case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE:
		// Spec §4.5/§9: value-mode comparisons yield Int(1|0); NULL on
		// either side yields Null (not false).
		lv := EvalValue(n.Left, b)
		rv := EvalValue(n.Right, b)
		if lv.IsNull() || rv.IsNull() {
			return value.Null
		}
		if lv.IsError() || rv.IsError() {
			return value.Err
		}
		if applyComparisonOp(n.Op, value.Compare(lv, rv)) {
			return value.Int(1)
		}
		return value.Int(0)
	case token.LIKE, token.ILIKE:
		if evalLike(n.Left, n.Right, b, n.Op == token.ILIKE) {
			return value.Int(1)
		}
		return value.Int(0)
	default:
		return value.Err
	}
}

func evalCast(n *ast.CastExpr, b Binding) value.Value {
	v := EvalValue(n.Expr, b)
	switch n.Type.Name {
	case "INT", "INTEGER":
		return value.Convert(v, value.TypeInt)
	case "FLOAT", "DOUBLE", "REAL", "DECIMAL", "NUMERIC":
		return value.Convert(v, value.TypeFloat)
	case "DATE":
		return value.Convert(v, value.TypeDate)
	case "TIME":
		return value.Convert(v, value.TypeTime)
	default:
		return value.Convert(v, value.TypeString)
	}
}
