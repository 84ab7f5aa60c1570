package eval

import (
	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/token"
	"github.com/freeeve/machdb/value"
)

// EvalPredicate evaluates expr in predicate mode (spec §4.5): returns
// bool, collapsing NULL/ERROR and "unknown" to false. Used by WHERE,
// JOIN ON, and UPDATE/DELETE predicates.
func EvalPredicate(expr ast.Expr, b Binding) bool {
	if expr == nil {
		return true
	}
	switch n := expr.(type) {
	case *ast.ParenExpr:
		return EvalPredicate(n.Expr, b)

	case *ast.UnaryExpr:
		if n.Op == token.NOT {
			return !EvalPredicate(n.Operand, b)
		}
		v := EvalValue(n, b)
		return !v.IsNull() && !v.IsError()

	case *ast.BinaryExpr:
		switch n.Op {
		case token.AND:
			return EvalPredicate(n.Left, b) && EvalPredicate(n.Right, b)
		case token.OR:
			return EvalPredicate(n.Left, b) || EvalPredicate(n.Right, b)
		case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE:
			return evalComparison(n.Op, n.Left, n.Right, b)
		case token.LIKE, token.ILIKE:
			return evalLike(n.Left, n.Right, b, n.Op == token.ILIKE)
		default:
			v := EvalValue(n, b)
			return !v.IsNull() && !v.IsError()
		}

	case *ast.LikeExpr:
		matched := evalLikeValues(EvalValue(n.Expr, b), EvalValue(n.Pattern, b), n.ILike)
		if n.Not {
			return !matched
		}
		return matched

	case *ast.IsExpr:
		v := EvalValue(n.Expr, b)
		var result bool
		switch n.What {
		case ast.IsNull:
			result = v.IsNull()
		case ast.IsTrue:
			result = !v.IsNull() && !v.IsError() && truthy(v)
		case ast.IsFalse:
			result = !v.IsNull() && !v.IsError() && !truthy(v)
		default:
			result = v.IsNull()
		}
		if n.Not {
			return !result
		}
		return result

	case *ast.BetweenExpr:
		v := EvalValue(n.Expr, b)
		lo := EvalValue(n.Low, b)
		hi := EvalValue(n.High, b)
		if v.IsNull() || lo.IsNull() || hi.IsNull() || v.IsError() || lo.IsError() || hi.IsError() {
			return false
		}
		inRange := value.Compare(v, lo) != value.Less && value.Compare(v, hi) != value.Greater
		if n.Not {
			return !inRange
		}
		return inRange

	case *ast.InExpr:
		v := EvalValue(n.Expr, b)
		if v.IsNull() || v.IsError() {
			return false
		}
		found := false
		for _, item := range n.Values {
			iv := EvalValue(item, b)
			if value.Equals(v, iv) {
				found = true
				break
			}
		}
		if n.Not {
			return !found
		}
		return found

	case *ast.Subquery, *ast.ExistsExpr:
		// Correlated subqueries are parsed but not evaluated, per
		// spec §2 Non-goals; treat as "unknown" -> false.
		return false

	default:
		// Value or Column: true iff non-NULL/non-ERROR.
		v := EvalValue(expr, b)
		return !v.IsNull() && !v.IsError()
	}
}

func truthy(v value.Value) bool {
	switch v.Kind() {
	case value.KindInt:
		return v.Int() != 0
	case value.KindFloat:
		return v.Float() != 0
	default:
		return false
	}
}

func evalComparison(op token.Token, left, right ast.Expr, b Binding) bool {
	lv := EvalValue(left, b)
	rv := EvalValue(right, b)
	if lv.IsNull() || rv.IsNull() || lv.IsError() || rv.IsError() {
		return false
	}
	return applyComparisonOp(op, value.Compare(lv, rv))
}

// applyComparisonOp maps an already-computed Ordering to the boolean
// result of op, shared by predicate mode's evalComparison and value
// mode's evalBinaryValue so neither re-evaluates the operands the
// other already evaluated.
func applyComparisonOp(op token.Token, ord value.Ordering) bool {
	switch op {
	case token.EQ:
		return ord == value.Equal
	case token.NEQ:
		return ord != value.Equal
	case token.LT:
		return ord == value.Less
	case token.LTE:
		return ord == value.Less || ord == value.Equal
	case token.GT:
		return ord == value.Greater
	case token.GTE:
		return ord == value.Greater || ord == value.Equal
	default:
		return false
	}
}

func evalLike(leftExpr, patternExpr ast.Expr, b Binding, ci bool) bool {
	return evalLikeValues(EvalValue(leftExpr, b), EvalValue(patternExpr, b), ci)
}

func evalLikeValues(subject, pattern value.Value, ci bool) bool {
	if subject.IsNull() || pattern.IsNull() || subject.IsError() || pattern.IsError() {
		return false
	}
	s := subject.Repr()
	p := pattern.Repr()
	if subject.Kind() == value.KindString {
		s = subject.Str()
	}
	if pattern.Kind() == value.KindString {
		p = pattern.Str()
	}
	return matchLike(s, p, ci)
}
