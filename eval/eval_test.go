package eval

import (
	"testing"

	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/token"
	"github.com/freeeve/machdb/value"
	"github.com/stretchr/testify/assert"
)

type countingLogger struct{ n int }

func (c *countingLogger) Log(dblog.Level, string, ...any) { c.n++ }

func testSchema() *row.TableDef {
	return &row.TableDef{Columns: []row.ColumnDef{
		{Name: "id", Type: value.TypeInt},
		{Name: "name", Type: value.TypeString},
	}}
}

func col(name string) *ast.ColName { return &ast.ColName{Parts: []string{name}} }
func lit(v string, t ast.LiteralType) *ast.Literal { return &ast.Literal{Value: v, Type: t} }

func TestPredicateLike(t *testing.T) {
	b := Binding{Schema: testSchema(), Row: row.Row{Values: []value.Value{value.Int(1), value.Str("Alice")}}}
	like := &ast.LikeExpr{Expr: col("name"), Pattern: lit("A%", ast.LiteralString)}
	assert.True(t, EvalPredicate(like, b))
	like2 := &ast.LikeExpr{Expr: col("name"), Pattern: lit("%e", ast.LiteralString)}
	assert.True(t, EvalPredicate(like2, b))
	like3 := &ast.LikeExpr{Expr: col("name"), Pattern: lit("Bob", ast.LiteralString)}
	assert.False(t, EvalPredicate(like3, b))
}

func TestPredicateAndNot(t *testing.T) {
	b := Binding{Schema: testSchema(), Row: row.Row{Values: []value.Value{value.Int(1), value.Str("Alice")}}}
	x := &ast.BinaryExpr{Op: token.EQ, Left: col("id"), Right: lit("1", ast.LiteralInt)}
	notX := &ast.UnaryExpr{Op: token.NOT, Operand: x}
	and := &ast.BinaryExpr{Op: token.AND, Left: x, Right: notX}
	assert.False(t, EvalPredicate(and, b))
}

func TestPredicateNullComparison(t *testing.T) {
	b := Binding{Schema: testSchema(), Row: row.Row{Values: []value.Value{value.Null, value.Str("Alice")}}}
	eq := &ast.BinaryExpr{Op: token.EQ, Left: col("id"), Right: lit("1", ast.LiteralInt)}
	assert.False(t, EvalPredicate(eq, b))
}

func TestValueModeComparisonYieldsInt(t *testing.T) {
	b := Binding{Schema: testSchema(), Row: row.Row{Values: []value.Value{value.Int(1), value.Str("Alice")}}}
	eq := &ast.BinaryExpr{Op: token.EQ, Left: col("id"), Right: lit("1", ast.LiteralInt)}
	assert.Equal(t, value.Int(1), EvalValue(eq, b))

	b2 := Binding{Schema: testSchema(), Row: row.Row{Values: []value.Value{value.Null, value.Str("Alice")}}}
	assert.True(t, EvalValue(eq, b2).IsNull())
}

func TestValueModeComparisonOperatorsAllEvaluateCorrectly(t *testing.T) {
	// Exercises applyComparisonOp (shared by predicate and value mode so
	// neither re-evaluates operands the other already evaluated) across
	// every comparison operator.
	b := Binding{Schema: testSchema(), Row: row.Row{Values: []value.Value{value.Int(2), value.Str("Alice")}}}
	cases := []struct {
		op   token.Token
		rhs  string
		want int64
	}{
		{token.EQ, "2", 1}, {token.EQ, "3", 0},
		{token.NEQ, "3", 1}, {token.NEQ, "2", 0},
		{token.LT, "3", 1}, {token.LT, "2", 0},
		{token.LTE, "2", 1}, {token.LTE, "1", 0},
		{token.GT, "1", 1}, {token.GT, "2", 0},
		{token.GTE, "2", 1}, {token.GTE, "3", 0},
	}
	for _, c := range cases {
		expr := &ast.BinaryExpr{Op: c.op, Left: col("id"), Right: lit(c.rhs, ast.LiteralInt)}
		assert.Equal(t, value.Int(c.want), EvalValue(expr, b), "op=%v rhs=%s", c.op, c.rhs)
	}
}

func TestValueModeComparisonLooksUpUnknownColumnOnce(t *testing.T) {
	logger := &countingLogger{}
	b := Binding{Schema: testSchema(), Row: row.Row{Values: []value.Value{value.Int(1), value.Str("Alice")}}, Logger: logger}
	eq := &ast.BinaryExpr{Op: token.EQ, Left: col("missing"), Right: lit("1", ast.LiteralInt)}

	assert.True(t, EvalValue(eq, b).IsNull())
	assert.Equal(t, 1, logger.n)
}

func TestArithmeticMixed(t *testing.T) {
	b := Binding{Schema: &row.TableDef{}, Row: row.Row{}}
	div := &ast.BinaryExpr{Op: token.SLASH, Left: lit("1", ast.LiteralInt), Right: lit("0", ast.LiteralInt)}
	assert.True(t, EvalValue(div, b).IsError())

	fdiv := &ast.BinaryExpr{Op: token.SLASH, Left: lit("3.0", ast.LiteralFloat), Right: lit("2", ast.LiteralInt)}
	assert.Equal(t, value.Float(1.5), EvalValue(fdiv, b))
}

func TestScalarConcatNullPropagation(t *testing.T) {
	b := Binding{Schema: &row.TableDef{}, Row: row.Row{}}
	fn := &ast.FuncExpr{Name: "CONCAT", Args: []ast.Expr{lit("a", ast.LiteralString), &ast.Literal{Type: ast.LiteralNull}}}
	assert.True(t, EvalValue(fn, b).IsNull())
}

func TestIsAggregateExpr(t *testing.T) {
	fn := &ast.FuncExpr{Name: "COUNT", Args: []ast.Expr{&ast.StarExpr{}}}
	assert.True(t, IsAggregateExpr(fn))
	info := DecomposeAggregate(fn)
	assert.True(t, info.CountAll)
	assert.Equal(t, "COUNT", info.Func)
}
