package operators

import (
	"fmt"
	"testing"

	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/dbconfig"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/token"
	"github.com/freeeve/machdb/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog() *catalog.Catalog {
	return catalog.New(dbconfig.Default())
}

func col(name string) *ast.ColName { return &ast.ColName{Parts: []string{name}} }
func lit(v string, t ast.LiteralType) *ast.Literal { return &ast.Literal{Value: v, Type: t} }

func intLit(i int64) *ast.Literal {
	return lit(strconvI(i), ast.LiteralInt)
}

func strconvI(i int64) string {
	neg := i < 0
	if i == 0 {
		return "0"
	}
	if neg {
		i = -i
	}
	var b []byte
	for i > 0 {
		b = append([]byte{byte('0' + i%10)}, b...)
		i /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

func usersSchema() *row.TableDef {
	return &row.TableDef{
		Strict: true,
		Columns: []row.ColumnDef{
			{Name: "id", Type: value.TypeInt},
			{Name: "name", Type: value.TypeString},
			{Name: "age", Type: value.TypeInt},
		},
	}
}

func TestInsertFillsDeclarationOrder(t *testing.T) {
	cat := newCatalog()
	tbl, err := cat.CreateTable("users", usersSchema())
	require.NoError(t, err)

	stmt := &ast.InsertStmt{
		Table: &ast.TableName{Parts: []string{"users"}},
		Values: [][]ast.Expr{
			{intLit(1), lit("Alice", ast.LiteralString), intLit(25)},
			{intLit(2), lit("Bob", ast.LiteralString), intLit(30)},
		},
	}
	n := Insert(dblog.Nop, cat, tbl, stmt)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, value.Int(1), tbl.Rows[0].Values[0])
	assert.Equal(t, value.Str("Bob"), tbl.Rows[1].Values[1])
}

func TestInsertColumnListLeavesRestNull(t *testing.T) {
	cat := newCatalog()
	tbl, _ := cat.CreateTable("users", usersSchema())
	stmt := &ast.InsertStmt{
		Table:   &ast.TableName{Parts: []string{"users"}},
		Columns: []*ast.ColName{col("id"), col("name")},
		Values:  [][]ast.Expr{{intLit(7), lit("Zed", ast.LiteralString)}},
	}
	n := Insert(dblog.Nop, cat, tbl, stmt)
	require.Equal(t, 1, n)
	assert.Equal(t, value.Int(7), tbl.Rows[0].Values[0])
	assert.Equal(t, value.Str("Zed"), tbl.Rows[0].Values[1])
	assert.True(t, tbl.Rows[0].Values[2].IsNull())
}

func TestInsertColumnListCountMismatchSkipsOnlyThatRow(t *testing.T) {
	cat := newCatalog()
	tbl, _ := cat.CreateTable("users", usersSchema())
	stmt := &ast.InsertStmt{
		Table:   &ast.TableName{Parts: []string{"users"}},
		Columns: []*ast.ColName{col("id"), col("name")},
		Values: [][]ast.Expr{
			{intLit(1)},                                    // too few values for the column list, skipped
			{intLit(2), lit("Bob", ast.LiteralString), intLit(99)}, // too many, skipped
			{intLit(3), lit("Cid", ast.LiteralString)},      // matches, inserted
		},
	}
	n := Insert(dblog.Nop, cat, tbl, stmt)
	require.Equal(t, 1, n)
	assert.Equal(t, value.Int(3), tbl.Rows[0].Values[0])
	assert.Equal(t, value.Str("Cid"), tbl.Rows[0].Values[1])
}

func TestInsertMismatchSkipsOnlyThatRow(t *testing.T) {
	cat := newCatalog()
	tbl, _ := cat.CreateTable("users", usersSchema())
	stmt := &ast.InsertStmt{
		Table: &ast.TableName{Parts: []string{"users"}},
		Values: [][]ast.Expr{
			{intLit(1), lit("Alice", ast.LiteralString)}, // short row, should be skipped
			{intLit(2), lit("Bob", ast.LiteralString), intLit(30)},
		},
	}
	n := Insert(dblog.Nop, cat, tbl, stmt)
	assert.Equal(t, 1, n)
	assert.Equal(t, value.Int(2), tbl.Rows[0].Values[0])
}

func TestInsertNotNullRejectionRevertsColumnOnly(t *testing.T) {
	cat := newCatalog()
	schema := usersSchema()
	schema.Columns[1].Flags = 0 // name is NOT NULL (no Nullable flag)
	tbl, _ := cat.CreateTable("users", schema)
	stmt := &ast.InsertStmt{
		Table:  &ast.TableName{Parts: []string{"users"}},
		Values: [][]ast.Expr{{intLit(1), &ast.Literal{Type: ast.LiteralNull}, intLit(25)}},
	}
	n := Insert(dblog.Nop, cat, tbl, stmt)
	require.Equal(t, 1, n)
	assert.True(t, tbl.Rows[0].Values[1].IsNull())
	assert.Equal(t, value.Int(25), tbl.Rows[0].Values[2])
}

func TestFilterIndices(t *testing.T) {
	cat := newCatalog()
	tbl, _ := cat.CreateTable("users", usersSchema())
	Insert(dblog.Nop, cat, tbl, &ast.InsertStmt{
		Table: &ast.TableName{Parts: []string{"users"}},
		Values: [][]ast.Expr{
			{intLit(1), lit("Alice", ast.LiteralString), intLit(25)},
			{intLit(2), lit("Bob", ast.LiteralString), intLit(30)},
		},
	})
	where := &ast.BinaryExpr{Op: token.GT, Left: col("age"), Right: intLit(26)}
	idx := FilterIndices(tbl, where)
	assert.Equal(t, []int{1}, idx)
}

func TestUpdateSetsMatchedRows(t *testing.T) {
	cat := newCatalog()
	priceSchema := &row.TableDef{Strict: true, Columns: []row.ColumnDef{
		{Name: "id", Type: value.TypeInt, Flags: row.Nullable},
		{Name: "price", Type: value.TypeFloat, Flags: row.Nullable},
	}}
	tbl, _ := cat.CreateTable("p", priceSchema)
	Insert(dblog.Nop, cat, tbl, &ast.InsertStmt{
		Table: &ast.TableName{Parts: []string{"p"}},
		Values: [][]ast.Expr{
			{intLit(1), lit("10.0", ast.LiteralFloat)},
			{intLit(2), lit("20.0", ast.LiteralFloat)},
			{intLit(3), lit("30.0", ast.LiteralFloat)},
		},
	})
	where := &ast.BinaryExpr{Op: token.LT, Left: col("price"), Right: lit("25.0", ast.LiteralFloat)}
	stmt := &ast.UpdateStmt{
		Table: &ast.TableName{Parts: []string{"p"}},
		Set:   []*ast.UpdateExpr{{Column: col("price"), Expr: lit("0.0", ast.LiteralFloat)}},
		Where: where,
	}
	n := Update(dblog.Nop, cat, tbl, stmt)
	assert.Equal(t, 2, n)
	assert.Equal(t, value.Float(0), tbl.Rows[0].Values[1])
	assert.Equal(t, value.Float(0), tbl.Rows[1].Values[1])
	assert.Equal(t, value.Float(30), tbl.Rows[2].Values[1])
}

func TestDeleteRemovesMatchedRows(t *testing.T) {
	cat := newCatalog()
	tbl, _ := cat.CreateTable("users", usersSchema())
	Insert(dblog.Nop, cat, tbl, &ast.InsertStmt{
		Table: &ast.TableName{Parts: []string{"users"}},
		Values: [][]ast.Expr{
			{intLit(1), lit("Alice", ast.LiteralString), intLit(25)},
			{intLit(2), lit("Bob", ast.LiteralString), intLit(30)},
		},
	})
	where := &ast.BinaryExpr{Op: token.EQ, Left: col("id"), Right: intLit(1)}
	n := Delete(tbl, where)
	assert.Equal(t, 1, n)
	require.Equal(t, 1, tbl.RowCount())
	assert.Equal(t, value.Int(2), tbl.Rows[0].Values[0])
}

func TestAggregateCountSumAvgMinMax(t *testing.T) {
	cat := newCatalog()
	schema := &row.TableDef{Strict: true, Columns: []row.ColumnDef{
		{Name: "id", Type: value.TypeInt, Flags: row.Nullable},
		{Name: "v", Type: value.TypeInt, Flags: row.Nullable},
	}}
	tbl, _ := cat.CreateTable("a", schema)
	Insert(dblog.Nop, cat, tbl, &ast.InsertStmt{
		Table: &ast.TableName{Parts: []string{"a"}},
		Values: [][]ast.Expr{
			{intLit(1), intLit(10)},
			{intLit(2), &ast.Literal{Type: ast.LiteralNull}},
			{intLit(3), intLit(20)},
		},
	})
	exprs := []ast.Expr{
		&ast.FuncExpr{Name: "COUNT", Args: []ast.Expr{&ast.StarExpr{}}},
		&ast.FuncExpr{Name: "COUNT", Args: []ast.Expr{col("v")}},
		&ast.FuncExpr{Name: "SUM", Args: []ast.Expr{col("v")}},
		&ast.FuncExpr{Name: "AVG", Args: []ast.Expr{col("v")}},
		&ast.FuncExpr{Name: "MIN", Args: []ast.Expr{col("v")}},
		&ast.FuncExpr{Name: "MAX", Args: []ast.Expr{col("v")}},
	}
	out := Aggregate(tbl, nil, exprs)
	require.Len(t, out, 6)
	assert.Equal(t, value.Int(3), out[0])
	assert.Equal(t, value.Int(2), out[1])
	assert.Equal(t, value.Float(30), out[2])
	assert.Equal(t, value.Float(15), out[3])
	assert.Equal(t, value.Float(10), out[4])
	assert.Equal(t, value.Float(20), out[5])
}

func TestAggregateOverEmptyIsZero(t *testing.T) {
	cat := newCatalog()
	schema := &row.TableDef{Columns: []row.ColumnDef{{Name: "v", Type: value.TypeInt, Flags: row.Nullable}}}
	tbl, _ := cat.CreateTable("empty", schema)
	exprs := []ast.Expr{
		&ast.FuncExpr{Name: "AVG", Args: []ast.Expr{col("v")}},
		&ast.FuncExpr{Name: "MIN", Args: []ast.Expr{col("v")}},
	}
	out := Aggregate(tbl, nil, exprs)
	assert.Equal(t, value.Float(0), out[0])
	assert.Equal(t, value.Int(0), out[1])
}

func TestAggregateDistinctDedupesOperandValues(t *testing.T) {
	cat := newCatalog()
	schema := &row.TableDef{Strict: true, Columns: []row.ColumnDef{
		{Name: "id", Type: value.TypeInt, Flags: row.Nullable},
		{Name: "v", Type: value.TypeInt, Flags: row.Nullable},
	}}
	tbl, _ := cat.CreateTable("b", schema)
	Insert(dblog.Nop, cat, tbl, &ast.InsertStmt{
		Table: &ast.TableName{Parts: []string{"b"}},
		Values: [][]ast.Expr{
			{intLit(1), intLit(10)},
			{intLit(2), intLit(10)},
			{intLit(3), intLit(20)},
		},
	})
	exprs := []ast.Expr{
		&ast.FuncExpr{Name: "COUNT", Distinct: true, Args: []ast.Expr{col("v")}},
		&ast.FuncExpr{Name: "SUM", Distinct: true, Args: []ast.Expr{col("v")}},
		&ast.FuncExpr{Name: "COUNT", Args: []ast.Expr{col("v")}},
	}
	out := Aggregate(tbl, nil, exprs)
	require.Len(t, out, 3)
	assert.Equal(t, value.Int(2), out[0])    // distinct(10,10,20) -> {10,20}
	assert.Equal(t, value.Float(30), out[1]) // 10 + 20, not 10+10+20
	assert.Equal(t, value.Int(3), out[2])    // non-distinct count unaffected
}

func TestProjectStarExpandsColumns(t *testing.T) {
	cat := newCatalog()
	tbl, _ := cat.CreateTable("users", usersSchema())
	Insert(dblog.Nop, cat, tbl, &ast.InsertStmt{
		Table: &ast.TableName{Parts: []string{"users"}},
		Values: [][]ast.Expr{
			{intLit(1), lit("Alice", ast.LiteralString), intLit(25)},
			{intLit(2), lit("Bob", ast.LiteralString), intLit(30)},
		},
	})
	items := []ast.SelectExpr{&ast.StarExpr{}}
	result := Project(tbl, nil, items, nil, nil, nil)
	assert.Equal(t, []string{"id", "name", "age"}, result.ColumnNames)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, value.Str("Alice"), result.Rows[0][1])
}

func TestProjectOrderByAndLimit(t *testing.T) {
	cat := newCatalog()
	tbl, _ := cat.CreateTable("users", usersSchema())
	Insert(dblog.Nop, cat, tbl, &ast.InsertStmt{
		Table: &ast.TableName{Parts: []string{"users"}},
		Values: [][]ast.Expr{
			{intLit(2), lit("Bob", ast.LiteralString), intLit(30)},
			{intLit(1), lit("Alice", ast.LiteralString), intLit(25)},
		},
	})
	items := []ast.SelectExpr{&ast.AliasedExpr{Expr: col("id")}}
	orderBy := []*ast.OrderByExpr{{Expr: col("id")}}
	limit := &ast.Limit{Count: intLit(1)}
	result := Project(tbl, nil, items, orderBy, limit, nil)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, value.Int(1), result.Rows[0][0])
}

func TestJoinInnerAndLeft(t *testing.T) {
	cat := newCatalog()
	u, _ := cat.CreateTable("u", &row.TableDef{Columns: []row.ColumnDef{
		{Name: "id", Type: value.TypeInt, Flags: row.Nullable},
		{Name: "name", Type: value.TypeString, Flags: row.Nullable},
	}})
	o, _ := cat.CreateTable("o", &row.TableDef{Columns: []row.ColumnDef{
		{Name: "uid", Type: value.TypeInt, Flags: row.Nullable},
		{Name: "amt", Type: value.TypeInt, Flags: row.Nullable},
	}})
	Insert(dblog.Nop, cat, u, &ast.InsertStmt{
		Table:  &ast.TableName{Parts: []string{"u"}},
		Values: [][]ast.Expr{{intLit(1), lit("A", ast.LiteralString)}, {intLit(2), lit("B", ast.LiteralString)}},
	})
	Insert(dblog.Nop, cat, o, &ast.InsertStmt{
		Table:  &ast.TableName{Parts: []string{"o"}},
		Values: [][]ast.Expr{{intLit(1), intLit(100)}},
	})
	on := &ast.BinaryExpr{Op: token.EQ, Left: col("id"), Right: col("uid")}
	result, err := Join(cat, ast.JoinLeft, u, o, on)
	require.NoError(t, err)
	require.Equal(t, 2, result.RowCount())
	assert.Equal(t, value.Str("A"), result.Rows[0].Values[1])
	assert.Equal(t, value.Int(100), result.Rows[0].Values[3])
	assert.Equal(t, value.Str("B"), result.Rows[1].Values[1])
	assert.True(t, result.Rows[1].Values[3].IsNull())
}

func TestCreateTableTranslatesConstraints(t *testing.T) {
	cat := newCatalog()
	stmt := &ast.CreateTableStmt{
		Table: &ast.TableName{Parts: []string{"t"}},
		Columns: []*ast.ColumnDef{
			{Name: "id", Type: &ast.DataType{Name: "INT"}, Constraints: []*ast.ColumnConstraint{{Type: ast.ConstraintPrimaryKey}}},
			{Name: "name", Type: &ast.DataType{Name: "VARCHAR"}, Constraints: []*ast.ColumnConstraint{{Type: ast.ConstraintNotNull}}},
		},
	}
	tbl, err := CreateTable(cat, stmt)
	require.NoError(t, err)
	assert.True(t, tbl.Schema.Columns[0].Flags.Has(row.PrimaryKey))
	assert.True(t, tbl.Schema.Columns[0].Flags.Has(row.Unique))
	assert.False(t, tbl.Schema.Columns[1].Flags.Has(row.Nullable))
}

type recordingLogger struct {
	entries []string
}

func (r *recordingLogger) Log(level dblog.Level, format string, args ...any) {
	r.entries = append(r.entries, fmt.Sprintf(format, args...))
}

func TestCreateIndexWarnsOnRecreate(t *testing.T) {
	cat := newCatalog()
	_, _ = cat.CreateTable("a", usersSchema())
	stmt := &ast.CreateIndexStmt{
		Name:    "idx1",
		Table:   &ast.TableName{Parts: []string{"a"}},
		Columns: []*ast.IndexColumn{{Column: "id"}},
	}

	log := &recordingLogger{}
	require.NoError(t, CreateIndex(log, cat, stmt))
	assert.Empty(t, log.entries)

	require.NoError(t, CreateIndex(log, cat, stmt))
	require.Len(t, log.entries, 1)
	assert.Contains(t, log.entries[0], "idx1")
}

func TestCreateIndexRejectsMultiColumn(t *testing.T) {
	cat := newCatalog()
	_, _ = cat.CreateTable("a", usersSchema())
	stmt := &ast.CreateIndexStmt{
		Name:    "idx2",
		Table:   &ast.TableName{Parts: []string{"a"}},
		Columns: []*ast.IndexColumn{{Column: "id"}, {Column: "name"}},
	}
	assert.Error(t, CreateIndex(dblog.Nop, cat, stmt))
}
