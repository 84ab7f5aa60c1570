package exec

import (
	"testing"

	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/dbconfig"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/parser"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExecutor() *Executor {
	cat := catalog.New(dbconfig.Default())
	return New(NewContext(cat, dblog.Nop))
}

func parseOne(t *testing.T, sql string) ast.Statement {
	stmt, err := parser.Get(sql).Parse()
	require.NoError(t, err)
	return stmt
}

func TestExecCreateInsertSelectPipeline(t *testing.T) {
	ex := newExecutor()

	_, err := ex.Exec(parseOne(t, "CREATE TABLE users (id INT, name VARCHAR(32))"))
	require.NoError(t, err)

	_, err = ex.Exec(parseOne(t, "INSERT INTO users VALUES (1,'Alice'),(2,'Bob')"))
	require.NoError(t, err)

	res, err := ex.Exec(parseOne(t, "SELECT name FROM users WHERE id = 2"))
	require.NoError(t, err)
	require.Equal(t, 1, res.RowCount)
	assert.Equal(t, value.Str("Bob"), res.Values[0][0])
}

func TestExecInsertIntoMissingTableReportsDiagnostic(t *testing.T) {
	ex := newExecutor()
	_, err := ex.Exec(parseOne(t, "CREATE TABLE users (id INT)"))
	require.NoError(t, err)

	_, err = ex.Exec(parseOne(t, "INSERT INTO usres VALUES (1)"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usres")
	assert.Contains(t, err.Error(), `did you mean "users"?`)
	assert.ErrorIs(t, err, catalog.ErrTableNotFound)
}

func TestExecAllSkipsFailingStatementButRunsRest(t *testing.T) {
	ex := newExecutor()
	stmts, err := parser.Get("CREATE TABLE a (id INT); INSERT INTO missing VALUES (1); INSERT INTO a VALUES (1)").ParseAll()
	require.NoError(t, err)

	results := ex.ExecAll(stmts)
	require.Len(t, results, 2)
}

func TestExecUpdateDeleteRejectNonTableTarget(t *testing.T) {
	ex := newExecutor()
	stmt := &ast.UpdateStmt{
		Table: &ast.JoinExpr{
			Left:  &ast.TableName{Parts: []string{"a"}},
			Right: &ast.TableName{Parts: []string{"b"}},
			Type:  ast.JoinInner,
		},
	}
	_, err := ex.Exec(stmt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported target table expression")

	del := &ast.DeleteStmt{
		Table: &ast.JoinExpr{
			Left:  &ast.TableName{Parts: []string{"a"}},
			Right: &ast.TableName{Parts: []string{"b"}},
			Type:  ast.JoinInner,
		},
	}
	_, err = ex.Exec(del)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported target table expression")
}

func TestSuggestTableWithinEditDistance(t *testing.T) {
	cat := catalog.New(dbconfig.Default())
	_, _ = cat.CreateTable("orders", &row.TableDef{Columns: []row.ColumnDef{{Name: "id", Type: value.TypeInt, Flags: row.Nullable}}})

	assert.Equal(t, "orders", suggestTable(cat, "order"))
	assert.Equal(t, "", suggestTable(cat, "completely_unrelated_name"))
}
