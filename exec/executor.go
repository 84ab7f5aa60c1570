package exec

import (
	"fmt"

	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/eval"
	"github.com/freeeve/machdb/operators"
)

// Executor dispatches parsed statements to the matching operator, per
// spec §4.8. It holds no per-statement state between calls to Exec —
// every Exec call builds and discards its own pipeline locals.
type Executor struct {
	ctx *Context
}

// New builds an Executor over ctx.
func New(ctx *Context) *Executor {
	return &Executor{ctx: ctx}
}

// Exec dispatches a single parsed statement, per spec §4.8: CREATE
// TABLE/INSERT/DROP TABLE/UPDATE/DELETE/CREATE INDEX/DROP INDEX call
// their matching operator directly; SELECT runs the fixed
// Join→Filter→Aggregate→Project pipeline. A statement-level failure
// is returned as an error and does not abort any other statement in a
// multi-statement batch (spec §7): the caller (ExecAll) decides
// whether to continue.
func (e *Executor) Exec(stmt ast.Statement) (*QueryResult, error) {
	cat := e.ctx.Catalog
	logger := e.ctx.Logger

	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return e.execSelect(s)

	case *ast.CreateTableStmt:
		if _, err := operators.CreateTable(cat, s); err != nil {
			return nil, fmt.Errorf("create table: %w", err)
		}
		return EmptyResult(), nil

	case *ast.DropTableStmt:
		if err := operators.DropTable(cat, s); err != nil {
			return nil, fmt.Errorf("drop table: %w", err)
		}
		return EmptyResult(), nil

	case *ast.CreateIndexStmt:
		if err := operators.CreateIndex(logger, cat, s); err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		return EmptyResult(), nil

	case *ast.DropIndexStmt:
		if err := operators.DropIndex(cat, s); err != nil {
			return nil, fmt.Errorf("drop index: %w", err)
		}
		return EmptyResult(), nil

	case *ast.InsertStmt:
		t := cat.GetTableByName(s.Table.Name())
		if t == nil {
			return nil, tableNotFoundError(cat, s, "insert into", s.Table.Name())
		}
		n := operators.Insert(logger, cat, t, s)
		logger.Log(dblog.Info, "insert into %s: %d rows", t.Name, n)
		return EmptyResult(), nil

	case *ast.UpdateStmt:
		tn, ok := s.Table.(*ast.TableName)
		if !ok {
			return nil, fmt.Errorf("update: unsupported target table expression")
		}
		t := cat.GetTableByName(tn.Name())
		if t == nil {
			return nil, tableNotFoundError(cat, s, "update", tn.Name())
		}
		n := operators.Update(logger, cat, t, s)
		logger.Log(dblog.Info, "update %s: %d rows matched", t.Name, n)
		return EmptyResult(), nil

	case *ast.DeleteStmt:
		tn, ok := s.Table.(*ast.TableName)
		if !ok {
			return nil, fmt.Errorf("delete: unsupported target table expression")
		}
		t := cat.GetTableByName(tn.Name())
		if t == nil {
			return nil, tableNotFoundError(cat, s, "delete from", tn.Name())
		}
		n := operators.Delete(t, s.Where)
		logger.Log(dblog.Info, "delete from %s: %d rows removed", t.Name, n)
		return EmptyResult(), nil

	default:
		return nil, fmt.Errorf("unsupported statement type %T", stmt)
	}
}

// ExecAll runs every statement of stmts in order (spec §4.8: "for
// multi-statement input, iterate the AST's next chain until
// exhausted"; ParseAll already yields that chain as a slice). A
// failing statement logs at ERROR and is skipped; later statements
// still run (spec §7 propagation policy).
func (e *Executor) ExecAll(stmts []ast.Statement) []*QueryResult {
	var results []*QueryResult
	for _, stmt := range stmts {
		res, err := e.Exec(stmt)
		if err != nil {
			e.ctx.Logger.Log(dblog.Error, "statement failed: %v", err)
			continue
		}
		results = append(results, res)
	}
	return results
}

// execSelect runs the fixed SELECT pipeline of spec §4.8: Join (if a
// JOIN is present) → Filter (log-only) → Aggregate (if any select
// item is an aggregate expression) → Project (always; handles ORDER
// BY, LIMIT, and materialization).
func (e *Executor) execSelect(s *ast.SelectStmt) (*QueryResult, error) {
	logger := e.ctx.Logger

	t, err := e.resolveFrom(s, s.From)
	if err != nil {
		return nil, err
	}

	if s.Where != nil {
		operators.Filter(logger, t, s.Where)
	}

	hasAgg := false
	for _, item := range s.Columns {
		if eval.ContainsAggregate(operators.ItemExpr(item)) {
			hasAgg = true
			break
		}
	}

	var result operators.Result
	if hasAgg {
		exprs := make([]ast.Expr, len(s.Columns))
		for i, item := range s.Columns {
			exprs[i] = operators.ItemExpr(item)
		}
		values := operators.Aggregate(t, s.Where, exprs)
		result = operators.Project(t, s.Where, s.Columns, s.OrderBy, s.Limit, values)
	} else {
		result = operators.Project(t, s.Where, s.Columns, s.OrderBy, s.Limit, nil)
	}

	return newQueryResult(result.ColumnNames, result.Rows), nil
}

// resolveFrom walks a FROM clause down to the single catalog.Table a
// SELECT's pipeline runs against, materializing a JOIN when present
// (spec §4.8 step 1). Table aliases are accepted but not tracked
// separately — spec §4.5's "join evaluator variant" resolves columns
// by leftmost-match-wins against the merged schema regardless of
// which side of a join a name's table alias claimed.
func (e *Executor) resolveFrom(stmt ast.Statement, from ast.TableExpr) (*catalog.Table, error) {
	switch f := from.(type) {
	case *ast.TableName:
		t := e.ctx.Catalog.GetTableByName(f.Name())
		if t == nil {
			return nil, tableNotFoundError(e.ctx.Catalog, stmt, "from", f.Name())
		}
		return t, nil

	case *ast.AliasedTableExpr:
		return e.resolveFrom(stmt, f.Expr)

	case *ast.ParenTableExpr:
		return e.resolveFrom(stmt, f.Expr)

	case *ast.JoinExpr:
		left, err := e.resolveFrom(stmt, f.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.resolveFrom(stmt, f.Right)
		if err != nil {
			return nil, err
		}
		result, err := operators.Join(e.ctx.Catalog, f.Type, left, right, f.On)
		if err != nil {
			return nil, fmt.Errorf("join: %w", err)
		}
		operators.LogJoin(e.ctx.Logger, f.Type, left, right, result)
		return result, nil

	case nil:
		return nil, fmt.Errorf("select: missing FROM clause")

	default:
		return nil, fmt.Errorf("select: unsupported FROM clause %T", from)
	}
}
