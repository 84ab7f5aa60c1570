package operators

import (
	"fmt"

	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/value"
)

// dataTypeOf maps a parsed DataType name to spec §3's five scalar
// types. Anything not recognized falls back to STRING, matching the
// teacher parser's own permissive stance on unrecognized type names.
func dataTypeOf(dt *ast.DataType) value.Type {
	switch dt.Name {
	case "INT", "INTEGER", "BIGINT", "SMALLINT":
		return value.TypeInt
	case "FLOAT", "DOUBLE", "REAL", "DECIMAL", "NUMERIC":
		return value.TypeFloat
	case "DATE":
		return value.TypeDate
	case "TIME":
		return value.TypeTime
	default:
		return value.TypeString
	}
}

// CreateTable translates a parsed CREATE TABLE statement into a
// catalog.Table, per spec §4.1/§4.7. Table-level PRIMARY KEY/UNIQUE/
// FOREIGN KEY constraints are folded onto the named column's flags,
// same as a column-level constraint would be.
func CreateTable(cat *catalog.Catalog, stmt *ast.CreateTableStmt) (*catalog.Table, error) {
	schema := &row.TableDef{Strict: true}
	colIdx := make(map[string]int, len(stmt.Columns))
	for _, c := range stmt.Columns {
		cd := row.ColumnDef{Name: c.Name, Type: dataTypeOf(c.Type), Flags: row.Nullable}
		for _, cc := range c.Constraints {
			switch cc.Type {
			case ast.ConstraintNotNull:
				cd.Flags &^= row.Nullable
			case ast.ConstraintPrimaryKey:
				cd.Flags &^= row.Nullable
				cd.Flags |= row.PrimaryKey | row.Unique
			case ast.ConstraintUnique:
				cd.Flags |= row.Unique
			case ast.ConstraintForeignKey:
				if cc.References != nil {
					cd.Flags |= row.ForeignKey
					cd.ReferencesTable = cc.References.Table.Name()
					if len(cc.References.Columns) > 0 {
						cd.ReferencesColumn = cc.References.Columns[0]
					}
				}
			}
		}
		colIdx[c.Name] = len(schema.Columns)
		schema.Columns = append(schema.Columns, cd)
	}
	for _, tc := range stmt.Constraints {
		if len(tc.Columns) == 0 {
			continue
		}
		i, ok := colIdx[tc.Columns[0]]
		if !ok {
			continue
		}
		switch tc.Type {
		case ast.ConstraintPrimaryKey:
			schema.Columns[i].Flags &^= row.Nullable
			schema.Columns[i].Flags |= row.PrimaryKey | row.Unique
		case ast.ConstraintUnique:
			schema.Columns[i].Flags |= row.Unique
		case ast.ConstraintForeignKey:
			if tc.References != nil {
				schema.Columns[i].Flags |= row.ForeignKey
				schema.Columns[i].ReferencesTable = tc.References.Table.Name()
				if len(tc.References.Columns) > 0 {
					schema.Columns[i].ReferencesColumn = tc.References.Columns[0]
				}
			}
		}
	}

	name := stmt.Table.Name()
	t, err := cat.CreateTable(name, schema)
	if err != nil {
		if stmt.IfNotExists {
			return cat.GetTableByName(name), nil
		}
		return nil, err
	}
	return t, nil
}

// DropTable translates DROP TABLE (spec §4.1: removes the table and
// any indexes defined on it).
func DropTable(cat *catalog.Catalog, stmt *ast.DropTableStmt) error {
	for _, tn := range stmt.Tables {
		if err := cat.DropTable(tn.Name()); err != nil {
			if stmt.IfExists {
				continue
			}
			return err
		}
	}
	return nil
}

// CreateIndex translates CREATE INDEX into catalog.Catalog.CreateIndex.
// Only single-column indexes are supported, per spec §4.1 Non-goals.
// Recreating an index under a name that already exists drops and
// rebuilds it (spec §4.1: "drop-then-rebuild (log warning)") — logger
// may be nil, in which case the warning is simply not emitted.
func CreateIndex(logger dblog.Logger, cat *catalog.Catalog, stmt *ast.CreateIndexStmt) error {
	if len(stmt.Columns) != 1 {
		return fmt.Errorf("create index %q: only single-column indexes are supported", stmt.Name)
	}
	_, recreated, err := cat.CreateIndex(stmt.Table.Name(), stmt.Columns[0].Column, stmt.Name)
	if err != nil {
		return err
	}
	if recreated {
		logf(logger, dblog.Warn, "create index %s: already existed, dropped and rebuilt", stmt.Name)
	}
	return nil
}

// DropIndex translates DROP INDEX into catalog.Catalog.DropIndex.
func DropIndex(cat *catalog.Catalog, stmt *ast.DropIndexStmt) error {
	err := cat.DropIndex(stmt.Name)
	if err != nil && stmt.IfExists {
		return nil
	}
	return err
}
