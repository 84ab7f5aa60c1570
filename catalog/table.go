package catalog

import "github.com/freeeve/machdb/row"

// Table is the in-memory relation described in spec §3: a stable
// integer id, a unique name, its schema, and its rows in insertion
// order. Deletion compacts the row slice; external row indices are
// not stable across DELETE/UPDATE rewrites, matching spec's explicit
// warning.
type Table struct {
	ID     int
	Name   string
	Schema *row.TableDef
	Rows   []row.Row
}

// RowCount returns the number of live rows in the table.
func (t *Table) RowCount() int { return len(t.Rows) }
