package catalog

import (
	"fmt"

	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/value"
)

// CheckNotNull enforces spec §3 invariant 3: a NULLABLE=false column
// may never hold Null.
func CheckNotNull(schema *row.TableDef, colIdx int, v value.Value) error {
	col := schema.Columns[colIdx]
	if !col.Flags.Has(row.Nullable) && v.IsNull() {
		return fmt.Errorf("column %q: %w", col.Name, ErrNotNull)
	}
	return nil
}

// CheckUnique enforces spec §3 invariant 4: across all non-null values
// of a UNIQUE column, each value occurs at most once. excludeRow is
// the row index being updated (or -1 for an insert), excluded from the
// scan so a row can be re-saved with its own existing value.
func CheckUnique(t *Table, colIdx int, v value.Value, excludeRow int) error {
	col := t.Schema.Columns[colIdx]
	if !col.Flags.Has(row.Unique) && !col.Flags.Has(row.PrimaryKey) {
		return nil
	}
	if v.IsNull() {
		return nil
	}
	for i, r := range t.Rows {
		if i == excludeRow {
			continue
		}
		if value.Equals(r.Values[colIdx], v) {
			return fmt.Errorf("column %q: %w", col.Name, ErrUnique)
		}
	}
	return nil
}

// CheckForeignKey enforces spec §3 invariant 5: every non-null value
// in a FOREIGN KEY column must match some non-null value in the
// referenced column of the referenced table, evaluated at
// commit-of-statement time (i.e. against the catalog's current state).
func (c *Catalog) CheckForeignKey(schema *row.TableDef, colIdx int, v value.Value) error {
	col := schema.Columns[colIdx]
	if !col.Flags.Has(row.ForeignKey) {
		return nil
	}
	if v.IsNull() {
		return nil
	}
	refTable := c.GetTableByName(col.ReferencesTable)
	if refTable == nil {
		return fmt.Errorf("column %q references unknown table %q: %w", col.Name, col.ReferencesTable, ErrTableNotFound)
	}
	refColIdx, ok := row.ColumnIndex(refTable.Schema, col.ReferencesColumn)
	if !ok {
		return fmt.Errorf("column %q references unknown column %q.%q: %w", col.Name, col.ReferencesTable, col.ReferencesColumn, ErrColumnNotFound)
	}
	for _, r := range refTable.Rows {
		rv := r.Values[refColIdx]
		if !rv.IsNull() && value.Equals(rv, v) {
			return nil
		}
	}
	return fmt.Errorf("column %q: %w", col.Name, ErrForeignKey)
}
