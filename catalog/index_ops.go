package catalog

import (
	"fmt"

	"github.com/freeeve/machdb/index"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/value"
)

// CreateIndex builds (or rebuilds) a hash index on table.column, per
// spec §4.1: if name is empty, synthesize `idx_<table>_<col>`; if the
// name already exists, drop then rebuild under the same name (logged
// by the caller as a warning, since Catalog itself has no logger).
func (c *Catalog) CreateIndex(tableName, columnName, name string) (*index.Index, bool, error) {
	t := c.GetTableByName(tableName)
	if t == nil {
		return nil, false, fmt.Errorf("create index on %q: %w", tableName, ErrTableNotFound)
	}
	colIdx, ok := row.ColumnIndex(t.Schema, columnName)
	if !ok {
		return nil, false, fmt.Errorf("create index on %q.%q: %w", tableName, columnName, ErrColumnNotFound)
	}
	if name == "" {
		name = fmt.Sprintf("idx_%s_%s", tableName, columnName)
	}

	recreated := false
	if slot, exists := c.indexByName[name]; exists {
		recreated = true
		c.indexes[slot] = index.New(name, tableName, columnName, c.cfg.IndexBuckets)
	} else {
		c.indexByName[name] = len(c.indexes)
		c.indexes = append(c.indexes, index.New(name, tableName, columnName, c.cfg.IndexBuckets))
	}

	idx := c.indexes[c.indexByName[name]]
	idx.Rebuild(len(t.Rows), func(i int) value.Value { return t.Rows[i].Values[colIdx] })
	return idx, recreated, nil
}

// DropIndex removes the named index.
func (c *Catalog) DropIndex(name string) error {
	slot, ok := c.indexByName[name]
	if !ok {
		return fmt.Errorf("drop index %q: %w", name, ErrIndexNotFound)
	}
	c.indexes = append(c.indexes[:slot], c.indexes[slot+1:]...)
	delete(c.indexByName, name)
	for n := range c.indexByName {
		if c.indexByName[n] > slot {
			c.indexByName[n]--
		}
	}
	return nil
}

// GetIndexByName returns the named index, or nil.
func (c *Catalog) GetIndexByName(name string) *index.Index {
	slot, ok := c.indexByName[name]
	if !ok {
		return nil
	}
	return c.indexes[slot]
}

func (c *Catalog) indexesOnTable(tableName string) []*index.Index {
	var out []*index.Index
	for _, idx := range c.indexes {
		if idx.TableName == tableName {
			out = append(out, idx)
		}
	}
	return out
}
