// Package catalog implements the Catalog component (spec §4.1, §3): a
// process-wide named set of tables and indexes with stable integer
// table ids. Grounded on other_examples' genjidb-genji catalog.go
// (cache-of-named-objects with sentinel "already exists" errors) and
// turtacn-guocedb catalog.go (minimal in-memory name-keyed registry),
// reduced to the single-process/no-persistence scope spec.md requires.
package catalog

import (
	"fmt"

	"github.com/freeeve/machdb/dbconfig"
	"github.com/freeeve/machdb/row"
)

// Catalog is an ordered set of tables and indexes. Table removal does
// not renumber the ids of the remaining tables, but later tables shift
// down one slot in insertion order — clients rediscover tables by name.
type Catalog struct {
	tables      []*Table
	tableByName map[string]int // name -> slot in tables
	nextTableID int

	indexes      []*Index
	indexByName  map[string]int // name -> slot in indexes

	joinSeq int // synthesized join-table name counter

	cfg dbconfig.Config
}

// New builds an empty Catalog using cfg's limits.
func New(cfg dbconfig.Config) *Catalog {
	return &Catalog{
		tableByName: make(map[string]int),
		indexByName: make(map[string]int),
		nextTableID: 1,
		cfg:         cfg,
	}
}

// CreateTable inserts a new table, assigning it the next id. Fails if
// the name collides or MAX_TABLES is reached (spec §4.1).
func (c *Catalog) CreateTable(name string, schema *row.TableDef) (*Table, error) {
	if _, ok := c.tableByName[name]; ok {
		return nil, fmt.Errorf("create table %q: %w", name, ErrTableExists)
	}
	if len(c.tables) >= c.cfg.MaxTables {
		return nil, fmt.Errorf("create table %q: %w (limit %d)", name, ErrTableLimit, c.cfg.MaxTables)
	}
	t := &Table{ID: c.nextTableID, Name: name, Schema: schema}
	c.nextTableID++
	c.tableByName[name] = len(c.tables)
	c.tables = append(c.tables, t)
	return t, nil
}

// DropTable removes the named table and any indexes defined on it.
func (c *Catalog) DropTable(name string) error {
	slot, ok := c.tableByName[name]
	if !ok {
		return fmt.Errorf("drop table %q: %w", name, ErrTableNotFound)
	}
	c.tables = append(c.tables[:slot], c.tables[slot+1:]...)
	delete(c.tableByName, name)
	for n := range c.tableByName {
		if c.tableByName[n] > slot {
			c.tableByName[n]--
		}
	}
	// Indexes tied to this table become orphaned; drop them too, since
	// an index over a table that no longer exists can never be probed.
	for _, idx := range c.indexesOnTable(name) {
		_ = c.DropIndex(idx.Name)
	}
	return nil
}

// GetTableByName returns the table with the given name, or nil.
func (c *Catalog) GetTableByName(name string) *Table {
	slot, ok := c.tableByName[name]
	if !ok {
		return nil
	}
	return c.tables[slot]
}

// GetTableByID returns the table with the given id, or nil. Ids are
// stable for a table's lifetime (removal never renumbers them) but
// this is a linear scan since tables are not indexed by id.
func (c *Catalog) GetTableByID(id int) *Table {
	for _, t := range c.tables {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Tables returns all tables in insertion order. The slice is owned by
// the caller; mutating it does not affect the catalog.
func (c *Catalog) Tables() []*Table {
	out := make([]*Table, len(c.tables))
	copy(out, c.tables)
	return out
}

// NextJoinTableName synthesizes the `_join_<lid>_<rid>_<seq>` name for
// a materialized join result; the per-catalog sequence number keeps
// repeated joins of the same two tables from colliding.
func (c *Catalog) NextJoinTableName(leftID, rightID int) string {
	c.joinSeq++
	return fmt.Sprintf("_join_%d_%d_%d", leftID, rightID, c.joinSeq)
}

// Config returns the limits this catalog was constructed with.
func (c *Catalog) Config() dbconfig.Config { return c.cfg }
