package catalog

import (
	"testing"

	"github.com/freeeve/machdb/dbconfig"
	"github.com/freeeve/machdb/row"
	"github.com/freeeve/machdb/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schema() *row.TableDef {
	return &row.TableDef{Columns: []row.ColumnDef{
		{Name: "id", Type: value.TypeInt, Flags: row.Nullable},
	}}
}

func TestCreateTableAssignsStableIDs(t *testing.T) {
	c := New(dbconfig.Default())
	t1, err := c.CreateTable("a", schema())
	require.NoError(t, err)
	t2, err := c.CreateTable("b", schema())
	require.NoError(t, err)
	assert.NotEqual(t, t1.ID, t2.ID)

	_, err = c.CreateTable("a", schema())
	assert.ErrorIs(t, err, ErrTableExists)
}

func TestCreateTableRespectsLimit(t *testing.T) {
	cfg := dbconfig.Default()
	cfg.MaxTables = 1
	c := New(cfg)
	_, err := c.CreateTable("a", schema())
	require.NoError(t, err)
	_, err = c.CreateTable("b", schema())
	assert.ErrorIs(t, err, ErrTableLimit)
}

func TestDropTableRemovesTableNotOthers(t *testing.T) {
	c := New(dbconfig.Default())
	_, _ = c.CreateTable("a", schema())
	_, _ = c.CreateTable("b", schema())

	require.NoError(t, c.DropTable("a"))
	assert.Nil(t, c.GetTableByName("a"))
	assert.NotNil(t, c.GetTableByName("b"))

	err := c.DropTable("missing")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestDropTableDropsItsIndexes(t *testing.T) {
	c := New(dbconfig.Default())
	_, _ = c.CreateTable("a", schema())
	_, _, err := c.CreateIndex("a", "id", "")
	require.NoError(t, err)
	require.NotNil(t, c.GetIndexByName("idx_a_id"))

	require.NoError(t, c.DropTable("a"))
	assert.Nil(t, c.GetIndexByName("idx_a_id"))
}

func TestNextJoinTableNameIsUnique(t *testing.T) {
	c := New(dbconfig.Default())
	n1 := c.NextJoinTableName(1, 2)
	n2 := c.NextJoinTableName(1, 2)
	assert.NotEqual(t, n1, n2)
}

func TestCreateIndexRebuildsOnRecreate(t *testing.T) {
	c := New(dbconfig.Default())
	tbl, _ := c.CreateTable("a", schema())
	tbl.Rows = append(tbl.Rows, row.Row{Values: []value.Value{value.Int(1)}})

	idx, recreated, err := c.CreateIndex("a", "id", "myidx")
	require.NoError(t, err)
	assert.False(t, recreated)
	assert.Equal(t, []int{0}, idx.Lookup(value.Int(1)))

	tbl.Rows = append(tbl.Rows, row.Row{Values: []value.Value{value.Int(2)}})
	idx2, recreated2, err := c.CreateIndex("a", "id", "myidx")
	require.NoError(t, err)
	assert.True(t, recreated2)
	assert.Equal(t, []int{1}, idx2.Lookup(value.Int(2)))
}

func TestConstraintChecks(t *testing.T) {
	s := &row.TableDef{Columns: []row.ColumnDef{
		{Name: "id", Type: value.TypeInt},
		{Name: "email", Type: value.TypeString, Flags: row.Unique | row.Nullable},
	}}
	c := New(dbconfig.Default())
	tbl, _ := c.CreateTable("users", s)
	tbl.Rows = append(tbl.Rows, row.Row{Values: []value.Value{value.Int(1), value.Str("a@x.com")}})

	assert.ErrorIs(t, CheckNotNull(s, 0, value.Null), ErrNotNull)
	assert.NoError(t, CheckNotNull(s, 1, value.Null))

	assert.ErrorIs(t, CheckUnique(tbl, 1, value.Str("a@x.com"), -1), ErrUnique)
	assert.NoError(t, CheckUnique(tbl, 1, value.Str("a@x.com"), 0))
	assert.NoError(t, CheckUnique(tbl, 1, value.Str("b@x.com"), -1))
}

func TestCheckForeignKey(t *testing.T) {
	c := New(dbconfig.Default())
	parent, _ := c.CreateTable("parent", &row.TableDef{Columns: []row.ColumnDef{
		{Name: "id", Type: value.TypeInt, Flags: row.Nullable},
	}})
	parent.Rows = append(parent.Rows, row.Row{Values: []value.Value{value.Int(1)}})

	childSchema := &row.TableDef{Columns: []row.ColumnDef{
		{Name: "parent_id", Type: value.TypeInt, Flags: row.ForeignKey | row.Nullable, ReferencesTable: "parent", ReferencesColumn: "id"},
	}}
	require.NoError(t, c.CheckForeignKey(childSchema, 0, value.Int(1)))
	assert.ErrorIs(t, c.CheckForeignKey(childSchema, 0, value.Int(99)), ErrForeignKey)
	require.NoError(t, c.CheckForeignKey(childSchema, 0, value.Null))
}
