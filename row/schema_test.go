package row

import (
	"testing"

	"github.com/freeeve/machdb/value"
	"github.com/stretchr/testify/assert"
)

func sampleSchema() *TableDef {
	return &TableDef{Columns: []ColumnDef{
		{Name: "id", Type: value.TypeInt},
		{Name: "name", Type: value.TypeString, Flags: Nullable},
	}}
}

func TestColumnIndexIsCaseSensitive(t *testing.T) {
	s := sampleSchema()
	idx, ok := ColumnIndex(s, "name")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = ColumnIndex(s, "Name")
	assert.False(t, ok)
}

func TestNewRowIsAllNull(t *testing.T) {
	r := NewRow(3)
	for _, v := range r.Values {
		assert.True(t, v.IsNull())
	}
}

func TestSetValuePanicsOutOfRange(t *testing.T) {
	r := NewRow(2)
	assert.Panics(t, func() { SetValue(&r, 5, value.Int(1)) })
}

func TestCopyRowIsIndependent(t *testing.T) {
	orig := NewRow(1)
	SetValue(&orig, 0, value.Int(7))
	dup := CopyRow(orig)
	SetValue(&dup, 0, value.Int(99))

	assert.Equal(t, value.Int(7), orig.Values[0])
	assert.Equal(t, value.Int(99), dup.Values[0])
}

func TestFlagHas(t *testing.T) {
	f := Nullable | Unique
	assert.True(t, f.Has(Nullable))
	assert.True(t, f.Has(Unique))
	assert.False(t, f.Has(PrimaryKey))
}
