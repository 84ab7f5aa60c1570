package index

import (
	"testing"

	"github.com/freeeve/machdb/value"
	"github.com/stretchr/testify/assert"
)

func TestInsertAndLookup(t *testing.T) {
	idx := New("idx_a_v", "a", "v", 64)
	idx.Insert(value.Int(5), 0)
	idx.Insert(value.Int(5), 1)
	idx.Insert(value.Int(9), 2)

	assert.ElementsMatch(t, []int{0, 1}, idx.Lookup(value.Int(5)))
	assert.Equal(t, []int{2}, idx.Lookup(value.Int(9)))
	assert.Nil(t, idx.Lookup(value.Int(1)))
}

func TestLookupNullAndErrorUnmatchable(t *testing.T) {
	idx := New("idx", "t", "c", 8)
	idx.Insert(value.Null, 0)
	idx.Insert(value.Err, 1)
	assert.Nil(t, idx.Lookup(value.Null))
	assert.Nil(t, idx.Lookup(value.Err))
}

func TestRebuildReplacesContents(t *testing.T) {
	idx := New("idx", "t", "c", 8)
	idx.Insert(value.Int(1), 0)

	rows := []value.Value{value.Int(10), value.Int(20), value.Null}
	idx.Rebuild(len(rows), func(i int) value.Value { return rows[i] })

	assert.Nil(t, idx.Lookup(value.Int(1)))
	assert.Equal(t, []int{0}, idx.Lookup(value.Int(10)))
	assert.Equal(t, []int{1}, idx.Lookup(value.Int(20)))
}

func TestBucketDefaultsWhenNonPositive(t *testing.T) {
	idx := New("idx", "t", "c", 0)
	idx.Insert(value.Int(1), 0)
	assert.Equal(t, []int{0}, idx.Lookup(value.Int(1)))
}

func TestBucketHashRulesPerKind(t *testing.T) {
	assert.Equal(t, uint64(5)%64, bucketFor(value.Int(5), 64))
	assert.Equal(t, uint64(int64(1.5*1000))%64, bucketFor(value.Float(1.5), 64))
	assert.Equal(t, uint64(0), bucketFor(value.Null, 64))
	assert.Equal(t, uint64(0), bucketFor(value.Err, 64))
}
