// Package index implements the single-column hash index (spec §4.4).
// Bucket chains are a map[uint64][]entry (spec §9's suggested rewrite:
// "a hash map from Value to a list of row ids"), not a hand-rolled
// linked list.
package index

import "github.com/freeeve/machdb/value"

type entry struct {
	key      value.Value
	rowIndex int
}

// Index is a hash index on a single column of a table.
type Index struct {
	Name        string
	TableName   string
	ColumnName  string
	buckets     int
	chains      map[uint64][]entry
}

// New creates an empty index with the given bucket count (spec §4.4
// design default: 64).
func New(name, tableName, columnName string, buckets int) *Index {
	if buckets <= 0 {
		buckets = 64
	}
	return &Index{
		Name:       name,
		TableName:  tableName,
		ColumnName: columnName,
		buckets:    buckets,
		chains:     make(map[uint64][]entry),
	}
}

// Bucket computes the bucket for v per spec §4.4's hash rules:
// INT mod B; FLOAT*1000 mod B; STRING via a djb-like rolling hash;
// DATE/TIME via their packed integer representation; NULL/ERROR
// always land in bucket 0 and are never matchable on probe.
func (idx *Index) Bucket(v value.Value) uint64 {
	return bucketFor(v, uint64(idx.buckets))
}

func bucketFor(v value.Value, buckets uint64) uint64 {
	switch v.Kind() {
	case value.KindInt:
		return uint64(v.Int()) % buckets
	case value.KindFloat:
		return uint64(int64(v.Float()*1000)) % buckets
	case value.KindString:
		var h uint64
		for i := 0; i < len(v.Str()); i++ {
			h = h*31 + uint64(v.Str()[i])
		}
		return h % buckets
	case value.KindDate:
		d := v.Date()
		packed := uint64(d.Year)*10000 + uint64(d.Month)*100 + uint64(d.Day)
		return packed % buckets
	case value.KindTime:
		t := v.Time()
		packed := uint64(t.Hour)*10000 + uint64(t.Minute)*100 + uint64(t.Second)
		return packed % buckets
	default:
		return 0
	}
}

// Insert adds one (key, rowIndex) entry to the index.
func (idx *Index) Insert(key value.Value, rowIndex int) {
	b := idx.Bucket(key)
	idx.chains[b] = append(idx.chains[b], entry{key: key, rowIndex: rowIndex})
}

// Lookup returns the row indices whose key equals the probe key
// (spec §4.3 compare), walking only the probe's bucket chain. NULL and
// ERROR keys are never matchable, per spec §4.4.
func (idx *Index) Lookup(key value.Value) []int {
	if key.IsNull() || key.IsError() {
		return nil
	}
	b := idx.Bucket(key)
	var out []int
	for _, e := range idx.chains[b] {
		if value.Equals(e.key, key) {
			out = append(out, e.rowIndex)
		}
	}
	return out
}

// Rebuild clears and re-scans rows, calling keyOf to extract the
// indexed column's value from each row by position. CREATE INDEX
// always performs a full rebuild (spec §4.1).
func (idx *Index) Rebuild(rowCount int, keyOf func(rowIndex int) value.Value) {
	idx.chains = make(map[uint64][]entry)
	for i := 0; i < rowCount; i++ {
		k := keyOf(i)
		if k.IsNull() || k.IsError() {
			continue
		}
		idx.Insert(k, i)
	}
}
