package operators

import (
	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
)

// Delete removes every row of t matching where, per spec §4.7 Delete:
// the kept rows are rebuilt in order, so surviving row indices shift —
// matching spec's warning that row indices are not stable across a
// DELETE. Returns the number of rows removed.
func Delete(t *catalog.Table, where ast.Expr) int {
	matched := FilterIndices(t, where)
	if len(matched) == 0 {
		return 0
	}
	kill := make(map[int]bool, len(matched))
	for _, i := range matched {
		kill[i] = true
	}
	kept := t.Rows[:0:0]
	for i, r := range t.Rows {
		if !kill[i] {
			kept = append(kept, r)
		}
	}
	t.Rows = kept
	return len(matched)
}
