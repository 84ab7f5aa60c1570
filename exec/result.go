// Package exec implements the Executor (spec §4.8): dispatch on a
// parsed statement, compose operators into the fixed SELECT pipeline,
// and materialize a QueryResult. It replaces the statement-scoped
// global state the original design used
// (in_aggregate_context/aggregate_results/last_query_result) with an
// explicit Context threaded through each call (spec §9).
package exec

import "github.com/freeeve/machdb/value"

// QueryResult is spec §3's materialized result: column names, the
// row-major value matrix, and the derived counts. Deep-copied out of
// the Catalog's rows, so the caller owns it independently of any
// further mutation to the source table.
type QueryResult struct {
	ColumnNames []string
	ColCount    int
	RowCount    int
	Values      [][]value.Value
}

func newQueryResult(names []string, rows [][]value.Value) *QueryResult {
	return &QueryResult{
		ColumnNames: names,
		ColCount:    len(names),
		RowCount:    len(rows),
		Values:      rows,
	}
}

// EmptyResult is returned for statements that produce no rows (DDL,
// DML) — spec §7: "successful dispatch with zero-row result still
// returns a QueryResult with row_count=0", not an error.
func EmptyResult() *QueryResult {
	return &QueryResult{ColumnNames: nil, ColCount: 0, RowCount: 0, Values: nil}
}
