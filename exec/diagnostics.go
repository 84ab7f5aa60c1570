package exec

import (
	"fmt"

	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/format"
)

// Printer is spec §6's printer collaborator: rendering a QueryResult
// as a box-drawing table is presentation, not part of the core's
// correctness contract, so this package declares the interface and
// ships no default — a caller (REPL, CLI) supplies its own.
type Printer interface {
	PrintPrettyResult(result *QueryResult)
}

// Suggestor is spec §6's suggestor collaborator: an edit-distance hint
// "used in error messages only" (spec §7). Unlike Printer, spec wires
// this directly into the single-line failure diagnostic, so this
// package ships editDistanceSuggestor as the default Suggestor used by
// tableNotFoundError.
type Suggestor interface {
	SuggestSimilar(name string, candidates []string) string
}

type editDistanceSuggestor struct{}

// SuggestSimilar returns the closest candidate to name by edit
// distance, or "" if nothing is close enough to be worth suggesting.
func (editDistanceSuggestor) SuggestSimilar(name string, candidates []string) string {
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := levenshtein(name, c)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	if best == "" || bestDist > maxSuggestDistance(name) {
		return ""
	}
	return best
}

func maxSuggestDistance(s string) int {
	if len(s) <= 3 {
		return 1
	}
	return 2
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}

// defaultSuggestor is the Suggestor every tableNotFoundError call uses.
var defaultSuggestor Suggestor = editDistanceSuggestor{}

// describe renders stmt back to SQL text for inclusion in an error
// line. A full Printer implementation renders result tables; this is
// the narrower "render the failing statement" text spec §7's single
// prominent error line needs, so it stays a package-private helper
// rather than going through the Printer interface.
func describe(stmt ast.Statement) string {
	return format.String(stmt)
}

// tableNotFoundError builds the single-line diagnostic spec §7
// describes: the offending statement rendered back to SQL, the
// missing name, and an optional "did you mean" suggestion from the
// Suggestor collaborator over the catalog's current table names.
func tableNotFoundError(cat *catalog.Catalog, stmt ast.Statement, verb, name string) error {
	hint := ""
	if suggestion := suggestTable(cat, name); suggestion != "" {
		hint = fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return fmt.Errorf("%s: %s %q: %w%s", describe(stmt), verb, name, catalog.ErrTableNotFound, hint)
}

func suggestTable(cat *catalog.Catalog, missing string) string {
	tables := cat.Tables()
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return defaultSuggestor.SuggestSimilar(missing, names)
}
