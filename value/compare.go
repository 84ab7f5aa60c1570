package value

import "strings"

// Ordering is the three-way result of Compare.
type Ordering int

const (
	Less Ordering = -1
	Equal Ordering = 0
	Greater Ordering = 1
	// Unordered marks pairs that have no ordering: a NULL or an ERROR
	// on either side.
	Unordered Ordering = 2
)

// Compare implements spec §4.3: NULL and ERROR are unordered; INT vs
// FLOAT compares as real numbers; string vs string is lexicographic;
// every other pairing (including a number against a string) falls
// back to lexicographic comparison of each side's Repr().
func Compare(a, b Value) Ordering {
	if a.IsNull() || b.IsNull() {
		return Unordered
	}
	if a.IsError() || b.IsError() {
		return Unordered
	}

	af, aIsNum := a.AsFloat()
	bf, bIsNum := b.AsFloat()
	if aIsNum && bIsNum {
		switch {
		case af < bf:
			return Less
		case af > bf:
			return Greater
		default:
			return Equal
		}
	}
	if a.kind == KindString && b.kind == KindString {
		return ordFromInt(strings.Compare(a.s, b.s))
	}
	// Not both numeric and not both strings: fall back to
	// lexicographic comparison of their displayable representation,
	// per spec §4.3.
	return ordFromInt(strings.Compare(a.Repr(), b.Repr()))
}

func ordFromInt(c int) Ordering {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// Equals reports whether a and b compare equal under Compare. NULL
// never equals anything, including another NULL, matching spec's
// "NULL is unordered and propagates as unequal for =" rule.
func Equals(a, b Value) bool {
	return Compare(a, b) == Equal
}

// DistinctKey returns a string uniquely identifying v's kind and
// payload, used by DISTINCT de-duplication (spec §4.7 Aggregate),
// where two equal-by-value scalars of the same kind must collapse to
// one key. Unlike Equals, two NULLs do
// share a key here — callers that need spec's "NULL never equals
// anything" semantics filter NULLs out before reaching for this.
func (v Value) DistinctKey() string {
	switch v.kind {
	case KindNull:
		return "N"
	case KindError:
		return "E"
	case KindInt:
		return "I" + v.Repr()
	case KindFloat:
		return "F" + v.Repr()
	case KindString:
		return "S" + v.s
	case KindDate:
		return "D" + v.Repr()
	case KindTime:
		return "T" + v.Repr()
	default:
		return ""
	}
}
