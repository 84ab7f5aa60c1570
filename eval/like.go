package eval

import "strings"

// matchLike implements spec §4.5 LIKE semantics: '%' matches any
// substring (including empty), '_' matches exactly one character,
// '\' escapes the following pattern character, and the match is
// anchored to both ends of the subject.
func matchLike(s, pattern string, ci bool) bool {
	if ci {
		s = strings.ToLower(s)
		pattern = strings.ToLower(pattern)
	}
	return likeMatch(s, pattern)
}

// likeMatch is a straightforward recursive-descent matcher over
// pattern positions; small inputs (row values, LIKE patterns) make the
// O(n*m) worst case irrelevant here.
func likeMatch(s, pattern string) bool {
	return matchFrom(s, 0, pattern, 0)
}

func matchFrom(s string, si int, pattern string, pi int) bool {
	for pi < len(pattern) {
		switch pattern[pi] {
		case '%':
			// Collapse consecutive '%' and try every possible split.
			for pi < len(pattern) && pattern[pi] == '%' {
				pi++
			}
			if pi == len(pattern) {
				return true
			}
			for k := si; k <= len(s); k++ {
				if matchFrom(s, k, pattern, pi) {
					return true
				}
			}
			return false
		case '_':
			if si >= len(s) {
				return false
			}
			si++
			pi++
		case '\\':
			pi++
			if pi >= len(pattern) {
				return false
			}
			if si >= len(s) || s[si] != pattern[pi] {
				return false
			}
			si++
			pi++
		default:
			if si >= len(s) || s[si] != pattern[pi] {
				return false
			}
			si++
			pi++
		}
	}
	return si == len(s)
}
