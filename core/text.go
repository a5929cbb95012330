package core

import "strings"

// NormalizeASCII replaces every rune outside the printable ASCII range
// (0x20..0x7E) with a single space. The mapping is deterministic, so
// normalizing the same text twice yields the same result, and chunk IDs
// derived from normalized text are stable across runs.
func NormalizeASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7E {
			return ' '
		}
		return r
	}, s)
}
