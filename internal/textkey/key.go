package textkey

import "strings"

// Normalize converts an arbitrary display title into its canonical
// comparison key: lowercased, every character outside [a-z0-9] replaced by a
// space, whitespace runs collapsed, trimmed. Total and idempotent; empty or
// all-punctuation input normalizes to "".
func Normalize(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	lastSpace := true
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastSpace = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastSpace = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Contains reports case-folded substring containment in either direction.
// Empty keys never contain and are never contained.
func Contains(a, b string) bool {
	ka := Normalize(a)
	kb := Normalize(b)
	if ka == "" || kb == "" {
		return false
	}
	return strings.Contains(ka, kb) || strings.Contains(kb, ka)
}
