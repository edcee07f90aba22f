// Package normalize trims and canonicalizes user-supplied strings before
// they are stored.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Key trims a settings key. Keys are case-sensitive.
func Key(s string) string {
	return strings.TrimSpace(s)
}

// List trims every entry and drops blanks, keeping order. A nil or empty
// input yields an empty, non-nil slice so it serializes as [].
func List(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
