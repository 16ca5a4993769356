// Package slug derives URL-safe identifiers from task titles.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the title and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming hyphens from both ends.
// "Buy milk & eggs!" becomes "buy-milk-eggs". The result is computed once
// at task creation and never recomputed afterwards.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}

	return b.String()
}
