package domain

import (
	"strings"
	"unicode"
)

// Slug normalizes a display name into a routing key: lowercase, with each run
// of whitespace collapsed into one hyphen. Existing hyphens are kept, so
// "Kenya Nyeri - AA" becomes "kenya-nyeri---aa".
func Slug(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	inSpace := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
