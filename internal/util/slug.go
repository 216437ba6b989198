package util

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe identifier from a display title: lowercase,
// runs of non-alphanumeric characters collapse to a single hyphen, leading
// and trailing hyphens are trimmed.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
