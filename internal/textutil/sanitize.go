package textutil

import (
	"strings"
	"unicode"
)

// DefaultSlugLength caps the length of slugs used in file names.
const DefaultSlugLength = 50

// Slug converts a string to a lowercase filesystem-safe token. Letters and
// digits are kept (including non-ASCII letters), runs of anything else become
// a single underscore, and the result is cut to at most maxRunes runes.
// Returns "document" for input with no usable characters.
func Slug(value string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = DefaultSlugLength
	}
	var b strings.Builder
	pendingSep := false
	count := 0
	for _, r := range strings.TrimSpace(value) {
		if count >= maxRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
				count++
				if count >= maxRunes {
					break
				}
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			count++
			continue
		}
		pendingSep = true
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "document"
	}
	return out
}

// Truncate shortens s to at most limit runes, appending "..." when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// CollapseSpace replaces every run of whitespace with a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
