package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DocumentTitle returns the first level-one markdown heading in content, or
// the query in title case when there is none.
func DocumentTitle(content, query string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			if title := strings.TrimSpace(trimmed[2:]); title != "" {
				return title
			}
		}
	}
	return titleCase(query)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

func hasTopHeading(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return strings.HasPrefix(trimmed, "# ")
	}
	return false
}
