package search

import (
	"log/slog"
	"strings"

	"searchai/internal/logging"
)

const (
	noSummary        = "No summary available"
	noInternetMarker = "do not have direct access to the internet"
	urlMarker        = "http"
)

// ParseTranscript turns a free-text "URL / title / summary" listing into
// results. It never returns an empty slice for non-blank input: when nothing
// can be parsed the whole transcript becomes a single fallback result.
func ParseTranscript(raw string, logger *slog.Logger) []Result {
	if logger == nil {
		logger = logging.NewNop()
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if strings.Contains(raw, noInternetMarker) {
		return []Result{{
			Title:   "Error: No Internet Access",
			URL:     "N/A",
			Snippet: "The search agent does not have internet access. Please check your search API key configuration.",
		}}
	}

	sections := strings.Split(raw, urlMarker)
	results := make([]Result, 0, len(sections))
	for _, section := range sections[1:] {
		lines := strings.Split(section, "\n")
		url := urlMarker + strings.TrimSpace(lines[0])
		body := make([]string, 0, len(lines))
		for _, line := range lines[1:] {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				body = append(body, trimmed)
			}
		}
		if len(body) == 0 {
			logger.Debug("transcript segment skipped", logging.String("url", url))
			continue
		}
		snippet := noSummary
		if len(body) > 1 {
			snippet = strings.Join(body[1:], " ")
		}
		results = append(results, Result{Title: body[0], URL: url, Snippet: snippet})
	}

	if len(results) == 0 {
		logging.WarnWithContext(logger, "no structured results in transcript", "search_transcript_unstructured",
			logging.String(logging.FieldErrorHint, "search backend returned free text without URLs"),
			logging.String(logging.FieldImpact, "raw transcript used as a single source"),
		)
		return []Result{{Title: "Search Results", URL: "N/A", Snippet: raw}}
	}
	return results
}
