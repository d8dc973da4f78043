// Package content builds the generation prompt for a query and its sources,
// sends it to the configured LLM backend on the shared worker pool, and
// returns the cleaned document text.
package content
