// Package store persists searchai queries and their artifacts in SQLite.
//
// It owns the embedded schema (queries, search_results, generated_documents),
// schema versioning, and the lifecycle rules for query status: a query moves
// pending → processing → completed or failed, never backwards. Search results
// and document records may only be attached while a query is processing, and
// every write commits in its own transaction so observers see progress as it
// happens.
package store
