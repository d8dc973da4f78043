package store

import "errors"

var (
	// ErrQueryNotFound reports an operation against an unknown query id.
	ErrQueryNotFound = errors.New("query not found")
	// ErrInvalidTransition reports a status change that would move a query backwards.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrMissingTables reports that schema initialization did not produce every table.
	ErrMissingTables = errors.New("required tables missing")
)
