package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"searchai/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

var requiredTables = []string{"queries", "search_results", "generated_documents"}

// Init creates the schema when absent, verifies the version of an existing
// database, and confirms every required table exists. It is idempotent.
func (s *Store) Init(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return services.Wrap(services.ErrDatabase, stageStore, "init", "check schema_version table", err)
	}

	if tableExists == 0 {
		if err := s.createSchema(ctx); err != nil {
			return err
		}
	} else {
		var version int
		if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
			return services.Wrap(services.ErrDatabase, stageStore, "init", "read schema version", err)
		}
		if version != schemaVersion {
			return services.Wrap(services.ErrDatabase, stageStore, "init",
				fmt.Sprintf("database has version %d, expected %d (delete the database to recreate it)", version, schemaVersion),
				ErrSchemaMismatch)
		}
	}

	return s.verifyTables(ctx)
}

func (s *Store) createSchema(ctx context.Context) error {
	return s.withTx(ctx, "init", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return services.Wrap(services.ErrDatabase, stageStore, "init", "create schema", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return services.Wrap(services.ErrDatabase, stageStore, "init", "record schema version", err)
		}
		return nil
	})
}

func (s *Store) verifyTables(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return services.Wrap(services.ErrDatabase, stageStore, "init", "list tables", err)
	}
	defer rows.Close()

	present := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return services.Wrap(services.ErrDatabase, stageStore, "init", "scan table name", err)
		}
		present[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return services.Wrap(services.ErrDatabase, stageStore, "init", "list tables", err)
	}

	var missing []string
	for _, table := range requiredTables {
		if _, ok := present[table]; !ok {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return services.Wrap(services.ErrDatabase, stageStore, "init", strings.Join(missing, ", "), ErrMissingTables)
	}
	return nil
}
