package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"searchai/internal/config"
	"searchai/internal/services"
)

const stageStore = "store"

// Store persists queries, search results, and generated documents in SQLite.
// Every exported write runs in its own transaction.
type Store struct {
	db  *sql.DB
	dsn string
}

// Open connects to the configured database and initializes the schema.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	return OpenDSN(ctx, cfg.Database.DSN, cfg.Database.BusyTimeoutMS)
}

// OpenDSN connects to the SQLite database named by dsn (a file path, a
// file: URI, or ":memory:") and initializes the schema.
func OpenDSN(ctx context.Context, dsn string, busyTimeoutMS int) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageStore, "open", "database dsn is empty", nil)
	}
	if busyTimeoutMS <= 0 {
		busyTimeoutMS = 5000
	}

	db, err := sql.Open("sqlite", withPragmas(dsn, busyTimeoutMS))
	if err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "open", "open sqlite db", err)
	}
	if isMemoryDSN(dsn) {
		// Each in-memory connection is a distinct database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, services.Wrap(services.ErrDatabase, stageStore, "open", "apply journal mode", err)
	}

	store := &Store{db: db, dsn: dsn}
	if err := store.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return services.Wrap(services.ErrDatabase, stageStore, "ping", "", err)
	}
	return nil
}

func withPragmas(dsn string, busyTimeoutMS int) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", dsn, sep, busyTimeoutMS)
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// withTx runs fn inside a transaction, committing on success and rolling back
// on any error.
func (s *Store) withTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return services.Wrap(services.ErrDatabase, stageStore, op, "begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return services.Wrap(services.ErrDatabase, stageStore, op, "commit", err)
	}
	return nil
}
