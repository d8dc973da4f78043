package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"searchai/internal/services"
)

// ResultInput is a search hit to be stored, in backend order.
type ResultInput struct {
	URL     string
	Title   string
	Snippet string
}

// StoreResults inserts every result for a processing query in a single
// transaction. Either all rows are stored or none are.
func (s *Store) StoreResults(ctx context.Context, queryID string, results []ResultInput) (int, error) {
	err := s.withTx(ctx, "store results", func(tx *sql.Tx) error {
		if err := requireProcessing(ctx, tx, queryID, "store results"); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO search_results (id, query_id, position, source_url, title, snippet, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return services.Wrap(services.ErrDatabase, stageStore, "store results", "prepare", err)
		}
		defer stmt.Close()

		now := formatTime(time.Now())
		for i, r := range results {
			if _, err := stmt.ExecContext(ctx,
				uuid.NewString(), queryID, i, nullableString(r.URL), nullableString(r.Title), nullableString(r.Snippet), now,
			); err != nil {
				return services.Wrap(services.ErrDatabase, stageStore, "store results", fmt.Sprintf("insert result %d", i), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// Results returns the stored results for a query in backend order.
func (s *Store) Results(ctx context.Context, queryID string) ([]SearchResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resultColumns+` FROM search_results WHERE query_id = ? ORDER BY position`, queryID)
	if err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "results", "", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrDatabase, stageStore, "results", "scan", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "results", "", err)
	}
	return out, nil
}
