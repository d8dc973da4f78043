package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"searchai/internal/format"
	"searchai/internal/services"
)

// DefaultHistoryLimit is the number of queries History returns when no
// positive limit is given.
const DefaultHistoryLimit = 10

// CreateQuery records a new query in the pending state.
func (s *Store) CreateQuery(ctx context.Context, text string, f format.Format) (*Query, error) {
	if !f.Valid() {
		return nil, services.Wrap(services.ErrValidation, stageStore, "create query", fmt.Sprintf("unsupported format %q", f), nil)
	}
	now := time.Now().UTC()
	q := &Query{
		ID:        uuid.NewString(),
		Text:      text,
		Format:    f,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.withTx(ctx, "create query", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO queries (id, query_text, output_format, status, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			q.ID, q.Text, string(q.Format), string(q.Status), formatTime(now), formatTime(now),
		)
		if err != nil {
			return services.Wrap(services.ErrDatabase, stageStore, "create query", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// UpdateStatus moves a query forward in its lifecycle. The message is stored
// as the error message when status is failed and ignored otherwise. Unknown
// ids return ErrQueryNotFound; backwards or repeated moves return
// ErrInvalidTransition.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status, message string) error {
	allowed := predecessors[status]
	if len(allowed) == 0 {
		return services.Wrap(services.ErrDatabase, stageStore, "update status",
			fmt.Sprintf("%s is not a target status", status), ErrInvalidTransition)
	}
	if status != StatusFailed {
		message = ""
	}

	return s.withTx(ctx, "update status", func(tx *sql.Tx) error {
		args := []any{string(status), nullableString(message), formatTime(time.Now()), id}
		placeholders := ""
		for i, from := range allowed {
			if i > 0 {
				placeholders += ", "
			}
			placeholders += "?"
			args = append(args, string(from))
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE queries SET status = ?, error_message = ?, updated_at = ?
             WHERE id = ? AND status IN (`+placeholders+`)`,
			args...,
		)
		if err != nil {
			return services.Wrap(services.ErrDatabase, stageStore, "update status", "", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return services.Wrap(services.ErrDatabase, stageStore, "update status", "rows affected", err)
		}
		if affected == 1 {
			return nil
		}

		current, err := statusTx(ctx, tx, id)
		if err != nil {
			return err
		}
		return services.Wrap(services.ErrDatabase, stageStore, "update status",
			fmt.Sprintf("query %s: %s -> %s", id, current, status), ErrInvalidTransition)
	})
}

// GetQuery fetches a single query by id.
func (s *Store) GetQuery(ctx context.Context, id string) (*Query, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+queryColumns+` FROM queries WHERE id = ?`, id)
	q, err := scanQuery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "get query", id, ErrQueryNotFound)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "get query", "", err)
	}
	return q, nil
}

// History returns the most recent queries, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]Query, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+queryColumns+` FROM queries ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "history", "", err)
	}
	defer rows.Close()

	var out []Query
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrDatabase, stageStore, "history", "scan", err)
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "history", "", err)
	}
	return out, nil
}

// Stats returns the number of queries in each status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM queries GROUP BY status`)
	if err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "stats", "", err)
	}
	defer rows.Close()

	stats := make(map[Status]int, len(allStatuses))
	for _, status := range allStatuses {
		stats[status] = 0
	}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, services.Wrap(services.ErrDatabase, stageStore, "stats", "scan", err)
		}
		stats[Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "stats", "", err)
	}
	return stats, nil
}

func statusTx(ctx context.Context, tx *sql.Tx, id string) (Status, error) {
	var current string
	err := tx.QueryRowContext(ctx, `SELECT status FROM queries WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return "", services.Wrap(services.ErrDatabase, stageStore, "query status", id, ErrQueryNotFound)
	}
	if err != nil {
		return "", services.Wrap(services.ErrDatabase, stageStore, "query status", "", err)
	}
	return Status(current), nil
}

// requireProcessing fails unless the query exists and is processing.
func requireProcessing(ctx context.Context, tx *sql.Tx, id, op string) error {
	current, err := statusTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if current != StatusProcessing {
		return services.Wrap(services.ErrDatabase, stageStore, op,
			fmt.Sprintf("query %s is %s, expected processing", id, current), ErrInvalidTransition)
	}
	return nil
}
