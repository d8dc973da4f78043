package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"searchai/internal/format"
	"searchai/internal/services"
)

// LogDocument records a rendered file for a processing query.
func (s *Store) LogDocument(ctx context.Context, queryID, path string, f format.Format, size int64) (*Document, error) {
	doc := &Document{
		ID:        uuid.NewString(),
		QueryID:   queryID,
		Path:      path,
		Format:    f,
		Size:      size,
		CreatedAt: time.Now().UTC(),
	}
	err := s.withTx(ctx, "log document", func(tx *sql.Tx) error {
		if err := requireProcessing(ctx, tx, queryID, "log document"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO generated_documents (id, query_id, file_path, format, file_size, created_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			doc.ID, doc.QueryID, doc.Path, string(doc.Format), doc.Size, formatTime(doc.CreatedAt),
		)
		if err != nil {
			return services.Wrap(services.ErrDatabase, stageStore, "log document", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Documents returns the files generated for a query, oldest first.
func (s *Store) Documents(ctx context.Context, queryID string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM generated_documents WHERE query_id = ? ORDER BY created_at`, queryID)
	if err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "documents", "", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrDatabase, stageStore, "documents", "scan", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrDatabase, stageStore, "documents", "", err)
	}
	return out, nil
}
