package store

import (
	"database/sql"
	"errors"
	"time"

	"searchai/internal/format"
)

const (
	queryColumns    = "id, query_text, output_format, status, error_message, created_at, updated_at"
	resultColumns   = "id, query_id, position, source_url, title, snippet, created_at"
	documentColumns = "id, query_id, file_path, format, file_size, created_at"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuery(scanner rowScanner) (*Query, error) {
	var (
		q            Query
		formatStr    string
		statusStr    string
		errorMessage sql.NullString
		createdRaw   string
		updatedRaw   string
	)
	if err := scanner.Scan(&q.ID, &q.Text, &formatStr, &statusStr, &errorMessage, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}
	q.Format = format.Format(formatStr)
	q.Status = Status(statusStr)
	q.ErrorMessage = errorMessage.String
	if created, err := parseTimeString(createdRaw); err == nil {
		q.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		q.UpdatedAt = updated
	}
	return &q, nil
}

func scanResult(scanner rowScanner) (SearchResult, error) {
	var (
		r          SearchResult
		url        sql.NullString
		title      sql.NullString
		snippet    sql.NullString
		createdRaw string
	)
	if err := scanner.Scan(&r.ID, &r.QueryID, &r.Position, &url, &title, &snippet, &createdRaw); err != nil {
		return SearchResult{}, err
	}
	r.URL = url.String
	r.Title = title.String
	r.Snippet = snippet.String
	if created, err := parseTimeString(createdRaw); err == nil {
		r.CreatedAt = created
	}
	return r, nil
}

func scanDocument(scanner rowScanner) (Document, error) {
	var (
		d          Document
		formatStr  string
		createdRaw string
	)
	if err := scanner.Scan(&d.ID, &d.QueryID, &d.Path, &formatStr, &d.Size, &createdRaw); err != nil {
		return Document{}, err
	}
	d.Format = format.Format(formatStr)
	if created, err := parseTimeString(createdRaw); err == nil {
		d.CreatedAt = created
	}
	return d, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
