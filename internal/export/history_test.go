package export

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"searchai/internal/format"
	"searchai/internal/services"
	"searchai/internal/store"
)

func sampleQueries() []store.Query {
	created := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	return []store.Query{
		{ID: "q-2", Text: "renewable energy", Format: format.PDF, Status: store.StatusCompleted, CreatedAt: created, UpdatedAt: created.Add(time.Minute)},
		{ID: "q-1", Text: "llm safety", Format: format.PPT, Status: store.StatusFailed, ErrorMessage: "search: timed out", CreatedAt: created.Add(-time.Hour)},
	}
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistory(&buf, sampleQueries()); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != HistorySheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	rows, err := f.GetRows(HistorySheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Query" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][1] != "renewable energy" || rows[1][2] != "pdf" || rows[1][3] != "completed" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[1][5] != "2026-03-14 15:09:26" {
		t.Fatalf("unexpected created time %q", rows[1][5])
	}
	if rows[2][4] != "search: timed out" {
		t.Fatalf("unexpected error column %v", rows[2])
	}
}

func TestSaveHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.xlsx")
	if err := SaveHistory(path, sampleQueries()); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(HistorySheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
}

func TestSaveHistoryRejectsWrongExtension(t *testing.T) {
	err := SaveHistory(filepath.Join(t.TempDir(), "history.csv"), nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWriteHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistory(&buf, nil); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(HistorySheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
