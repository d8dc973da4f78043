package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"searchai/internal/services"
	"searchai/internal/store"
)

// HistorySheet is the worksheet name used for exported history.
const HistorySheet = "History"

const timeLayout = "2006-01-02 15:04:05"

var historyHeader = []any{"ID", "Query", "Format", "Status", "Error", "Created (UTC)", "Updated (UTC)"}

var columnWidths = map[string]float64{
	"A": 38,
	"B": 60,
	"C": 10,
	"D": 12,
	"E": 40,
	"F": 20,
	"G": 20,
}

// WriteHistory encodes queries as an XLSX workbook into w.
func WriteHistory(w io.Writer, queries []store.Query) error {
	f, err := historyWorkbook(queries)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return services.Wrap(services.ErrFileSystem, "export", "write workbook", "", err)
	}
	return nil
}

// SaveHistory writes queries to an XLSX file at path, creating parent
// directories as needed.
func SaveHistory(path string, queries []store.Query) error {
	if path == "" {
		return services.Wrap(services.ErrValidation, "export", "", "export path is empty", nil)
	}
	if ext := filepath.Ext(path); ext != ".xlsx" {
		return services.Wrap(services.ErrValidation, "export", "", fmt.Sprintf("export path must end in .xlsx, got %q", ext), nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return services.Wrap(services.ErrFileSystem, "export", "create directory", filepath.Dir(path), err)
	}
	f, err := historyWorkbook(queries)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return services.Wrap(services.ErrFileSystem, "export", "save workbook", path, err)
	}
	return nil
}

func historyWorkbook(queries []store.Query) (*excelize.File, error) {
	f := excelize.NewFile()
	wrap := func(op string, err error) (*excelize.File, error) {
		return nil, errors.Join(services.Wrap(services.ErrFileSystem, "export", op, "", err), f.Close())
	}

	if err := f.SetSheetName(f.GetSheetName(0), HistorySheet); err != nil {
		return wrap("name sheet", err)
	}
	if err := f.SetSheetRow(HistorySheet, "A1", &historyHeader); err != nil {
		return wrap("write header", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return wrap("header style", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(historyHeader), 1)
	if err := f.SetCellStyle(HistorySheet, "A1", lastHeader, bold); err != nil {
		return wrap("header style", err)
	}
	for col, width := range columnWidths {
		if err := f.SetColWidth(HistorySheet, col, col, width); err != nil {
			return wrap("column width", err)
		}
	}

	for i, q := range queries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return wrap("row address", err)
		}
		row := []any{
			q.ID,
			q.Text,
			q.Format.String(),
			string(q.Status),
			q.ErrorMessage,
			formatTime(q.CreatedAt),
			formatTime(q.UpdatedAt),
		}
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return wrap("write row", err)
		}
	}

	if err := f.SetPanes(HistorySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return wrap("freeze header", err)
	}
	return f, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
