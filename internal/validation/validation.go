package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"searchai/internal/config"
	"searchai/internal/format"
	"searchai/internal/services"
)

// MaxQueryLength is the longest accepted query, in characters.
const MaxQueryLength = 500

const (
	stageValidation = "validation"
	probeFileName   = ".write_test"
)

// Query returns the trimmed query text, rejecting empty and overlong input.
// The length limit applies to the input as given.
func Query(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", services.Wrap(services.ErrValidation, stageValidation, "query", "search query cannot be empty", nil)
	}
	if n := utf8.RuneCountInString(text); n > MaxQueryLength {
		return "", services.Wrap(services.ErrValidation, stageValidation, "query",
			fmt.Sprintf("search query too long (%d characters, max %d)", n, MaxQueryLength), nil)
	}
	return trimmed, nil
}

// Format resolves a user-supplied format name.
func Format(value string) (format.Format, error) {
	f, err := format.Parse(value)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, stageValidation, "format", "", err)
	}
	return f, nil
}

// OutputDirectory resolves path (or fallback when path is blank) to an
// absolute directory, checks that its parent exists and accepts new files,
// and creates the directory if needed.
func OutputDirectory(path, fallback string) (string, error) {
	candidate := strings.TrimSpace(path)
	if candidate == "" {
		candidate = strings.TrimSpace(fallback)
	}
	if candidate == "" {
		return "", services.Wrap(services.ErrValidation, stageValidation, "output directory", "no output directory configured", nil)
	}

	dir, err := config.ExpandPath(candidate)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, stageValidation, "output directory", "", err)
	}

	parent := filepath.Dir(dir)
	info, err := os.Stat(parent)
	if err != nil || !info.IsDir() {
		return "", services.Wrap(services.ErrValidation, stageValidation, "output directory",
			fmt.Sprintf("parent directory does not exist: %s", parent), err)
	}

	if err := probeWritable(parent); err != nil {
		return "", services.Wrap(services.ErrValidation, stageValidation, "output directory",
			fmt.Sprintf("directory not writable: %s", parent), err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrValidation, stageValidation, "output directory",
			fmt.Sprintf("create %s", dir), err)
	}
	return dir, nil
}

func probeWritable(dir string) error {
	probe := filepath.Join(dir, probeFileName)
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(probe)
		return err
	}
	return os.Remove(probe)
}
