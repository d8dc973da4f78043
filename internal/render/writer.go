package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"searchai/internal/logging"
	"searchai/internal/textutil"
)

const (
	lockFileName    = ".searchai.lock"
	lockRetryDelay  = 50 * time.Millisecond
	fileTimeLayout  = "20060102_150405"
	maxNameAttempts = 1000
)

// writer creates output files with unique names under an exclusive lock on
// the destination directory.
type writer struct {
	clock  Clock
	logger *slog.Logger
}

// BaseName returns the collision-free stem for query at t, without extension.
func BaseName(query string, t time.Time) string {
	return textutil.Slug(query, textutil.DefaultSlugLength) + "_" + t.UTC().Format(fileTimeLayout)
}

// create picks a file name in dest, creates the file, and hands it to fill.
// A partially written file is removed when fill fails.
func (w writer) create(ctx context.Context, dest, query, ext string, fill func(io.Writer) error) (string, error) {
	if dest == "" {
		return "", errors.New("destination directory required")
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}
	lock := flock.New(filepath.Join(dest, lockFileName))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return "", errors.New("acquire output lock: not acquired")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	file, path, err := openUnique(dest, BaseName(query, w.clock()), ext)
	if err != nil {
		return "", err
	}
	if err := fill(file); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	logging.WithContext(ctx, w.logger).Debug("document written", logging.String("path", path))
	return path, nil
}

func openUnique(dest, base, ext string) (*os.File, string, error) {
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		name := base
		if attempt > 1 {
			name += "_" + strconv.Itoa(attempt)
		}
		path := filepath.Join(dest, name+ext)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create %s: %w", filepath.Base(path), err)
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s%s", base, ext)
}
