package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// maxLogFileBytes is the size at which the active log file is rolled over.
	maxLogFileBytes = 10 * 1024 * 1024
	// maxArchivedLogs caps how many rolled files are kept regardless of age.
	maxArchivedLogs = 5
	archivePattern  = "searchai-*.log"
)

// RotateLogFile renames path to a timestamped sibling once it grows past
// maxBytes, then trims archived siblings down to maxArchivedLogs.
func RotateLogFile(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() < maxBytes {
		return nil
	}
	dir := filepath.Dir(path)
	stamp := time.Now().UTC().Format("20060102T150405")
	target := filepath.Join(dir, fmt.Sprintf("searchai-%s.log", stamp))
	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}

	archived, err := filepath.Glob(filepath.Join(dir, archivePattern))
	if err != nil {
		return nil
	}
	sort.Strings(archived)
	for len(archived) > maxArchivedLogs {
		_ = os.Remove(archived[0])
		archived = archived[1:]
	}
	return nil
}

// CleanupOldLogs removes rolled log files in dir older than retentionDays.
// The active log file is never removed. A retentionDays value of 0 disables
// pruning.
func CleanupOldLogs(logger *slog.Logger, dir string, retentionDays int) {
	dir = strings.TrimSpace(dir)
	if retentionDays <= 0 || dir == "" {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == LogFileName {
			continue
		}
		if matched, err := filepath.Match(archivePattern, name); err != nil || !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		fullPath := filepath.Join(dir, name)
		if err := os.Remove(fullPath); err != nil {
			WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
				String("path", fullPath),
				Error(err),
				String(FieldErrorHint, "check file permissions and log_dir ownership"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		if logger != nil {
			logger.Debug("log pruned",
				String("path", fullPath),
				String(FieldEventType, "log_pruned"),
			)
		}
	}
}
