// Package logging assembles structured slog loggers and formatting helpers used
// across searchai.
//
// The CLI logger writes concise console lines to stderr at the console level
// (warn by default) and the full record to <log_dir>/searchai.log at the
// configured level. Context helpers tag lines with query IDs and stage names,
// and CleanupOldLogs prunes files past the retention window.
package logging
