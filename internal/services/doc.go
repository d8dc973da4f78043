// Package services defines shared utilities consumed by the pipeline stages
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp query IDs, stage names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can classify a
//     failure (search, generation, rendering, database) with errors.Is.
//   - StageError and DocumentError, which carry the failing stage and output
//     format up to the CLI and HTTP surfaces.
//
// Subpackages hold the remote clients (chat completions, Vertex AI, Serper,
// Cloud Storage).
package services
