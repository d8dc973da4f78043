// Package validation checks user input before any record is created: the
// query text, the requested output format, and the output directory.
// Failures carry the services.ErrValidation marker.
package validation
