// Package preflight provides readiness checks for the external services and
// filesystem paths searchai depends on.
//
// The CLI "check" command runs RunAll and prints one line per result. Remote
// checks make a single real request with a short timeout and no retries.
// Checks that do not apply to the configuration (for example the search key
// when the agent backend is selected) are skipped.
package preflight
