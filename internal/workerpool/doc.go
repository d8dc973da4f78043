// Package workerpool runs blocking backend calls (search requests, model
// generations) on a process-wide bounded pool with per-call deadlines.
//
// A deadline bounds only how long the caller waits. The underlying call is
// asked to stop through its context but is never forcibly interrupted; a
// result that arrives after the deadline is logged and dropped.
package workerpool
