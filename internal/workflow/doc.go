// Package workflow coordinates one query through its lifecycle:
//
//	pending -> processing -> completed
//	                      -> failed
//
// Coordinator.Run creates the query record, runs search, generation, and
// rendering in order, stores results and the document record between stages,
// and records the outcome. Status updates commit independently so history
// shows progress while a run is in flight. There are no retries: the first
// failing stage marks the query failed and its error is returned with the
// stage label attached.
//
// Collaborators are injected as interfaces so tests can substitute fakes for
// the remote backends while keeping the real store and renderers.
package workflow
