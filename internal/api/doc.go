// Package api exposes the searchai pipeline over HTTP.
//
// Routes (chi):
//
//	POST /api/v1/queries       run a query synchronously and return the outcome
//	GET  /api/v1/queries       recent queries, newest first (?limit=N)
//	GET  /api/v1/queries/{id}  one query with its stored results and documents
//	GET  /health               liveness plus database ping
//
// Errors are returned as {"error": "...", "stage": "..."}. Validation failures
// map to 400, unknown ids to 404, persistence failures to 500, and failures in
// the remote stages (search, generate, render) to 502.
package api
