// Package serper is a minimal client for the Serper.dev Google search API.
// Each Search call makes one POST request and returns organic results.
package serper
