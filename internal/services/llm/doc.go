// Package llm provides a chat completions client for OpenAI-compatible
// endpoints (OpenRouter by default).
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send a system/user prompt pair with sampling parameters
// and receive the model's text.
// Client.HealthCheck: verify API key and model availability.
//
// # Failure Behaviour
//
// Each call makes exactly one HTTP request. Non-2xx responses, provider error
// payloads, and responses without content are returned as errors; callers
// decide what a failure means for their stage.
package llm
