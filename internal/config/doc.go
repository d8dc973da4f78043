// Package config loads, normalizes, and validates searchai configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SERPER_API_KEY, LLM_API_KEY/GEMINI_API_KEY, and DATABASE_URL. Missing
// credentials are collected and reported in a single error so startup fails
// once with the complete list.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, merged generation parameters, and clear validation errors.
package config
