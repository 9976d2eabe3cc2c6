// Package config loads, normalizes, and validates Sentinel configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NEWSAPI_KEY. The Config type centralizes every knob the server and CLI need,
// so dispatch directories and external service credentials are discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
