// Package config loads, normalizes, and validates flipbook configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FLIPBOOK_NTFY_TOPIC. The Config type centralizes every knob the CLI, the
// watch worker, and the TUI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical formats, and clear validation errors.
package config
