// Package logging builds the slog loggers used across flipbook.
//
// It provides console and JSON handlers, a no-op logger for tests, attr
// helper shims, and component loggers so every subsystem tags its output the
// same way. Obtain loggers through New or NewBasic rather than constructing
// slog handlers directly.
package logging
