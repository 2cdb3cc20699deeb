// Package logging constructs the application's slog loggers: console (text)
// or JSON output, optional log file fan-in, and the shared attribute
// helpers used across packages.
package logging
