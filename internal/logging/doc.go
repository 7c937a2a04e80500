// Package logging assembles structured slog loggers used across recamazon.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline stages tag their log
// lines with stage names and run correlation IDs. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
