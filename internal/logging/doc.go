// Package logging assembles structured slog loggers and formatting helpers used
// across trvip6.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes helpers so stage code can tag log lines with a
// component name and the run identifier. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
