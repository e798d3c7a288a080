// Package services defines shared error markers and context helpers consumed
// by the pipelines, the driver, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and pipeline names for logging and
//     history records.
//   - Structured error markers plus the Wrap helper that classify failures
//     (tool not found, invocation, filesystem, configuration, locking).
//
// Use these helpers when wiring new pipeline logic so failure reporting stays
// uniform across the build.
package services
