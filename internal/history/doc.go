// Package history persists build runs and the tool invocations they made in a
// SQLite database under the state directory.
//
// The store is write-only from the pipelines' point of view: staleness is
// always decided from filesystem timestamps, never from recorded runs. The
// history command reads it back for display.
package history
