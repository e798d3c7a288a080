// Package preflight provides readiness checks for the directories and tools a
// build depends on.
//
// The status command runs these before showing the dry-run plan. The
// pipelines themselves never consult them: a missing tool surfaces as the
// tool's own launch failure.
package preflight
