// Package pipeline holds the staleness-and-dispatch loop shared by the
// conversion and assembler pipelines.
//
// A pipeline is an ordered list of Steps. Each step pairs a source with the
// destination it produces and the tool invocation that produces it. Execute
// checks each destination once, immediately before it would be rebuilt, runs
// the tool synchronously for stale steps, and stops at the first non-zero
// exit status. The outcome is always an explicit Result: Success or a
// Failure carrying the status that ends the run.
package pipeline
