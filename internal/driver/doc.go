// Package driver sequences the conversion and assembler pipelines for a
// project.
//
// The driver derives the project layout from the working directory it is
// handed, resolves the converter tools once per run, and runs the media sets
// and the assembler manifest in order, stopping at the first failure. Every
// run holds an exclusive lock on the state directory, carries a run ID in its
// context, and is recorded in the run history when a store is configured.
package driver
