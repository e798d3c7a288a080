// Package main hosts the spacebuild CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration once, builds a driver
// with the configured logger, executor, and history store, and maps pipeline
// results onto the process exit status. Pipeline logic lives in the internal
// packages; commands here only wire and render.
package main
