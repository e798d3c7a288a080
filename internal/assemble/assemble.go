// Package assemble runs the assembler over a manifest of scripts, rebuilding
// only the outputs that are older than their script.
package assemble

import (
	"context"
	"log/slog"
	"path/filepath"

	"spacebuild/internal/fileutil"
	"spacebuild/internal/logging"
	"spacebuild/internal/pipeline"
	"spacebuild/internal/staleness"
	"spacebuild/internal/toolexec"
)

// Options configures an assembler run.
type Options struct {
	Assembler    string
	Args         []string
	WorkingDir   string
	DestDir      string
	Manifest     Manifest
	CleanupFiles []string
	Executor     toolexec.Executor
	Logger       *slog.Logger
	Observer     pipeline.Observer
}

// Steps expands the manifest into pipeline steps. Each invocation is
// "<assembler> <args...> <source>.a65" run from the working directory.
func (o Options) Steps() []pipeline.Step {
	steps := make([]pipeline.Step, 0, len(o.Manifest))
	for _, entry := range o.Manifest {
		args := make([]string, 0, len(o.Args)+1)
		args = append(args, o.Args...)
		args = append(args, entry.Script())
		steps = append(steps, pipeline.Step{
			Label:       entry.Source,
			Source:      filepath.Join(o.WorkingDir, entry.Script()),
			Destination: filepath.Join(o.DestDir, entry.Output),
			Invocation: toolexec.Invocation{
				Binary: o.Assembler,
				Args:   args,
				Dir:    o.WorkingDir,
			},
		})
	}
	return steps
}

// Run assembles every stale manifest entry in order. A failing entry ends the
// run with its status and leaves the working directory untouched. After a
// successful pass the cleanup files are removed; removal problems are logged
// and do not change the result.
func Run(ctx context.Context, opts Options) pipeline.Result {
	logger := logging.NewComponentLogger(opts.Logger, "assemble")
	runner := pipeline.Runner{Executor: opts.Executor, Logger: logger, Observer: opts.Observer}

	result := runner.Execute(ctx, opts.Steps())
	if !result.OK() {
		return result
	}

	ctxLogger := logging.WithContext(ctx, logger)
	for _, name := range opts.CleanupFiles {
		path := filepath.Join(opts.WorkingDir, name)
		removed, err := fileutil.RemoveIfPresent(path)
		if err != nil {
			ctxLogger.Warn("cleanup failed",
				logging.String(logging.FieldEventType, "cleanup_failed"),
				logging.String("path", path),
				logging.Error(err),
			)
			continue
		}
		if removed {
			ctxLogger.Debug("removed assembler byproduct", logging.String("path", path))
		}
	}
	return result
}

// PlannedEntry is a manifest entry with its current freshness verdict.
type PlannedEntry struct {
	Entry
	ScriptPath string
	OutputPath string
	Stale      bool
	Reason     string
}

// Plan reports what Run would do without invoking the assembler.
func Plan(workingDir, destDir string, manifest Manifest) []PlannedEntry {
	planned := make([]PlannedEntry, 0, len(manifest))
	for _, entry := range manifest {
		verdict := staleness.Check(filepath.Join(workingDir, entry.Script()), filepath.Join(destDir, entry.Output))
		planned = append(planned, PlannedEntry{
			Entry:      entry,
			ScriptPath: verdict.Source.Path,
			OutputPath: verdict.Destination.Path,
			Stale:      verdict.Stale,
			Reason:     verdict.Reason,
		})
	}
	return planned
}
