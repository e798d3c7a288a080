package preflight

import (
	"os"
	"path/filepath"

	"spacebuild/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks every directory a full build reads or writes.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryReadable("Assets directory", cfg.AssetsWorkingDir()))
	for _, set := range cfg.Prebuild.MediaSets {
		results = append(results, CheckDirectoryReadable("Media set "+set, filepath.Join(cfg.AssetsWorkingDir(), set)))
	}
	results = append(results, CheckDirectoryReadable("Source directory", cfg.SourceWorkingDir()))

	// The output directory is created on demand, so a missing one only needs
	// a writable project root.
	outDir := cfg.OutputDirFor(cfg.Paths.ProjectRoot)
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		results = append(results, CheckDirectoryAccess("Output directory (parent)", filepath.Dir(outDir)))
	} else {
		results = append(results, CheckDirectoryAccess("Output directory", outDir))
	}

	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
