// Package staleness decides whether a build output must be regenerated from
// its source by comparing filesystem modification times.
package staleness

import (
	"os"
	"time"
)

// Artifact is a snapshot of a source or destination file's metadata.
type Artifact struct {
	Path    string
	ModTime time.Time
	Exists  bool
}

// Inspect stats path. A path that cannot be stat'ed is reported as missing.
func Inspect(path string) Artifact {
	info, err := os.Stat(path)
	if err != nil {
		return Artifact{Path: path}
	}
	return Artifact{Path: path, ModTime: info.ModTime(), Exists: true}
}

// FreshAgainst reports whether a destination artifact is up to date with
// source: it must exist and must not be older than the source.
func (a Artifact) FreshAgainst(source Artifact) bool {
	if !a.Exists || !source.Exists {
		return false
	}
	return !a.ModTime.Before(source.ModTime)
}

// Verdict is the freshness decision for one source/destination pair.
type Verdict struct {
	Source      Artifact
	Destination Artifact
	Stale       bool
	Reason      string
}

// Check inspects both paths and decides whether destination must be rebuilt.
// Sources are expected to exist; an unreadable source is treated as stale so
// the tool runs and reports the problem itself.
func Check(source, destination string) Verdict {
	src := Inspect(source)
	dst := Inspect(destination)
	return Verdict{
		Source:      src,
		Destination: dst,
		Stale:       !dst.FreshAgainst(src),
		Reason:      Reason(src, dst),
	}
}

// IsStale reports whether destination must be (re)produced from source.
func IsStale(source, destination string) bool {
	return Check(source, destination).Stale
}

// Reason describes the verdict for logging.
func Reason(source, destination Artifact) string {
	switch {
	case !source.Exists:
		return "source missing"
	case !destination.Exists:
		return "destination missing"
	case destination.ModTime.Before(source.ModTime):
		return "source newer than destination"
	default:
		return "destination up to date"
	}
}
