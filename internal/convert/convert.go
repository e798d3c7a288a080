// Package convert turns the raw media of one media set into platform data by
// running the sound and video converters over every stale file.
package convert

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"spacebuild/internal/fileutil"
	"spacebuild/internal/logging"
	"spacebuild/internal/pipeline"
	"spacebuild/internal/services"
	"spacebuild/internal/staleness"
	"spacebuild/internal/toolexec"
)

// Kind classifies a source file by extension.
type Kind string

const (
	KindAudio        Kind = "audio"
	KindVideo        Kind = "video"
	KindUnrecognized Kind = "unrecognized"
)

var kindsByExtension = map[string]Kind{
	".wav": KindAudio,
	".gif": KindVideo,
}

// Classify returns the kind of a directory entry name. Matching is
// case-insensitive and looks at the name only.
func Classify(name string) Kind {
	if kind, ok := kindsByExtension[strings.ToLower(filepath.Ext(name))]; ok {
		return kind
	}
	return KindUnrecognized
}

// Tool is a resolved converter executable and its mode flag.
type Tool struct {
	Path string
	Flag string
}

// Tools holds the converter used for each recognized kind.
type Tools map[Kind]Tool

// Item is a classified source paired with the destination it produces.
type Item struct {
	Name        string
	Kind        Kind
	Source      string
	Destination string
}

// Destination derives the output path for a source name: the name with its
// extension dropped, under destDir.
func Destination(destDir, name string) string {
	return filepath.Join(destDir, strings.TrimSuffix(name, filepath.Ext(name)))
}

// Items lists sourceDir and returns the recognized entries in name order.
// Subdirectories are classified by name like files; unrecognized entries are
// dropped.
func Items(sourceDir, destDir string) ([]Item, error) {
	names, err := fileutil.ListDir(sourceDir)
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "convert", "list", sourceDir, err)
	}
	items := make([]Item, 0, len(names))
	for _, name := range names {
		kind := Classify(name)
		if kind == KindUnrecognized {
			continue
		}
		items = append(items, Item{
			Name:        name,
			Kind:        kind,
			Source:      filepath.Join(sourceDir, name),
			Destination: Destination(destDir, name),
		})
	}
	return items, nil
}

// Options configures a conversion run over one media set.
type Options struct {
	Tools     Tools
	SourceDir string
	DestDir   string
	Executor  toolexec.Executor
	Logger    *slog.Logger
	Observer  pipeline.Observer
}

// Run converts every stale item in SourceDir, invoking
// "<tool> <flag> <source> <destination>" with SourceDir as the working
// directory. It stops at the first failing tool and returns its status.
func Run(ctx context.Context, opts Options) pipeline.Result {
	logger := logging.NewComponentLogger(opts.Logger, "convert")

	items, err := Items(opts.SourceDir, opts.DestDir)
	if err != nil {
		logging.WithContext(ctx, logger).Error("cannot list media set",
			logging.String("source_dir", opts.SourceDir), logging.Error(err))
		return pipeline.Failure(pipeline.StatusSetupFailure, err)
	}

	steps := make([]pipeline.Step, 0, len(items))
	for _, item := range items {
		tool, ok := opts.Tools[item.Kind]
		if !ok {
			err := services.Wrap(services.ErrToolNotFound, "convert", item.Name, "no converter for "+string(item.Kind), nil)
			return pipeline.Failure(pipeline.StatusSetupFailure, err)
		}
		steps = append(steps, pipeline.Step{
			Label:       item.Name,
			Source:      item.Source,
			Destination: item.Destination,
			Invocation: toolexec.Invocation{
				Binary: tool.Path,
				Args:   []string{tool.Flag, item.Source, item.Destination},
				Dir:    opts.SourceDir,
			},
		})
	}

	runner := pipeline.Runner{Executor: opts.Executor, Logger: logger, Observer: opts.Observer}
	return runner.Execute(ctx, steps)
}

// PlannedItem is an item with its current freshness verdict.
type PlannedItem struct {
	Item
	Stale  bool
	Reason string
}

// Plan reports what Run would do without invoking any tool.
func Plan(sourceDir, destDir string) ([]PlannedItem, error) {
	items, err := Items(sourceDir, destDir)
	if err != nil {
		return nil, err
	}
	planned := make([]PlannedItem, 0, len(items))
	for _, item := range items {
		verdict := staleness.Check(item.Source, item.Destination)
		planned = append(planned, PlannedItem{Item: item, Stale: verdict.Stale, Reason: verdict.Reason})
	}
	return planned, nil
}
