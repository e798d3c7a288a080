// Package watch reruns a build whenever its inputs change.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"spacebuild/internal/logging"
	"spacebuild/internal/services"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before triggering a run.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc performs one build. It is always called from the watcher's event
// loop, so calls never overlap.
type RunFunc func(ctx context.Context)

// Options configures a Watcher.
type Options struct {
	Dirs       []string
	Debounce   time.Duration
	Ignore     []string
	InitialRun bool
	Logger     *slog.Logger
}

// Watcher monitors a set of directories and triggers a RunFunc after changes.
type Watcher struct {
	opts   Options
	run    RunFunc
	ignore map[string]struct{}
	logger *slog.Logger
}

// New creates a watcher over opts.Dirs.
func New(run RunFunc, opts Options) (*Watcher, error) {
	if run == nil {
		return nil, errors.New("watch: run func is required")
	}
	if len(opts.Dirs) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "watch", "new", "no directories to watch", nil)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ignore := make(map[string]struct{}, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignore[name] = struct{}{}
	}
	return &Watcher{
		opts:   opts,
		run:    run,
		ignore: ignore,
		logger: logging.NewComponentLogger(opts.Logger, "watch"),
	}, nil
}

// Relevant reports whether event should schedule a run. Permission changes
// and ignored file names never do.
func (w *Watcher) Relevant(event fsnotify.Event) bool {
	if _, skip := w.ignore[filepath.Base(event.Name)]; skip {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "watch", "start", "", err)
	}
	defer fsWatcher.Close()

	for _, dir := range w.opts.Dirs {
		if err := fsWatcher.Add(dir); err != nil {
			return services.Wrap(services.ErrFilesystem, "watch", "add", dir, err)
		}
		w.logger.Debug("watching directory", logging.String("dir", dir))
	}
	w.logger.Info("watching for changes",
		logging.Strings("dirs", w.opts.Dirs),
		logging.Duration("debounce", w.opts.Debounce),
	)

	if w.opts.InitialRun {
		w.run(ctx)
	}

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !w.Relevant(event) {
				continue
			}
			w.logger.Debug("change detected",
				logging.String("path", event.Name),
				logging.String("op", event.Op.String()),
			)
			timer.Reset(w.opts.Debounce)

		case <-timer.C:
			if ctx.Err() != nil {
				return nil
			}
			w.run(ctx)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logging.Error(err))
		}
	}
}
