package driver

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"spacebuild/internal/config"
	"spacebuild/internal/deps"
	"spacebuild/internal/fileutil"
	"spacebuild/internal/history"
	"spacebuild/internal/logging"
	"spacebuild/internal/pipeline"
	"spacebuild/internal/services"
	"spacebuild/internal/toolexec"
)

// Locator resolves a logical tool name under a tools directory.
type Locator func(root, logicalName string) (string, error)

// Driver runs pipelines for one configuration.
type Driver struct {
	cfg      *config.Config
	executor toolexec.Executor
	base     *slog.Logger // handed to the pipelines, which add their own component
	logger   *slog.Logger
	locate   Locator
	store    *history.Store
	lockPath string
}

// Option customizes a Driver.
type Option func(*Driver)

// WithExecutor overrides the process executor.
func WithExecutor(executor toolexec.Executor) Option {
	return func(d *Driver) {
		if executor != nil {
			d.executor = executor
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.base = logger
		}
	}
}

// WithLocator overrides how converter tools are resolved.
func WithLocator(locate Locator) Option {
	return func(d *Driver) {
		if locate != nil {
			d.locate = locate
		}
	}
}

// WithHistory records every run in store.
func WithHistory(store *history.Store) Option {
	return func(d *Driver) {
		d.store = store
	}
}

// WithLockPath overrides the run lock location. An empty path disables
// locking.
func WithLockPath(path string) Option {
	return func(d *Driver) {
		d.lockPath = path
	}
}

// New constructs a driver for cfg.
func New(cfg *config.Config, opts ...Option) (*Driver, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "driver", "new", "config is required", nil)
	}
	d := &Driver{
		cfg:      cfg,
		executor: toolexec.CommandExecutor{},
		base:     logging.NewNop(),
		locate:   deps.Locate,
		lockPath: cfg.LockPath(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.NewComponentLogger(d.base, "driver")
	return d, nil
}

// Config returns the driver's configuration.
func (d *Driver) Config() *config.Config {
	return d.cfg
}

// Layout names the two working directories of a project.
type Layout struct {
	AssetsDir string
	SourceDir string
}

// LayoutFromConfig returns the working directories configured in cfg.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{AssetsDir: cfg.AssetsWorkingDir(), SourceDir: cfg.SourceWorkingDir()}
}

// Prebuild converts every media set under workingDir into the project's
// output directory.
func (d *Driver) Prebuild(ctx context.Context, workingDir string) pipeline.Result {
	return d.guard(ctx, "prebuild", projectRoot(workingDir), func(ctx context.Context, observer pipeline.Observer) pipeline.Result {
		return d.prebuild(ctx, workingDir, observer)
	})
}

// Build assembles the manifest scripts in workingDir into the project's
// output directory.
func (d *Driver) Build(ctx context.Context, workingDir string) pipeline.Result {
	return d.guard(ctx, "build", projectRoot(workingDir), func(ctx context.Context, observer pipeline.Observer) pipeline.Result {
		return d.build(ctx, workingDir, observer)
	})
}

// All runs Prebuild then Build under a single lock and run ID. A failed
// prebuild skips the build.
func (d *Driver) All(ctx context.Context, layout Layout) pipeline.Result {
	return d.guard(ctx, "all", projectRoot(layout.AssetsDir), func(ctx context.Context, observer pipeline.Observer) pipeline.Result {
		result := d.prebuild(ctx, layout.AssetsDir, observer)
		if !result.OK() {
			return result
		}
		return result.Then(d.build(ctx, layout.SourceDir, observer))
	})
}

func projectRoot(workingDir string) string {
	return filepath.Dir(filepath.Clean(workingDir))
}

type runFunc func(ctx context.Context, observer pipeline.Observer) pipeline.Result

// guard wraps a run with the state lock, a run ID, logging, and history.
func (d *Driver) guard(ctx context.Context, command, root string, fn runFunc) pipeline.Result {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, d.logger)

	unlock, err := d.acquire()
	if err != nil {
		logger.Error("run not started", logging.String("command", command), logging.Error(err))
		return pipeline.Failure(pipeline.StatusSetupFailure, err)
	}
	defer unlock()

	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("command", command),
		logging.String("project_root", root),
	)
	started := time.Now()

	var observer pipeline.Observer
	if d.store != nil {
		if err := d.store.BeginRun(ctx, history.Run{ID: runID, Command: command, ProjectRoot: root, StartedAt: started}); err != nil {
			logger.Warn("history run not recorded", logging.String(logging.FieldEventType, "history_write_failed"), logging.Error(err))
		} else {
			observer = history.Recorder{Store: d.store, RunID: runID, Logger: d.logger}
		}
	}

	result := fn(ctx, observer)

	elapsed := time.Since(started)
	if result.OK() {
		logger.Info("run finished",
			logging.String(logging.FieldEventType, "run_complete"),
			logging.String("command", command),
			logging.Int("rebuilt", result.Invoked),
			logging.Int("up_to_date", result.Skipped),
			logging.Duration("elapsed", elapsed),
		)
	} else {
		details := services.Details(result.Err)
		logger.Error("run failed",
			logging.String(logging.FieldEventType, "run_failed"),
			logging.String("command", command),
			logging.Int("status", result.Status),
			logging.String("error_kind", details.Kind),
			logging.Duration("elapsed", elapsed),
			logging.Error(result.Err),
		)
	}

	if observer != nil {
		details := services.Details(result.Err)
		outcome := history.Outcome{
			Status:       result.Status,
			Invoked:      result.Invoked,
			Skipped:      result.Skipped,
			ErrorKind:    details.Kind,
			ErrorMessage: details.Message,
		}
		if err := d.store.FinishRun(context.WithoutCancel(ctx), runID, outcome); err != nil {
			logger.Warn("history run not finalized", logging.String(logging.FieldEventType, "history_write_failed"), logging.Error(err))
		}
	}
	return result
}

// acquire takes the run lock, returning the function that releases it.
func (d *Driver) acquire() (func(), error) {
	if d.lockPath == "" {
		return func() {}, nil
	}
	if err := fileutil.EnsureDir(filepath.Dir(d.lockPath)); err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "driver", "lock", "", err)
	}
	lock := flock.New(d.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "driver", "lock", d.lockPath, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, "driver", "lock", "another spacebuild run holds "+d.lockPath, nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			d.logger.Warn("failed to release run lock", logging.String("lock", d.lockPath), logging.Error(err))
		}
	}, nil
}

// IsLocked reports whether err came from a held run lock.
func IsLocked(err error) bool {
	return errors.Is(err, services.ErrLocked)
}
