package testsupport

import (
	"path/filepath"
	"testing"

	"spacebuild/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a fresh temp project with per-test
// state and log directories. The project tree itself is not created; use
// NewProject for that.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ProjectRoot = filepath.Join(base, "project")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Build.Entries = config.DefaultBuildEntries()
	cfgVal.History.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithHistory enables the run history database.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// WithMediaSets overrides the prebuild media sets.
func WithMediaSets(sets ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Prebuild.MediaSets = sets
	}
}

// WithBuildEntries overrides the assembler manifest.
func WithBuildEntries(entries ...config.BuildEntry) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Build.Entries = entries
	}
}

// NewProject creates the project directory tree for cfg: the assets dir with
// every media set, the source dir, and the tools dir.
func NewProject(t testing.TB, cfg *config.Config) {
	t.Helper()
	root := cfg.Paths.ProjectRoot
	dirs := []string{cfg.SourceWorkingDir(), cfg.ToolsDirFor(root)}
	for _, set := range cfg.Prebuild.MediaSets {
		dirs = append(dirs, filepath.Join(cfg.AssetsWorkingDir(), set))
	}
	for _, dir := range dirs {
		MkdirAll(t, dir)
	}
}
