package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the project layout and per-user state locations.
type Paths struct {
	ProjectRoot string `toml:"project_root"`
	AssetsDir   string `toml:"assets_dir"`
	SourceDir   string `toml:"source_dir"`
	OutputDir   string `toml:"output_dir"`
	ToolsDir    string `toml:"tools_dir"`
	StateDir    string `toml:"state_dir"`
	LogDir      string `toml:"log_dir"`
}

// Tools names the external converters and the assembler.
type Tools struct {
	Sound         string   `toml:"sound"`
	Video         string   `toml:"video"`
	SoundFlag     string   `toml:"sound_flag"`
	VideoFlag     string   `toml:"video_flag"`
	Assembler     string   `toml:"assembler"`
	AssemblerArgs []string `toml:"assembler_args"`
	CleanupFiles  []string `toml:"cleanup_files"`
}

// Prebuild lists the media sets converted under the assets directory, in order.
type Prebuild struct {
	MediaSets []string `toml:"media_sets"`
}

// BuildEntry maps an assembler script (without the .a65 extension) to the
// output file it produces.
type BuildEntry struct {
	Source string `toml:"source"`
	Output string `toml:"output"`
}

// Build holds the assembler manifest.
type Build struct {
	Entries []BuildEntry `toml:"entries"`
}

// History controls the run history database.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for spacebuild.
//
// Configuration sections by subsystem:
//   - Paths: project layout plus state/log directories
//   - Tools: converter and assembler invocation settings
//   - Prebuild: media sets converted by the prebuild pipeline
//   - Build: assembler manifest
//   - History: SQLite run history
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Tools    Tools    `toml:"tools"`
	Prebuild Prebuild `toml:"prebuild"`
	Build    Build    `toml:"build"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// ProjectConfigName is the per-project config file Load falls back to in the
// working directory.
const ProjectConfigName = "spacebuild.toml"

// ErrConfigExists is returned by CreateSample when the target exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/spacebuild/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(ProjectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the per-user state and log directories. Project
// directories are owned by the pipelines and created on demand.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// AssetsWorkingDir returns the working directory of the prebuild pipeline.
func (c *Config) AssetsWorkingDir() string {
	return filepath.Join(c.Paths.ProjectRoot, c.Paths.AssetsDir)
}

// SourceWorkingDir returns the working directory of the assembler pipeline.
func (c *Config) SourceWorkingDir() string {
	return filepath.Join(c.Paths.ProjectRoot, c.Paths.SourceDir)
}

// OutputDirFor resolves the output directory for a project root.
func (c *Config) OutputDirFor(root string) string {
	return joinUnderRoot(root, c.Paths.OutputDir)
}

// ToolsDirFor resolves the converter tools directory for a project root.
func (c *Config) ToolsDirFor(root string) string {
	return joinUnderRoot(root, c.Paths.ToolsDir)
}

// HistoryPath returns the run history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LockPath returns the run lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "spacebuild.lock")
}

// SetProjectRoot overrides the configured project root, expanding the path.
func (c *Config) SetProjectRoot(root string) error {
	expanded, err := expandPath(strings.TrimSpace(root))
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}
	c.Paths.ProjectRoot = expanded
	return nil
}

func joinUnderRoot(root, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(root, rel)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleOptions tailors the sample written by CreateSample.
type SampleOptions struct {
	// ProjectRoot replaces the sample's placeholder project_root when set.
	ProjectRoot string
	Overwrite   bool
}

const sampleProjectRootLine = `project_root = "~/projects/spaceace"`

// CreateSample writes the sample configuration to path.
func CreateSample(path string, opts SampleOptions) error {
	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w at %s", ErrConfigExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check config path: %w", err)
		}
	}

	content := sampleConfig
	if opts.ProjectRoot != "" {
		line, err := toml.Marshal(struct {
			ProjectRoot string `toml:"project_root"`
		}{opts.ProjectRoot})
		if err != nil {
			return fmt.Errorf("encode project root: %w", err)
		}
		content = strings.Replace(content, sampleProjectRootLine, strings.TrimSpace(string(line)), 1)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
