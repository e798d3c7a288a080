package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validatePrebuild(); err != nil {
		return err
	}
	if err := c.validateBuild(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.ProjectRoot) == "" {
		return errors.New("paths.project_root must be set")
	}
	// The pipelines derive the project root from the parent of their working
	// directory, so both working directories must sit directly under it.
	for key, value := range map[string]string{
		"paths.assets_dir": c.Paths.AssetsDir,
		"paths.source_dir": c.Paths.SourceDir,
	} {
		if !isSingleElement(value) {
			return fmt.Errorf("%s must name a direct child of the project root, got %q", key, value)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ToolsDir) == "" {
		return errors.New("paths.tools_dir must be set")
	}
	return nil
}

func (c *Config) validateTools() error {
	for key, value := range map[string]string{
		"tools.sound":      c.Tools.Sound,
		"tools.video":      c.Tools.Video,
		"tools.sound_flag": c.Tools.SoundFlag,
		"tools.video_flag": c.Tools.VideoFlag,
		"tools.assembler":  c.Tools.Assembler,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	if c.Tools.SoundFlag == c.Tools.VideoFlag {
		return errors.New("tools.sound_flag and tools.video_flag must differ")
	}
	for _, name := range c.Tools.CleanupFiles {
		if !isSingleElement(name) {
			return fmt.Errorf("tools.cleanup_files entry %q must be a plain file name", name)
		}
	}
	return nil
}

func (c *Config) validatePrebuild() error {
	if len(c.Prebuild.MediaSets) == 0 {
		return errors.New("prebuild.media_sets must include at least one directory")
	}
	seen := make(map[string]struct{}, len(c.Prebuild.MediaSets))
	for _, set := range c.Prebuild.MediaSets {
		if !isSingleElement(set) {
			return fmt.Errorf("prebuild.media_sets entry %q must be a plain directory name", set)
		}
		if _, ok := seen[set]; ok {
			return fmt.Errorf("prebuild.media_sets entry %q is listed twice", set)
		}
		seen[set] = struct{}{}
	}
	return nil
}

func (c *Config) validateBuild() error {
	if len(c.Build.Entries) == 0 {
		return errors.New("build.entries must include at least one entry")
	}
	for i, entry := range c.Build.Entries {
		if entry.Source == "" {
			return fmt.Errorf("build.entries[%d].source must be set", i)
		}
		if entry.Output == "" {
			return fmt.Errorf("build.entries[%d].output must be set", i)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func isSingleElement(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || value == "." || value == ".." {
		return false
	}
	return !strings.ContainsAny(value, `/\`) && filepath.Base(value) == value
}
