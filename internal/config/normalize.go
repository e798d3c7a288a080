package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizePrebuild()
	c.normalizeBuild()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ProjectRoot) == "" {
		c.Paths.ProjectRoot = defaultProjectRoot
	}
	if c.Paths.ProjectRoot, err = expandPath(strings.TrimSpace(c.Paths.ProjectRoot)); err != nil {
		return fmt.Errorf("paths.project_root: %w", err)
	}
	c.Paths.AssetsDir = cleanRelative(c.Paths.AssetsDir, defaultAssetsDir)
	c.Paths.SourceDir = cleanRelative(c.Paths.SourceDir, defaultSourceDir)
	c.Paths.OutputDir = cleanRelative(c.Paths.OutputDir, defaultOutputDir)
	c.Paths.ToolsDir = cleanRelative(c.Paths.ToolsDir, defaultToolsDir)
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func cleanRelative(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	return filepath.Clean(filepath.FromSlash(value))
}

func (c *Config) normalizeTools() {
	c.Tools.Sound = defaultIfBlank(c.Tools.Sound, defaultSoundTool)
	c.Tools.Video = defaultIfBlank(c.Tools.Video, defaultVideoTool)
	c.Tools.SoundFlag = defaultIfBlank(c.Tools.SoundFlag, defaultSoundFlag)
	c.Tools.VideoFlag = defaultIfBlank(c.Tools.VideoFlag, defaultVideoFlag)
	c.Tools.Assembler = defaultIfBlank(c.Tools.Assembler, defaultAssembler)
	c.Tools.AssemblerArgs = trimList(c.Tools.AssemblerArgs)
	c.Tools.CleanupFiles = trimList(c.Tools.CleanupFiles)
}

func (c *Config) normalizePrebuild() {
	sets := trimList(c.Prebuild.MediaSets)
	if len(sets) == 0 {
		sets = DefaultMediaSets()
	}
	c.Prebuild.MediaSets = sets
}

func (c *Config) normalizeBuild() {
	if len(c.Build.Entries) == 0 {
		c.Build.Entries = DefaultBuildEntries()
		return
	}
	for i := range c.Build.Entries {
		c.Build.Entries[i].Source = strings.TrimSuffix(strings.TrimSpace(c.Build.Entries[i].Source), ".a65")
		c.Build.Entries[i].Output = strings.TrimSpace(c.Build.Entries[i].Output)
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func defaultIfBlank(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
