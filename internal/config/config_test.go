package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"spacebuild/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "spacebuild")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if !filepath.IsAbs(cfg.Paths.ProjectRoot) {
		t.Fatalf("expected absolute project root, got %q", cfg.Paths.ProjectRoot)
	}
	if got := cfg.Prebuild.MediaSets; len(got) != 2 || got[0] != "movie" || got[1] != "death" {
		t.Fatalf("unexpected media sets: %v", got)
	}
	if len(cfg.Build.Entries) != 3 {
		t.Fatalf("expected default manifest, got %v", cfg.Build.Entries)
	}
	if cfg.Build.Entries[2].Output != "SpaceAce#b3db03r" {
		t.Fatalf("unexpected resource fork output: %q", cfg.Build.Entries[2].Output)
	}
	if cfg.Tools.SoundFlag != "-s" || cfg.Tools.VideoFlag != "-v" {
		t.Fatalf("unexpected tool flags: %q %q", cfg.Tools.SoundFlag, cfg.Tools.VideoFlag)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadManifestReplacesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "spacebuild.toml")
	content := `
[paths]
project_root = "` + filepath.ToSlash(dir) + `"

[[build.entries]]
source = "game.a65"
output = "Game#b3db03"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q, got %q (exists=%v)", path, resolved, exists)
	}
	if len(cfg.Build.Entries) != 1 {
		t.Fatalf("expected single manifest entry, got %v", cfg.Build.Entries)
	}
	if cfg.Build.Entries[0].Source != "game" {
		t.Fatalf("expected .a65 suffix trimmed, got %q", cfg.Build.Entries[0].Source)
	}
	if cfg.Paths.ProjectRoot != dir {
		t.Fatalf("unexpected project root %q", cfg.Paths.ProjectRoot)
	}
	if cfg.AssetsWorkingDir() != filepath.Join(dir, "assets") {
		t.Fatalf("unexpected assets dir %q", cfg.AssetsWorkingDir())
	}
	if cfg.OutputDirFor(dir) != filepath.Join(dir, "bin") {
		t.Fatalf("unexpected output dir %q", cfg.OutputDirFor(dir))
	}
	if cfg.ToolsDirFor(dir) != filepath.Join(dir, "tools", "bin") {
		t.Fatalf("unexpected tools dir %q", cfg.ToolsDirFor(dir))
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := map[string]string{
		"nested assets dir": "[paths]\nassets_dir = \"assets/raw\"\n",
		"duplicate set":     "[prebuild]\nmedia_sets = [\"movie\", \"movie\"]\n",
		"same flags":        "[tools]\nsound_flag = \"-x\"\nvideo_flag = \"-x\"\n",
		"blank output":      "[[build.entries]]\nsource = \"icon\"\noutput = \"\"\n",
		"bad level":         "[logging]\nlevel = \"loud\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path, config.SampleOptions{}); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded map[string]any
	if err := toml.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !strings.HasPrefix(cfg.Paths.ProjectRoot, home) {
		t.Fatalf("expected project root under HOME, got %q", cfg.Paths.ProjectRoot)
	}
	if len(cfg.Build.Entries) != 3 {
		t.Fatalf("expected sample manifest to keep three entries, got %d", len(cfg.Build.Entries))
	}
}

func TestCreateSampleSeedsProjectRoot(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := filepath.Join(t.TempDir(), "space ace")
	path := filepath.Join(project, config.ProjectConfigName)
	if err := config.CreateSample(path, config.SampleOptions{ProjectRoot: project}); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.ProjectRoot != project {
		t.Fatalf("expected project root %q, got %q", project, cfg.Paths.ProjectRoot)
	}

	err = config.CreateSample(path, config.SampleOptions{ProjectRoot: project})
	if !errors.Is(err, config.ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
	if err := config.CreateSample(path, config.SampleOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestSetProjectRoot(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()
	if err := cfg.SetProjectRoot(dir); err != nil {
		t.Fatalf("SetProjectRoot: %v", err)
	}
	if cfg.SourceWorkingDir() != filepath.Join(dir, "source") {
		t.Fatalf("unexpected source dir %q", cfg.SourceWorkingDir())
	}
}
