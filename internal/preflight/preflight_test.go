package preflight

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"spacebuild/internal/deps"
	"spacebuild/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryReadable(t *testing.T) {
	result := CheckDirectoryReadable("media", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckTools(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools")
	}
	dir := t.TempDir()
	tool := filepath.Join(dir, "packsoundlnx")
	testsupport.WriteScript(t, tool, "exit 0\n")

	results := CheckTools([]deps.Requirement{
		{Name: "Sound converter", Command: tool},
		{Name: "Video converter", Command: filepath.Join(dir, "packvideolnx")},
		{Name: "Assembler", Command: "definitely-not-installed-spacebuild"},
	})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Passed || results[0].Detail != tool {
		t.Fatalf("expected sound converter to pass, got %+v", results[0])
	}
	if results[1].Passed {
		t.Fatalf("expected missing video converter to fail, got %+v", results[1])
	}
	if results[2].Passed || results[2].Detail != `binary "definitely-not-installed-spacebuild" not found` {
		t.Fatalf("expected missing assembler to fail, got %+v", results[2])
	}
	if failed := Failed(results); len(failed) != 2 || failed[0].Name != "Video converter" || failed[1].Name != "Assembler" {
		t.Fatalf("unexpected failures %+v", failed)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ProjectTree(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.NewProject(t, cfg)
	testsupport.MkdirAll(t, cfg.Paths.StateDir)

	results := RunAll(cfg)
	// assets, two media sets, source, output parent, state
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if results[4].Name != "Output directory (parent)" {
		t.Fatalf("missing output dir should check its parent, got %q", results[4].Name)
	}
}

func TestRunAll_MissingMediaSet(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMediaSets("movie"))
	testsupport.NewProject(t, cfg)
	if err := os.RemoveAll(filepath.Join(cfg.AssetsWorkingDir(), "movie")); err != nil {
		t.Fatal(err)
	}
	failed := Failed(RunAll(cfg))
	if len(failed) == 0 || failed[0].Name != "Media set movie" {
		t.Fatalf("expected media set failure, got %+v", failed)
	}
}
