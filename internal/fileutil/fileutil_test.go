package fileutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEnsureDirIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bin", "nested")
	for i := 0; i < 2; i++ {
		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir pass %d: %v", i, err)
		}
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, err=%v", err)
	}
}

func TestEnsureDirFailsOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(path); err == nil {
		t.Fatal("expected error when path is a regular file")
	}
}

func TestRemoveIfPresent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "_FileInformation.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := RemoveIfPresent(path)
	if err != nil || !removed {
		t.Fatalf("expected removal, got removed=%v err=%v", removed, err)
	}
	removed, err = RemoveIfPresent(path)
	if err != nil || removed {
		t.Fatalf("expected no-op on missing file, got removed=%v err=%v", removed, err)
	}
}

func TestListDirIncludesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.gif", "a.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	want := []string{"a.wav", "b.gif", "sub"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("ListDir = %v, want %v", names, want)
	}
	if _, err := ListDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
