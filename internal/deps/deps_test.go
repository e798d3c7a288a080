package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"spacebuild/internal/services"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank command status: %#v", results[2])
	}
}

func TestLocateForPlatforms(t *testing.T) {
	root := filepath.Join("project", "tools", "bin")
	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"linux", "amd64", "packsoundlnx"},
		{"linux", "arm64", "packsoundlnx"},
		{"darwin", "arm64", "packsoundfat"},
		{"windows", "amd64", "packsoundw64.exe"},
		{"windows", "386", "packsoundw32.exe"},
	}
	for _, tt := range tests {
		got, err := LocateFor(tt.goos, tt.goarch, root, "packsound")
		if err != nil {
			t.Fatalf("%s/%s: unexpected error %v", tt.goos, tt.goarch, err)
		}
		if want := filepath.Join(root, tt.want); got != want {
			t.Fatalf("%s/%s: got %q want %q", tt.goos, tt.goarch, got, want)
		}
	}
}

func TestLocateForFailures(t *testing.T) {
	if _, err := LocateFor("plan9", "amd64", "root", "packvideo"); !errors.Is(err, services.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound for unsupported platform, got %v", err)
	}
	if _, err := LocateFor("windows", "mips", "root", "packvideo"); !errors.Is(err, services.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound for unsupported arch, got %v", err)
	}
	if _, err := LocateFor("linux", "amd64", "root", " "); !errors.Is(err, services.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound for empty name, got %v", err)
	}
}

func TestLocateDoesNotRequireExistence(t *testing.T) {
	root := t.TempDir()
	path, err := Locate(root, "packvideo")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("expected tool under %q, got %q", root, path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected tool to be absent, stat err=%v", err)
	}
}
