package toolexec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"spacebuild/internal/services"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCommandExecutorPassesArgumentVectorAndDir(t *testing.T) {
	dir := t.TempDir()
	workDir := filepath.Join(dir, "movie")
	if err := os.Mkdir(workDir, 0o755); err != nil {
		t.Fatal(err)
	}
	tool := writeScript(t, dir, "tool", `pwd; for arg in "$@"; do echo "[$arg]"; done`)

	var stdout bytes.Buffer
	exec := CommandExecutor{Stdout: &stdout, Stderr: &stdout}
	status, err := exec.Run(context.Background(), Invocation{
		Binary: tool,
		Args:   []string{"-s", "/tmp/with space.wav", `quote"d`},
		Dir:    workDir,
	})
	if err != nil || status != 0 {
		t.Fatalf("expected success, got status=%d err=%v", status, err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("unexpected output %q", stdout.String())
	}
	if resolved, _ := filepath.EvalSymlinks(workDir); lines[0] != workDir && lines[0] != resolved {
		t.Fatalf("expected working dir %q, got %q", workDir, lines[0])
	}
	want := []string{"[-s]", "[/tmp/with space.wav]", `[quote"d]`}
	for i, w := range want {
		if lines[i+1] != w {
			t.Fatalf("arg %d: got %q want %q", i, lines[i+1], w)
		}
	}
}

func TestCommandExecutorReportsExitStatus(t *testing.T) {
	tool := writeScript(t, t.TempDir(), "fail", "exit 2\n")
	status, err := CommandExecutor{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}.Run(context.Background(), Invocation{Binary: tool})
	if status != 2 {
		t.Fatalf("expected status 2, got %d", status)
	}
	if !errors.Is(err, services.ErrInvocation) {
		t.Fatalf("expected invocation error, got %v", err)
	}
}

func TestCommandExecutorLaunchFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "packsoundlnx")
	status, err := CommandExecutor{}.Run(context.Background(), Invocation{Binary: missing})
	if status != StatusLaunchFailure {
		t.Fatalf("expected launch failure status, got %d", status)
	}
	if !errors.Is(err, services.ErrInvocation) {
		t.Fatalf("expected invocation error, got %v", err)
	}
}

func TestInvocationString(t *testing.T) {
	inv := Invocation{Binary: "a65816", Args: []string{".", "icon.a65"}}
	if got := inv.String(); got != "a65816 . icon.a65" {
		t.Fatalf("unexpected rendering %q", got)
	}
	inv = Invocation{Binary: "packsound", Args: []string{"-s", "a b.wav", "SpaceAce#b3db03"}}
	if got := inv.String(); got != `packsound -s "a b.wav" "SpaceAce#b3db03"` {
		t.Fatalf("unexpected rendering %q", got)
	}
}
