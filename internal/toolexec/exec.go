// Package toolexec runs external build tools synchronously and reports their
// exit status.
package toolexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"spacebuild/internal/services"
)

// StatusLaunchFailure is reported when a tool cannot be started at all. It
// matches the shell's "command not found" status.
const StatusLaunchFailure = 127

// Invocation is a single tool call expressed as an argument vector.
type Invocation struct {
	Binary string
	Args   []string
	Dir    string
}

// String renders the invocation for logs. It is not meant to be re-parsed.
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, quote(i.Binary))
	for _, arg := range i.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'#") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Executor abstracts command execution for testability. Run blocks until the
// tool exits and returns its exit status; a non-zero status is accompanied by
// an error wrapping services.ErrInvocation.
type Executor interface {
	Run(ctx context.Context, inv Invocation) (int, error)
}

// CommandExecutor runs tools as child processes, streaming their output to
// Stdout and Stderr (the terminal when nil).
type CommandExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes inv and waits for it to finish.
func (e CommandExecutor) Run(ctx context.Context, inv Invocation) (int, error) {
	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...) //nolint:gosec
	cmd.Dir = inv.Dir
	cmd.Stdout = writerOr(e.Stdout, os.Stdout)
	cmd.Stderr = writerOr(e.Stderr, os.Stderr)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status := exitErr.ExitCode()
		if status <= 0 {
			// Killed by a signal.
			status = 1
		}
		return status, services.Wrap(services.ErrInvocation, "toolexec", inv.Binary,
			fmt.Sprintf("exit status %d", status), nil)
	}
	return StatusLaunchFailure, services.Wrap(services.ErrInvocation, "toolexec", inv.Binary, "launch failed", err)
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
