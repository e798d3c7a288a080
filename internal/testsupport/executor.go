package testsupport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"spacebuild/internal/services"
	"spacebuild/internal/toolexec"
)

// FakeExecutor records invocations instead of starting processes.
//
// Statuses maps the base name of any argument (for example "a.wav" or
// "icon.a65") to the exit status the call returns. Produces maps the same
// keys to a file that a successful call creates, mimicking the tool writing
// its output. When TouchLastArg is set, a successful call also creates the
// file named by its last argument.
type FakeExecutor struct {
	Statuses     map[string]int
	Produces     map[string]string
	TouchLastArg bool

	mu    sync.Mutex
	calls []toolexec.Invocation
}

// Run implements toolexec.Executor.
func (f *FakeExecutor) Run(_ context.Context, inv toolexec.Invocation) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, inv)
	f.mu.Unlock()

	for _, arg := range inv.Args {
		if status, ok := f.Statuses[filepath.Base(arg)]; ok && status != 0 {
			return status, services.Wrap(services.ErrInvocation, "fake", filepath.Base(inv.Binary),
				fmt.Sprintf("exit status %d", status), nil)
		}
	}

	var outputs []string
	for _, arg := range inv.Args {
		if out, ok := f.Produces[filepath.Base(arg)]; ok {
			outputs = append(outputs, out)
		}
	}
	if f.TouchLastArg && len(inv.Args) > 0 {
		outputs = append(outputs, inv.Args[len(inv.Args)-1])
	}
	for _, out := range outputs {
		if err := touch(out); err != nil {
			return toolexec.StatusLaunchFailure, err
		}
	}
	return 0, nil
}

// Calls returns a copy of the recorded invocations.
func (f *FakeExecutor) Calls() []toolexec.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]toolexec.Invocation(nil), f.calls...)
}

// Reset forgets recorded invocations.
func (f *FakeExecutor) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte("built"), 0o644); err != nil {
		return err
	}
	now := time.Now()
	return os.Chtimes(path, now, now)
}
