//go:build !unix

package preflight

import "os"

type accessMode uint32

const (
	accessRead accessMode = iota + 1
	accessReadWrite
)

// access can only prove readability here; write permission surfaces when a
// tool writes its output.
func access(path string, _ accessMode) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
