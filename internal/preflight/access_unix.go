//go:build unix

package preflight

import "golang.org/x/sys/unix"

type accessMode uint32

const (
	accessRead      accessMode = unix.R_OK | unix.X_OK
	accessReadWrite accessMode = unix.R_OK | unix.W_OK | unix.X_OK
)

func access(path string, mode accessMode) error {
	return unix.Access(path, uint32(mode))
}
