package deps

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"spacebuild/internal/services"
)

// Locate maps a logical tool name to the executable built for the host
// platform and joins it under root. The file is not checked for existence: a
// missing tool surfaces when it is invoked.
func Locate(root, logicalName string) (string, error) {
	return LocateFor(runtime.GOOS, runtime.GOARCH, root, logicalName)
}

// LocateFor is Locate for an explicit platform.
func LocateFor(goos, goarch, root, logicalName string) (string, error) {
	name := strings.TrimSpace(logicalName)
	if name == "" {
		return "", services.Wrap(services.ErrToolNotFound, "locate", "", "empty tool name", nil)
	}
	filename, ok := platformExecutable(goos, goarch, name)
	if !ok {
		return "", services.Wrap(services.ErrToolNotFound, "locate", name,
			fmt.Sprintf("no executable convention for %s/%s", goos, goarch), nil)
	}
	return filepath.Join(root, filename), nil
}

// platformExecutable applies the tools/bin naming convention: Windows builds
// carry a bitness suffix, macOS builds are universal ("fat") binaries, and
// Linux builds end in "lnx".
func platformExecutable(goos, goarch, name string) (string, bool) {
	switch goos {
	case "windows":
		switch goarch {
		case "amd64", "arm64":
			return name + "w64.exe", true
		case "386":
			return name + "w32.exe", true
		}
		return "", false
	case "darwin":
		return name + "fat", true
	case "linux":
		return name + "lnx", true
	default:
		return "", false
	}
}
