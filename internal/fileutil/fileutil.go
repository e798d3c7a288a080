package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// EnsureDir creates dir and any missing parents. An existing directory is not
// an error, including one created concurrently by another process.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// RemoveIfPresent deletes path, reporting whether a file was removed. A
// missing file is not an error.
func RemoveIfPresent(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// ListDir returns the names of the entries in dir, sorted by name. Entries are
// not filtered: subdirectories are returned alongside files.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}
