// Package filex holds filesystem helpers for local data files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will contain path, so a
// database file can be opened at a location that does not exist yet.
// Paths without a directory component are left alone.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(filepath.Clean(path))
	if dir == "." {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
