// Package projectroot locates the repository root that generated paths are relative to.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no repository marker exists above the start directory.
var ErrNotFound = errors.New("repository root not found")

// Find walks up from start until it finds a directory containing .git.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w from %s", ErrNotFound, start)
		}
		dir = parent
	}
}
