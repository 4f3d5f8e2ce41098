// Package worktree answers whether upstream paths exist in the local checkout.
package worktree

import (
	"os"
	"path/filepath"
	"sort"
)

// Checker reports whether a repository-relative path exists locally.
type Checker interface {
	Exists(rel string) bool
}

// Dir checks paths against a directory on disk, caching results for the instance lifetime.
type Dir struct {
	root  string
	cache map[string]bool
}

// New creates a checker rooted at root.
func New(root string) *Dir {
	return &Dir{root: root, cache: make(map[string]bool)}
}

// Root returns the directory paths are resolved against.
func (d *Dir) Root() string { return d.root }

// Exists implements Checker.
func (d *Dir) Exists(rel string) bool {
	if v, ok := d.cache[rel]; ok {
		return v
	}
	_, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(rel)))
	exists := err == nil
	d.cache[rel] = exists
	return exists
}

// Set is a fixed in-memory Checker.
type Set map[string]struct{}

// NewSet builds a Set from paths.
func NewSet(paths ...string) Set {
	s := make(Set, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Exists implements Checker.
func (s Set) Exists(rel string) bool {
	_, ok := s[rel]
	return ok
}

// Missing maps each path absent from the checkout to the commits that touch it.
// Commit lists are sorted.
func Missing(c Checker, filesByCommit map[string][]string) map[string][]string {
	missing := make(map[string][]string)
	for short, files := range filesByCommit {
		for _, f := range files {
			if !c.Exists(f) {
				missing[f] = append(missing[f], short)
			}
		}
	}
	for f := range missing {
		sort.Strings(missing[f])
	}
	return missing
}
