// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mergeplan - Cherry-pick decision and batch planning reports for downstream forks.
It classifies upstream commits, groups the actionable ones into batches and generates deterministic Markdown planning artifacts.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package inventory defines the upstream commit record and loads the JSON commit inventory.
package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Commit represents one upstream commit's metadata.
// Values are read once per run and never mutated.
type Commit struct {
	SHA     string   `json:"sha"`
	Short   string   `json:"short"`
	Date    string   `json:"date"`
	Subject string   `json:"subject"`
	Files   []string `json:"files"`
	Areas   []string `json:"areas"`
	IsMerge bool     `json:"is_merge"`
}

// URL returns the upstream link for the commit.
func (c Commit) URL(repository string) string {
	return strings.TrimSuffix(repository, "/") + "/commit/" + c.SHA
}

// Source provides the upstream commit inventory.
type Source interface {
	Commits() ([]Commit, error)
}

// FileSource reads the inventory from a JSON file on disk.
type FileSource struct {
	Path string
}

// Commits implements Source.
func (f FileSource) Commits() ([]Commit, error) {
	return Load(f.Path)
}

// Load reads and validates the JSON commit inventory at path.
func Load(path string) ([]Commit, error) {
	fh, err := os.Open(path) //nolint:gosec // path comes from the plan configuration
	if err != nil {
		return nil, fmt.Errorf("opening inventory: %w", err)
	}
	defer func() { _ = fh.Close() }()

	commits, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("inventory %s: %w", path, err)
	}
	return commits, nil
}

// Decode parses a JSON array of commits and validates it.
func Decode(r io.Reader) ([]Commit, error) {
	var commits []Commit
	dec := json.NewDecoder(r)
	if err := dec.Decode(&commits); err != nil {
		return nil, fmt.Errorf("decoding commits: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding commits: trailing data after array")
	}
	if err := Validate(commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// Validate checks that every commit has identifiers and that short ids are unique.
func Validate(commits []Commit) error {
	seen := make(map[string]int, len(commits))
	for i, c := range commits {
		if c.Short == "" {
			return fmt.Errorf("commit at index %d missing short id", i)
		}
		if c.SHA == "" {
			return fmt.Errorf("commit %s missing sha", c.Short)
		}
		if prev, ok := seen[c.Short]; ok {
			return fmt.Errorf("duplicate short id %s at index %d (first seen at %d)", c.Short, i, prev)
		}
		seen[c.Short] = i
	}
	return nil
}
