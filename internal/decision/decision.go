// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mergeplan - Cherry-pick decision and batch planning reports for downstream forks.
It classifies upstream commits, groups the actionable ones into batches and generates deterministic Markdown planning artifacts.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package decision holds the curated override table and the commit classifier.
package decision

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/mergeplan/internal/inventory"
)

// Decision is the outcome for one upstream commit.
type Decision string

const (
	Pick        Decision = "PICK"
	Skip        Decision = "SKIP"
	Reimplement Decision = "REIMPLEMENT"
)

// ParseDecision parses a decision name case-insensitively.
func ParseDecision(s string) (Decision, error) {
	switch Decision(strings.ToUpper(strings.TrimSpace(s))) {
	case Pick:
		return Pick, nil
	case Skip:
		return Skip, nil
	case Reimplement:
		return Reimplement, nil
	default:
		return "", fmt.Errorf("unknown decision %q (must be PICK, SKIP or REIMPLEMENT)", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Decision) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseDecision(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}

// DefaultRationale is used when an override carries no rationale of its own.
func DefaultRationale(d Decision, downstream string) string {
	switch d {
	case Pick:
		return "Relevant improvement for " + downstream
	case Reimplement:
		return "Reimplement to preserve " + downstream + " divergence"
	default:
		return "Not selected for " + downstream + " (low value or conflicts)"
	}
}

// Override is a human-curated decision for one commit.
type Override struct {
	Decision  Decision `yaml:"decision"`
	Rationale string   `yaml:"rationale"`
}

// Entry is one row of the decisions file.
type Entry struct {
	Short     string   `yaml:"short"`
	Decision  Decision `yaml:"decision"`
	Rationale string   `yaml:"rationale"`
}

type tableFile struct {
	Overrides []Entry `yaml:"overrides"`
}

// Table maps short commit ids to overrides. It is immutable once built.
type Table struct {
	overrides map[string]Override
}

// NewTable builds a table, failing on a missing id, a missing decision or a duplicate id.
func NewTable(entries ...Entry) (*Table, error) {
	overrides := make(map[string]Override, len(entries))
	firstSeen := make(map[string]int, len(entries))

	for i, e := range entries {
		if e.Short == "" {
			return nil, fmt.Errorf("override at index %d missing short id", i)
		}
		if e.Decision == "" {
			return nil, fmt.Errorf("override %s missing decision", e.Short)
		}
		if prev, ok := firstSeen[e.Short]; ok {
			return nil, fmt.Errorf("duplicate override for %s at index %d (first defined at index %d)", e.Short, i, prev)
		}
		firstSeen[e.Short] = i
		overrides[e.Short] = Override{Decision: e.Decision, Rationale: e.Rationale}
	}

	return &Table{overrides: overrides}, nil
}

// ParseTable decodes a YAML decisions document.
func ParseTable(data []byte) (*Table, error) {
	var doc tableFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing decisions YAML: %w", err)
	}
	return NewTable(doc.Overrides...)
}

// LoadTable reads a YAML decisions file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the plan configuration
	if err != nil {
		return nil, fmt.Errorf("reading decisions file: %w", err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Lookup returns the override for short, if any.
func (t *Table) Lookup(short string) (Override, bool) {
	if t == nil {
		return Override{}, false
	}
	o, ok := t.overrides[short]
	return o, ok
}

// Len returns the number of overrides.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.overrides)
}

// Shorts returns the override keys sorted lexicographically.
func (t *Table) Shorts() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.overrides))
	for k := range t.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Unused returns override keys that name no commit in the inventory.
func (t *Table) Unused(commits []inventory.Commit) []string {
	present := make(map[string]struct{}, len(commits))
	for _, c := range commits {
		present[c.Short] = struct{}{}
	}
	var unused []string
	for _, k := range t.Shorts() {
		if _, ok := present[k]; !ok {
			unused = append(unused, k)
		}
	}
	return unused
}
