// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mergeplan - Cherry-pick decision and batch planning reports for downstream forks.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package drift compares freshly rendered plan documents with the copies on disk.
package drift

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bartekus/mergeplan/internal/report"
)

// VolatileLabels are line prefixes whose content changes on every run.
var VolatileLabels = []string{report.LastUpdatedLabel, report.GeneratedLabel}

// Result describes one drifted document. Stale marks a playbook on disk that is
// no longer generated.
type Result struct {
	Name    string
	Missing bool
	Stale   bool
	Diff    string
}

func (r Result) String() string {
	switch {
	case r.Missing:
		return fmt.Sprintf("%s: missing", r.Name)
	case r.Stale:
		return fmt.Sprintf("%s: stale", r.Name)
	}
	return fmt.Sprintf("%s:\n%s", r.Name, r.Diff)
}

// Normalize drops lines starting with any of the volatile labels and trailing
// whitespace, so that two renders of the same plan at different times compare equal.
func Normalize(content string, volatile ...string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if hasAnyPrefix(line, volatile) {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t\r"))
	}
	return strings.Join(out, "\n")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Check compares each document with dir/<name>. Only drifted documents are returned,
// in the order given, followed by stale playbooks in name order.
func Check(dir string, docs []report.Document) ([]Result, error) {
	var drifted []Result
	for _, doc := range docs {
		path := filepath.Join(dir, doc.Name)
		data, err := os.ReadFile(path) //nolint:gosec // path built from plan dir and generated names
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				drifted = append(drifted, Result{Name: doc.Name, Missing: true})
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		onDisk := Normalize(string(data), VolatileLabels...)
		rendered := Normalize(doc.Content, VolatileLabels...)
		if onDisk == rendered {
			continue
		}
		drifted = append(drifted, Result{Name: doc.Name, Diff: Diff(onDisk, rendered)})
	}

	stale, err := report.StalePlaybooks(dir, docs)
	if err != nil {
		return nil, err
	}
	for _, name := range stale {
		drifted = append(drifted, Result{Name: name, Stale: true})
	}
	return drifted, nil
}

// Diff renders a line diff from old to new. Unchanged lines are omitted; removed
// lines are prefixed with "-" and added lines with "+".
func Diff(old, new string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out strings.Builder
	for _, d := range diffs {
		var marker string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			marker = "-"
		case diffmatchpatch.DiffInsert:
			marker = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(marker)
			out.WriteString(strings.TrimSuffix(line, "\n"))
			out.WriteString("\n")
		}
	}
	return out.String()
}
