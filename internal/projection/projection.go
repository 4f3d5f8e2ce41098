// SPDX-License-Identifier: AGPL-3.0-or-later
package projection

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// AtomicWrite writes content to path atomically by writing to a temp file and renaming it.
func AtomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, "mergeplan-tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("moving temp file to %s: %w", path, err)
	}

	return nil
}

// SortedKeys returns the keys of a string-keyed map sorted lexicographically.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Align is a Markdown table column alignment.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
)

// Column is a table header with its alignment.
type Column struct {
	Title string
	Align Align
}

// RenderTable renders a Markdown table.
// It assumes rows are already sorted if determinism is required.
func RenderTable(headers []string, rows [][]string) string {
	var b strings.Builder

	// Header
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	// Separator
	b.WriteString("|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	// Rows
	for _, row := range rows {
		b.WriteString(renderRow(row))
	}

	return b.String()
}

// RenderAlignedTable renders a Markdown table with per-column alignment markers.
func RenderAlignedTable(columns []Column, rows [][]string) string {
	var b strings.Builder

	titles := make([]string, 0, len(columns))
	for _, c := range columns {
		titles = append(titles, c.Title)
	}
	b.WriteString("| " + strings.Join(titles, " | ") + " |\n")

	b.WriteString("|")
	for _, c := range columns {
		switch c.Align {
		case AlignLeft:
			b.WriteString(":---|")
		case AlignRight:
			b.WriteString("---:|")
		default:
			b.WriteString("---|")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString(renderRow(row))
	}

	return b.String()
}

func renderRow(row []string) string {
	return "| " + strings.Join(row, " | ") + " |\n"
}

// RenderList renders a simple unordered Markdown list.
func RenderList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s\n", item))
	}
	return b.String()
}

// RenderHeader renders a Markdown header.
func RenderHeader(level int, text string) string {
	return fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), text)
}

// EscapeCell makes text safe inside a table cell.
func EscapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Code wraps text in an inline code span.
func Code(s string) string {
	return "`" + s + "`"
}

// Link renders an inline Markdown link.
func Link(text, url string) string {
	return fmt.Sprintf("[%s](%s)", text, url)
}
