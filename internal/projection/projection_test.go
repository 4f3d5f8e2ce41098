// SPDX-License-Identifier: AGPL-3.0-or-later
package projection

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "file.txt")
	content := []byte("hello world")

	if err := AtomicWrite(target, content); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(got) != string(content) {
		t.Errorf("got %q, want %q", got, content)
	}
}

func TestAtomicWrite_Overwrites(t *testing.T) {
	target := filepath.Join(t.TempDir(), "file.md")
	if err := AtomicWrite(target, []byte("a much longer first version")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := AtomicWrite(target, []byte("short")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "short" {
		t.Errorf("got %q, want %q", got, "short")
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, found %d entries", len(entries))
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	keys := SortedKeys(m)
	if len(keys) != 3 {
		t.Fatalf("got %d keys, want 3", len(keys))
	}
	if keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("got %v, want [a b c]", keys)
	}
}

func TestRenderTable(t *testing.T) {
	got := RenderTable([]string{"A", "B"}, [][]string{{"1", "2"}})
	want := "| A | B |\n| --- | --- |\n| 1 | 2 |\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAlignedTable(t *testing.T) {
	got := RenderAlignedTable(
		[]Column{{Title: "#", Align: AlignRight}, {Title: "Commit", Align: AlignLeft}, {Title: "Notes"}},
		[][]string{{"1", "abc", ""}},
	)
	want := "| # | Commit | Notes |\n|---:|:---|---|\n| 1 | abc |  |\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEscapeCell(t *testing.T) {
	if got := EscapeCell("a | b"); got != `a \| b` {
		t.Errorf("got %q", got)
	}
}

func TestRenderHelpers(t *testing.T) {
	if got := RenderHeader(2, "Notes"); got != "## Notes\n\n" {
		t.Errorf("RenderHeader got %q", got)
	}
	if got := RenderList([]string{"a", "b"}); got != "- a\n- b\n" {
		t.Errorf("RenderList got %q", got)
	}
	if got := Link(Code("abc"), "https://x/commit/abc"); got != "[`abc`](https://x/commit/abc)" {
		t.Errorf("Link got %q", got)
	}
}
