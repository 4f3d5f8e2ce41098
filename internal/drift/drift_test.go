// SPDX-License-Identifier: AGPL-3.0-or-later

package drift

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/mergeplan/internal/report"
)

func TestNormalize_DropsVolatileLines(t *testing.T) {
	a := "# Notes\n- Generated: `2026-01-04 09:30`\nbody  \n"
	b := "# Notes\n- Generated: `2026-02-01 17:00`\nbody\n"
	assert.Equal(t, Normalize(a, VolatileLabels...), Normalize(b, VolatileLabels...))
	assert.Equal(t, "# Notes\nbody\n", Normalize(a, VolatileLabels...))
}

func TestNormalize_NoLabelsKeepsContent(t *testing.T) {
	in := "| **Last Updated** | today |\n"
	assert.Equal(t, in, Normalize(in))
}

func TestDiff_MarksChangedLines(t *testing.T) {
	old := "a\nb\nc\n"
	updated := "a\nB\nc\nd\n"
	assert.Equal(t, "-b\n+B\n+d\n", Diff(old, updated))
}

func TestDiff_EqualIsEmpty(t *testing.T) {
	assert.Empty(t, Diff("same\n", "same\n"))
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SAME.md"), []byte("x\n| **Last Updated** | 2026-01-01 |\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGED.md"), []byte("one\ntwo\n"), 0o600))

	docs := []report.Document{
		{Name: "SAME.md", Content: "x\n| **Last Updated** | 2026-03-09 |\n"},
		{Name: "CHANGED.md", Content: "one\n2\n"},
		{Name: "NEW.md", Content: "new\n"},
	}

	got, err := Check(dir, docs)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "CHANGED.md", got[0].Name)
	assert.False(t, got[0].Missing)
	assert.Equal(t, "-two\n+2\n", got[0].Diff)

	assert.Equal(t, Result{Name: "NEW.md", Missing: true}, got[1])
	assert.Equal(t, "NEW.md: missing", got[1].String())
}

func TestCheck_NoDrift(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.md"), []byte("a\n"), 0o600))

	got, err := Check(dir, []report.Document{{Name: "A.md", Content: "a\n"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheck_StalePlaybook(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.md"), []byte("a\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deadbeef-plan.md"), []byte("old\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b8df8b2a-plan.md"), []byte("kept\n"), 0o600))

	docs := []report.Document{
		{Name: "A.md", Content: "a\n"},
		{Name: "b8df8b2a-plan.md", Content: "kept\n"},
	}
	got, err := Check(dir, docs)
	require.NoError(t, err)
	assert.Equal(t, []Result{{Name: "deadbeef-plan.md", Stale: true}}, got)
	assert.Equal(t, "deadbeef-plan.md: stale", got[0].String())
}
