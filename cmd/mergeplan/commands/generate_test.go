// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/mergeplan/cmd/mergeplan/internal/clierr"
	"github.com/bartekus/mergeplan/internal/report"
)

func generate(t *testing.T, dir string, extra ...string) (string, error) {
	t.Helper()
	args := append([]string{
		"generate",
		"--config", testConfigPath,
		"--plan-dir", dir,
		"--worktree", t.TempDir(),
	}, extra...)
	return execute(t, args...)
}

func TestGenerate_WritesEveryDocument(t *testing.T) {
	dir := t.TempDir()
	out, err := generate(t, dir, "--now", "2026-01-04T09:30:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 8 documents to "+dir)

	for _, name := range []string{
		report.CherriesFile, report.SummaryFile, report.PlanFile, report.ProgressFile,
		report.NotesFile, report.AuditFile, report.PlaybooksFile, report.PlaybookFile("b8df8b2a"),
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	notes, err := os.ReadFile(filepath.Join(dir, report.NotesFile))
	require.NoError(t, err)
	assert.Contains(t, string(notes), "- Generated: `2026-01-04 09:30`")
}

func TestGenerate_CheckIgnoresClock(t *testing.T) {
	dir := t.TempDir()
	_, err := generate(t, dir, "--now", "2026-01-04T09:30:00Z")
	require.NoError(t, err)

	out, err := generate(t, dir, "--check", "--now", "2026-02-11T17:05:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "8 documents up to date")
}

func TestGenerate_CheckReportsDrift(t *testing.T) {
	dir := t.TempDir()
	_, err := generate(t, dir)
	require.NoError(t, err)

	path := filepath.Join(dir, report.CherriesFile)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, []byte("hand edit\n")...), 0o600))
	require.NoError(t, os.Remove(filepath.Join(dir, report.AuditFile)))

	out, err := generate(t, dir, "--check")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitDrift, clierr.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "2 documents out of date")

	assert.Contains(t, out, report.CherriesFile)
	assert.Contains(t, out, "-hand edit")
	assert.Contains(t, out, report.AuditFile+"\n  missing")
}

func TestGenerate_CheckEmptyDir(t *testing.T) {
	_, err := generate(t, t.TempDir(), "--check")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitDrift, clierr.ExitCodeOf(err))
}

func TestGenerate_InvalidNow(t *testing.T) {
	_, err := generate(t, t.TempDir(), "--now", "yesterday")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
}

func TestGenerate_MissingConfig(t *testing.T) {
	_, err := execute(t, "generate", "--config", filepath.Join(t.TempDir(), "mergeplan.yaml"))
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
}

func TestGenerate_MalformedInventory(t *testing.T) {
	dir := t.TempDir()
	cfg, err := os.ReadFile(testConfigPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mergeplan.yaml"), cfg, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "upstream.json"), []byte("{not json"), 0o600))

	_, err = execute(t, "generate", "--config", filepath.Join(dir, "mergeplan.yaml"))
	require.Error(t, err)
	assert.Equal(t, clierr.ExitRuntime, clierr.ExitCodeOf(err))
}

func TestGenerate_UnknownFlag(t *testing.T) {
	_, err := execute(t, "generate", "--bogus")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
}

func TestGenerate_ExplicitDecisionsMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := os.ReadFile(testConfigPath)
	require.NoError(t, err)
	inv, err := os.ReadFile(filepath.Join("testdata", "plan", "upstream.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mergeplan.yaml"), append(cfg, []byte("decisions: overides.yaml\n")...), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "upstream.json"), inv, 0o600))

	_, err = execute(t, "generate", "--config", filepath.Join(dir, "mergeplan.yaml"), "--plan-dir", dir)
	require.Error(t, err)
	assert.Equal(t, clierr.ExitRuntime, clierr.ExitCodeOf(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NoFileExists(t, filepath.Join(dir, report.CherriesFile))
}

func TestGenerate_DefaultDecisionsMayBeAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := os.ReadFile(testConfigPath)
	require.NoError(t, err)
	inv, err := os.ReadFile(filepath.Join("testdata", "plan", "upstream.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mergeplan.yaml"), cfg, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "upstream.json"), inv, 0o600))

	out, err := execute(t, "generate", "--config", filepath.Join(dir, "mergeplan.yaml"), "--worktree", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote ")
}

func TestGenerate_StalePlaybook(t *testing.T) {
	dir := t.TempDir()
	_, err := generate(t, dir)
	require.NoError(t, err)

	stale := filepath.Join(dir, report.PlaybookFile("deadbeef"))
	require.NoError(t, os.WriteFile(stale, []byte("# old playbook\n"), 0o600))

	out, err := generate(t, dir, "--check")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitDrift, clierr.ExitCodeOf(err))
	assert.Contains(t, out, "deadbeef-plan.md\n  stale, no longer generated")

	_, err = generate(t, dir)
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(dir, report.PlaybookFile("b8df8b2a")))
}
