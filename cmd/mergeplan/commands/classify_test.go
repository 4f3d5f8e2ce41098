// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/mergeplan/cmd/mergeplan/internal/clierr"
)

func TestClassify_Selected(t *testing.T) {
	out, err := execute(t, "classify", "--config", testConfigPath, "4f17eae5", "c6a59896")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "4f17eae5  PICK         UX: prevent queued slash/shell commands (override)", lines[0])
	assert.Equal(t, "          fix(cli): prevent queued slash | shell commands", lines[1])
	assert.Equal(t, "c6a59896  SKIP         touches disallowed telemetry component (telemetry)", lines[2])
}

func TestClassify_JSON(t *testing.T) {
	out, err := execute(t, "classify", "--config", testConfigPath, "--json")
	require.NoError(t, err)

	var rows []classifiedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 8)

	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Short+" "+r.Decision+" "+r.Rule)
	}
	want := []string{
		"4f17eae5 PICK override",
		"8a937ebf SKIP override",
		"d38ab079 PICK override",
		"3a1d3769 PICK override",
		"47f5e73b SKIP area:docs",
		"b8df8b2a REIMPLEMENT override",
		"60420e52 SKIP default",
		"c6a59896 SKIP telemetry",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("classification mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, "Policy/message-bus wiring diverges", rows[5].Rationale)
}

func TestClassify_UnknownCommit(t *testing.T) {
	_, err := execute(t, "classify", "--config", testConfigPath, "0000beef")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "unknown commit 0000beef")
}

func TestClassify_Rules(t *testing.T) {
	out, err := execute(t, "classify", "--config", testConfigPath, "--rules")
	require.NoError(t, err)

	want := ` 1  override
 2  telemetry
 3  release
 4  revert
 5  area:docs
 6  area:github
 7  area:integration-tests
 8  topic:model routing|fallback
 9  topic:codebase investigator
10  markdown
11  publishing
12  default
`
	assert.Equal(t, want, out)
}
