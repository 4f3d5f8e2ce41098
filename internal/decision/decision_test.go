// SPDX-License-Identifier: AGPL-3.0-or-later
package decision

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/mergeplan/internal/inventory"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in      string
		want    Decision
		wantErr bool
	}{
		{in: "PICK", want: Pick},
		{in: "pick", want: Pick},
		{in: " Reimplement ", want: Reimplement},
		{in: "skip", want: Skip},
		{in: "maybe", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDecision(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadTable(t *testing.T) {
	table, err := LoadTable(filepath.Join("testdata", "decisions.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	o, ok := table.Lookup("b8df8b2a")
	require.True(t, ok)
	assert.Equal(t, Reimplement, o.Decision)

	o, ok = table.Lookup("d38ab079")
	require.True(t, ok)
	assert.Equal(t, Pick, o.Decision)
	assert.Empty(t, o.Rationale)

	_, ok = table.Lookup("ffffffff")
	assert.False(t, ok)

	assert.Equal(t, []string{"4f17eae5", "8a937ebf", "b8df8b2a", "d38ab079"}, table.Shorts())
}

func TestLoadTable_DuplicateFailsFast(t *testing.T) {
	_, err := LoadTable(filepath.Join("testdata", "duplicate.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate override for 4f17eae5 at index 2 (first defined at index 0)")
}

func TestParseTable_InvalidDecision(t *testing.T) {
	_, err := ParseTable([]byte("overrides:\n  - short: aaaa\n    decision: MAYBE\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestParseTable_MissingFields(t *testing.T) {
	_, err := ParseTable([]byte("overrides:\n  - decision: PICK\n"))
	require.ErrorContains(t, err, "missing short id")

	_, err = ParseTable([]byte("overrides:\n  - short: aaaa\n"))
	require.ErrorContains(t, err, "aaaa missing decision")
}

func TestParseTable_UnknownKeys(t *testing.T) {
	_, err := ParseTable([]byte("override:\n  - short: aaaa\n    decision: PICK\n"))
	require.ErrorContains(t, err, "field override not found")

	_, err = ParseTable([]byte("overrides:\n  - short: aaaa\n    decison: PICK\n"))
	require.ErrorContains(t, err, "field decison not found")
}

func TestParseTable_Empty(t *testing.T) {
	table, err := ParseTable(nil)
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestTable_Unused(t *testing.T) {
	table, err := NewTable(
		Entry{Short: "aaaa", Decision: Pick},
		Entry{Short: "bbbb", Decision: Skip},
		Entry{Short: "cccc", Decision: Reimplement},
	)
	require.NoError(t, err)

	commits := []inventory.Commit{{Short: "bbbb"}, {Short: "dddd"}}
	assert.Equal(t, []string{"aaaa", "cccc"}, table.Unused(commits))
}

func TestNilTable(t *testing.T) {
	var table *Table
	_, ok := table.Lookup("aaaa")
	assert.False(t, ok)
	assert.Zero(t, table.Len())
	assert.Empty(t, table.Shorts())
}

func TestDefaultRationale(t *testing.T) {
	assert.Equal(t, "Relevant improvement for llxprt", DefaultRationale(Pick, "llxprt"))
	assert.Equal(t, "Reimplement to preserve llxprt divergence", DefaultRationale(Reimplement, "llxprt"))
	assert.Equal(t, "Not selected for llxprt (low value or conflicts)", DefaultRationale(Skip, "llxprt"))
}
