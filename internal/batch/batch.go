// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mergeplan - Cherry-pick decision and batch planning reports for downstream forks.
It classifies upstream commits, groups the actionable ones into batches and generates deterministic Markdown planning artifacts.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package batch groups classified commits into cherry-pick execution units.
package batch

import (
	"sort"

	"github.com/bartekus/mergeplan/internal/decision"
)

// DefaultGroupSize is the maximum number of PICK commits per batch.
const DefaultGroupSize = 5

// Verification cadence for a batch.
type Verify string

const (
	VerifyQuick Verify = "QUICK"
	VerifyFull  Verify = "FULL"
)

// Config controls batching.
type Config struct {
	// GroupSize caps PICK batches. Values below 1 fall back to DefaultGroupSize.
	GroupSize int
	// Solo lists PICK commits that always get a batch of their own.
	Solo map[string]struct{}
}

// NewConfig builds a Config from a group size and solo ids.
func NewConfig(groupSize int, solo ...string) Config {
	set := make(map[string]struct{}, len(solo))
	for _, s := range solo {
		set[s] = struct{}{}
	}
	return Config{GroupSize: groupSize, Solo: set}
}

func (c Config) isSolo(short string) bool {
	_, ok := c.Solo[short]
	return ok
}

func (c Config) groupSize() int {
	if c.GroupSize < 1 {
		return DefaultGroupSize
	}
	return c.GroupSize
}

// Batch is one execution unit. All members share Type.
type Batch struct {
	Number  int
	Type    decision.Decision
	Commits []decision.Classified
}

// Shorts returns member short ids in order.
func (b Batch) Shorts() []string {
	out := make([]string, 0, len(b.Commits))
	for _, c := range b.Commits {
		out = append(out, c.Commit.Short)
	}
	return out
}

// Subjects returns member subjects in order.
func (b Batch) Subjects() []string {
	out := make([]string, 0, len(b.Commits))
	for _, c := range b.Commits {
		out = append(out, c.Commit.Subject)
	}
	return out
}

// Verify alternates QUICK and FULL, starting with QUICK for batch 1.
func (b Batch) Verify() Verify {
	if b.Number%2 == 0 {
		return VerifyFull
	}
	return VerifyQuick
}

// Plan partitions classified commits into batches in a single forward pass.
// SKIP commits are dropped; REIMPLEMENT and solo PICK commits stand alone;
// other PICK commits are grouped up to the configured size.
func Plan(classified []decision.Classified, cfg Config) []Batch {
	var (
		batches []Batch
		current []decision.Classified
	)
	size := cfg.groupSize()

	emit := func(t decision.Decision, members []decision.Classified) {
		batches = append(batches, Batch{Number: len(batches) + 1, Type: t, Commits: members})
	}
	flush := func() {
		if len(current) > 0 {
			emit(decision.Pick, current)
			current = nil
		}
	}

	for _, c := range classified {
		switch c.Result.Decision {
		case decision.Pick:
			if cfg.isSolo(c.Commit.Short) {
				flush()
				emit(decision.Pick, []decision.Classified{c})
				continue
			}
			current = append(current, c)
			if len(current) == size {
				flush()
			}
		case decision.Reimplement:
			flush()
			emit(decision.Reimplement, []decision.Classified{c})
		}
	}
	flush()

	return batches
}

// UnusedSolo returns solo ids that are not PICK commits in classified, in sorted order.
func UnusedSolo(classified []decision.Classified, cfg Config) []string {
	picked := make(map[string]struct{})
	for _, c := range classified {
		if c.Result.Decision == decision.Pick {
			picked[c.Commit.Short] = struct{}{}
		}
	}
	var unused []string
	for s := range cfg.Solo {
		if _, ok := picked[s]; !ok {
			unused = append(unused, s)
		}
	}
	sort.Strings(unused)
	return unused
}
