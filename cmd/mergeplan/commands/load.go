// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mergeplan - Cherry-pick decision and batch planning reports for downstream forks.
It classifies upstream commits, groups the actionable ones into batches and generates deterministic Markdown planning artifacts.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/mergeplan/cmd/mergeplan/internal/clierr"
	"github.com/bartekus/mergeplan/internal/config"
	"github.com/bartekus/mergeplan/internal/decision"
	"github.com/bartekus/mergeplan/internal/inventory"
	"github.com/bartekus/mergeplan/internal/projectroot"
	"github.com/bartekus/mergeplan/internal/worktree"
)

// plan is everything read from disk for one merge.
type plan struct {
	cfg     *config.Config
	commits []inventory.Commit
	table   *decision.Table
}

func (a *app) loadPlan() (*plan, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "loading config", err)
	}

	var src inventory.Source = inventory.FileSource{Path: cfg.InventoryPath()}
	commits, err := src.Commits()
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitRuntime, "loading inventory", err)
	}

	table, err := decision.LoadTable(cfg.DecisionsPath())
	switch {
	case errors.Is(err, fs.ErrNotExist) && cfg.DecisionsOptional():
		a.logger().Warn("no decisions file, every commit uses the fallback rules",
			zap.String("path", cfg.DecisionsPath()))
		table = nil
	case err != nil:
		return nil, clierr.Wrap(clierr.ExitRuntime, "loading decisions", err)
	}

	a.logger().Debug("loaded plan",
		zap.String("config", a.configPath),
		zap.String("range", cfg.Upstream.Range()),
		zap.Int("commits", len(commits)),
		zap.Int("overrides", table.Len()))

	return &plan{cfg: cfg, commits: commits, table: table}, nil
}

// files returns the checker for the downstream working tree, or nil when there is none.
func (a *app) files(cfg *config.Config) worktree.Checker {
	if a.worktree != "" {
		return worktree.New(a.worktree)
	}
	root, err := projectroot.Find(cfg.Dir())
	if err != nil {
		a.logger().Debug("no working tree, skipping file pre-checks", zap.Error(err))
		return nil
	}
	return worktree.New(root)
}

// parseNow parses an RFC 3339 --now flag. An empty value means the wall clock.
func parseNow(value string) (func() time.Time, error) {
	if value == "" {
		return nil, nil
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "invalid --now", err)
	}
	return func() time.Time { return at }, nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return clierr.Newf(clierr.ExitUsage, "%s: accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func unknownCommit(short string, cfg *config.Config) error {
	return clierr.New(clierr.ExitUsage, fmt.Sprintf("unknown commit %s (not in %s)", short, cfg.Inventory))
}
