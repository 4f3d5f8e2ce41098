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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/mergeplan/cmd/mergeplan/internal/clierr"
	"github.com/bartekus/mergeplan/internal/config"
	"github.com/bartekus/mergeplan/internal/decision"
	"github.com/bartekus/mergeplan/internal/inventory"
	"github.com/bartekus/mergeplan/internal/termstyle"
)

// classifiedJSON is the --json row shape of classify.
type classifiedJSON struct {
	Index     int    `json:"index"`
	Short     string `json:"short"`
	Decision  string `json:"decision"`
	Rule      string `json:"rule"`
	Rationale string `json:"rationale"`
	Subject   string `json:"subject"`
}

func newClassifyCmd(a *app) *cobra.Command {
	var (
		asJSON    bool
		listRules bool
	)

	cmd := &cobra.Command{
		Use:   "classify [SHORT...]",
		Short: "Show the decision, rule and rationale for commits",
		Long: `Classify commits from the inventory and print the decision, the rule that
produced it and its rationale. Without arguments every commit is shown in
chronological order. With --rules the evaluation order of the rules is printed
instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listRules {
				return printRules(a, cmd)
			}

			p, err := a.loadPlan()
			if err != nil {
				return err
			}

			selected, err := selectCommits(p, args)
			if err != nil {
				return err
			}

			classifier := decision.NewClassifier(p.table, p.cfg.Heuristics, p.cfg.Downstream.Name)
			classified := classifier.ClassifyAll(p.commits)
			byShort := make(map[string]decision.Classified, len(classified))
			for _, c := range classified {
				byShort[c.Commit.Short] = c
			}

			out := cmd.OutOrStdout()
			if asJSON {
				rows := make([]classifiedJSON, 0, len(selected))
				for _, commit := range selected {
					c := byShort[commit.Short]
					rows = append(rows, classifiedJSON{
						Index:     c.Index,
						Short:     c.Commit.Short,
						Decision:  string(c.Result.Decision),
						Rule:      c.Result.Rule,
						Rationale: c.Result.Rationale,
						Subject:   c.Commit.Subject,
					})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rows); err != nil {
					return clierr.Wrap(clierr.ExitRuntime, "encoding output", err)
				}
				return nil
			}

			styles := termstyle.New(out)
			for _, commit := range selected {
				c := byShort[commit.Short]
				_, _ = fmt.Fprintf(out, "%s  %s  %s %s\n",
					c.Commit.Short,
					padRight(styles.Decision(c.Result.Decision), string(c.Result.Decision), len(decision.Reimplement)),
					c.Result.Rationale,
					styles.Dim("("+c.Result.Rule+")"))
				_, _ = fmt.Fprintf(out, "%s  %s\n", strings.Repeat(" ", len(c.Commit.Short)), styles.Dim(c.Commit.Subject))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	cmd.Flags().BoolVar(&listRules, "rules", false, "print the rule evaluation order and exit")

	return cmd
}

// printRules lists the override lookup, the fallback rules and the default, in evaluation order.
func printRules(a *app, cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "loading config", err)
	}
	classifier := decision.NewClassifier(nil, cfg.Heuristics, cfg.Downstream.Name)

	names := append([]string{decision.RuleOverride}, classifier.RuleNames()...)
	names = append(names, decision.RuleDefault)

	out := cmd.OutOrStdout()
	for i, name := range names {
		_, _ = fmt.Fprintf(out, "%2d  %s\n", i+1, name)
	}
	return nil
}

// selectCommits returns the inventory commits named by args, or all of them.
func selectCommits(p *plan, args []string) ([]inventory.Commit, error) {
	if len(args) == 0 {
		return p.commits, nil
	}
	byShort := make(map[string]inventory.Commit, len(p.commits))
	for _, c := range p.commits {
		byShort[c.Short] = c
	}
	out := make([]inventory.Commit, 0, len(args))
	for _, short := range args {
		c, ok := byShort[short]
		if !ok {
			return nil, unknownCommit(short, p.cfg)
		}
		out = append(out, c)
	}
	return out, nil
}

// padRight pads styled to width using the length of its unstyled text.
func padRight(styled, plain string, width int) string {
	if n := width - len(plain); n > 0 {
		return styled + strings.Repeat(" ", n)
	}
	return styled
}
