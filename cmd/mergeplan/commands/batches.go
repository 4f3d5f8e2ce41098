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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/mergeplan/internal/batch"
	"github.com/bartekus/mergeplan/internal/decision"
	"github.com/bartekus/mergeplan/internal/termstyle"
)

func newBatchesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batches",
		Short: "Print the batch schedule",
		Long: `Plan batches from the classified inventory and print them in execution order
with their type, verification cadence and member commits.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPlan()
			if err != nil {
				return err
			}

			classifier := decision.NewClassifier(p.table, p.cfg.Heuristics, p.cfg.Downstream.Name)
			classified := classifier.ClassifyAll(p.commits)
			batches := batch.Plan(classified, p.cfg.BatchConfig())

			out := cmd.OutOrStdout()
			styles := termstyle.New(out)
			for _, b := range batches {
				_, _ = fmt.Fprintf(out, "%s  %s  %s\n",
					styles.Heading(fmt.Sprintf("Batch %02d", b.Number)),
					styles.Decision(b.Type),
					b.Verify())
				for _, c := range b.Commits {
					_, _ = fmt.Fprintf(out, "  %s  %s\n", c.Commit.Short, c.Commit.Subject)
				}
			}

			counts := decision.Count(classified)
			_, _ = fmt.Fprintf(out, "%d batches from %d PICK and %d REIMPLEMENT commits (%d skipped)\n",
				len(batches), counts.Pick, counts.Reimplement, counts.Skip)
			return nil
		},
	}
}
