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

	"github.com/bartekus/mergeplan/cmd/mergeplan/internal/clierr"
	"github.com/bartekus/mergeplan/internal/drift"
	"github.com/bartekus/mergeplan/internal/report"
	"github.com/bartekus/mergeplan/internal/termstyle"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		planDir string
		check   bool
		now     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the merge planning documents",
		Long: `Classify every commit in the inventory, plan batches and write CHERRIES.md,
SUMMARY.md, PLAN.md, PROGRESS.md, NOTES.md, AUDIT.md, PLAYBOOKS.md and one
<short>-plan.md per REIMPLEMENT commit into the plan directory.

With --check nothing is written; the command exits with code 3 when any
document on disk differs from a fresh render.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPlan()
			if err != nil {
				return err
			}
			clock, err := parseNow(now)
			if err != nil {
				return err
			}

			g := report.New(p.cfg, p.commits, p.table, a.files(p.cfg), a.logger())
			g.Now = clock

			outDir := planDir
			if outDir == "" {
				outDir = p.cfg.Dir()
			}

			out := cmd.OutOrStdout()
			styles := termstyle.New(out)

			if check {
				docs, err := g.Render()
				if err != nil {
					return clierr.Wrap(clierr.ExitRuntime, "rendering documents", err)
				}
				drifted, err := drift.Check(outDir, docs)
				if err != nil {
					return clierr.Wrap(clierr.ExitRuntime, "checking documents", err)
				}
				if len(drifted) == 0 {
					_, _ = fmt.Fprintf(out, "%d documents up to date in %s\n", len(docs), outDir)
					return nil
				}
				for _, r := range drifted {
					_, _ = fmt.Fprintln(out, styles.Heading(r.Name))
					switch {
					case r.Missing:
						_, _ = fmt.Fprintln(out, styles.Dim("  missing"))
						continue
					case r.Stale:
						_, _ = fmt.Fprintln(out, styles.Dim("  stale, no longer generated"))
						continue
					}
					_, _ = fmt.Fprint(out, r.Diff)
				}
				return clierr.Newf(clierr.ExitDrift, "%d documents out of date in %s (%d generated); run mergeplan generate", len(drifted), outDir, len(docs))
			}

			docs, err := g.Write(outDir)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "writing documents", err)
			}
			for _, d := range docs {
				_, _ = fmt.Fprintln(out, styles.Dim("  "+d.Name))
			}
			_, _ = fmt.Fprintf(out, "wrote %d documents to %s\n", len(docs), outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&planDir, "plan-dir", "", "directory to write documents into (default: the config directory)")
	cmd.Flags().BoolVar(&check, "check", false, "compare with the documents on disk instead of writing")
	cmd.Flags().StringVar(&now, "now", "", "RFC 3339 timestamp used for Last Updated and Generated lines")

	return cmd
}
