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
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/bartekus/mergeplan/cmd/mergeplan/internal/clierr"
	"github.com/bartekus/mergeplan/internal/termstyle"
)

func newPreviewCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview FILE",
		Short: "Render a generated Markdown document in the terminal",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "reading document", err)
			}

			out := cmd.OutOrStdout()
			opts := []glamour.TermRendererOption{glamour.WithWordWrap(termstyle.Width(out))}
			if termstyle.Enabled(out) {
				opts = append(opts, glamour.WithAutoStyle())
			} else {
				opts = append(opts, glamour.WithStandardStyle("notty"))
			}

			renderer, err := glamour.NewTermRenderer(opts...)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "creating renderer", err)
			}
			rendered, err := renderer.Render(string(data))
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "rendering document", err)
			}
			_, _ = fmt.Fprint(out, rendered)
			return nil
		},
	}
}
