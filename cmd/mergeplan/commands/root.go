// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mergeplan - Cherry-pick decision and batch planning reports for downstream forks.
It classifies upstream commits, groups the actionable ones into batches and generates deterministic Markdown planning artifacts.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra commands of the mergeplan CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bartekus/mergeplan/cmd/mergeplan/internal/clierr"
	"github.com/bartekus/mergeplan/internal/config"
)

// app holds state shared by every subcommand of one invocation.
type app struct {
	verbose    bool
	configPath string
	worktree   string

	log *zap.Logger
	// ownsLog is false when the logger was injected and must not be replaced.
	ownsLog bool
}

// NewRootCmd constructs the mergeplan root Cobra command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

func newRootCmd(log *zap.Logger) *cobra.Command {
	a := &app{log: log, ownsLog: log == nil}

	version := os.Getenv("MERGEPLAN_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:   "mergeplan",
		Short: "Cherry-pick decision and batch planning for downstream forks",
		Long: `mergeplan classifies every upstream commit in a release range as PICK, SKIP or
REIMPLEMENT, groups the actionable ones into ordered batches and generates the
Markdown planning documents a downstream fork uses to execute the merge.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierr.Usage(err)
	})

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultFileName, "path to the merge plan config")
	cmd.PersistentFlags().StringVar(&a.worktree, "worktree", "", "downstream checkout used for file existence checks (default: repository containing the config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of mergeplan",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mergeplan version %s\n", version)
		},
	})

	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newClassifyCmd(a))
	cmd.AddCommand(newBatchesCmd(a))
	cmd.AddCommand(newPreviewCmd(a))

	return cmd
}

func (a *app) initLogger() error {
	if !a.ownsLog {
		return nil
	}
	cfg := zap.NewProductionConfig()
	if a.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log
	return nil
}

func (a *app) logger() *zap.Logger {
	if a.log == nil {
		return zap.NewNop()
	}
	return a.log
}
