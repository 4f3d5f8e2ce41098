// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mergeplan - Cherry-pick decision and batch planning reports for downstream forks.
It classifies upstream commits, groups the actionable ones into batches and generates deterministic Markdown planning artifacts.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package report renders classified commits and batches into Markdown planning documents.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bartekus/mergeplan/internal/batch"
	"github.com/bartekus/mergeplan/internal/config"
	"github.com/bartekus/mergeplan/internal/decision"
	"github.com/bartekus/mergeplan/internal/inventory"
	"github.com/bartekus/mergeplan/internal/projection"
	"github.com/bartekus/mergeplan/internal/worktree"
)

// Fixed document names, in render order.
const (
	CherriesFile  = "CHERRIES.md"
	SummaryFile   = "SUMMARY.md"
	PlanFile      = "PLAN.md"
	ProgressFile  = "PROGRESS.md"
	NotesFile     = "NOTES.md"
	AuditFile     = "AUDIT.md"
	PlaybooksFile = "PLAYBOOKS.md"
)

const playbookSuffix = "-plan.md"

// PlaybookFile returns the playbook name for a REIMPLEMENT commit.
func PlaybookFile(short string) string {
	return short + playbookSuffix
}

// IsPlaybookFile reports whether name has the shape of a generated playbook.
func IsPlaybookFile(name string) bool {
	return strings.HasSuffix(name, playbookSuffix) && len(name) > len(playbookSuffix)
}

// StalePlaybooks lists playbook files in dir that are not among docs, sorted.
// A missing dir has none.
func StalePlaybooks(dir string, docs []Document) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	current := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		current[d.Name] = struct{}{}
	}
	var stale []string
	for _, e := range entries {
		if e.IsDir() || !IsPlaybookFile(e.Name()) {
			continue
		}
		if _, ok := current[e.Name()]; !ok {
			stale = append(stale, e.Name())
		}
	}
	sort.Strings(stale)
	return stale, nil
}

// Document is one rendered output file.
type Document struct {
	Name    string
	Content string
}

// Generator renders every planning document for one merge.
type Generator struct {
	Config     *config.Config
	Classified []decision.Classified
	Batches    []batch.Batch
	Files      worktree.Checker
	Now        func() time.Time
	Log        *zap.Logger
}

// New classifies commits and plans batches, returning a ready Generator.
// Overrides and solo ids that name no usable commit are logged and otherwise ignored.
func New(cfg *config.Config, commits []inventory.Commit, table *decision.Table, files worktree.Checker, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}

	classifier := decision.NewClassifier(table, cfg.Heuristics, cfg.Downstream.Name)
	classified := classifier.ClassifyAll(commits)
	bc := cfg.BatchConfig()
	batches := batch.Plan(classified, bc)

	for _, short := range table.Unused(commits) {
		log.Debug("override names no commit in inventory", zap.String("short", short))
	}
	for _, short := range batch.UnusedSolo(classified, bc) {
		log.Debug("solo id is not a PICK commit", zap.String("short", short))
	}

	counts := decision.Count(classified)
	log.Info("classified commits",
		zap.Int("total", counts.Total()),
		zap.Int("pick", counts.Pick),
		zap.Int("reimplement", counts.Reimplement),
		zap.Int("skip", counts.Skip),
		zap.Int("batches", len(batches)))

	return &Generator{
		Config:     cfg,
		Classified: classified,
		Batches:    batches,
		Files:      files,
		Log:        log,
	}
}

// Render produces every document in memory. Nothing is written.
func (g *Generator) Render() ([]Document, error) {
	if g.Config == nil {
		return nil, fmt.Errorf("report: generator has no config")
	}

	docs := []Document{
		{Name: CherriesFile, Content: g.renderCherries()},
		{Name: SummaryFile, Content: g.renderSummary()},
		{Name: PlanFile, Content: g.renderPlan()},
		{Name: ProgressFile, Content: g.renderProgress()},
		{Name: NotesFile, Content: renderNotes()},
		{Name: AuditFile, Content: g.renderAudit()},
		{Name: PlaybooksFile, Content: g.renderPlaybookIndex()},
	}

	for _, c := range decision.Filter(g.Classified, decision.Reimplement) {
		docs = append(docs, Document{Name: PlaybookFile(c.Commit.Short), Content: g.renderPlaybook(c)})
	}

	for _, d := range docs {
		g.log().Debug("rendered document", zap.String("name", d.Name), zap.Int("bytes", len(d.Content)))
	}
	return docs, nil
}

// Write renders and writes every document into outDir, overwriting existing files.
// Rendering completes before the first file is written. Playbooks left by an earlier
// run for commits that are no longer REIMPLEMENT are removed.
func (g *Generator) Write(outDir string) ([]Document, error) {
	docs, err := g.Render()
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		target := filepath.Join(outDir, d.Name)
		if err := projection.AtomicWrite(target, []byte(d.Content)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", d.Name, err)
		}
	}

	stale, err := StalePlaybooks(outDir, docs)
	if err != nil {
		return nil, err
	}
	for _, name := range stale {
		if err := os.Remove(filepath.Join(outDir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("removing stale playbook %s: %w", name, err)
		}
		g.log().Info("removed stale playbook", zap.String("name", name))
	}
	g.log().Info("wrote documents", zap.String("dir", outDir), zap.Int("count", len(docs)))
	return docs, nil
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Generator) log() *zap.Logger {
	if g.Log == nil {
		return zap.NewNop()
	}
	return g.Log
}

// planPath joins name onto the configured plan directory as written in hints.
func (g *Generator) planPath(name string) string {
	if g.Config.PlanDir == "" {
		return name
	}
	return path.Join(g.Config.PlanDir, name)
}

func (g *Generator) commitLink(c inventory.Commit) string {
	return projection.Link(projection.Code(c.Short), c.URL(g.Config.Upstream.Repository))
}

func (g *Generator) title(suffix string) string {
	up := g.Config.Upstream
	return fmt.Sprintf("%s %s → %s%s", up.Name, up.From, up.To, suffix)
}
