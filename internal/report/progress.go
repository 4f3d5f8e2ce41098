// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bartekus/mergeplan/internal/projection"
)

// Lines carrying the run clock. Drift checks ignore them.
const (
	LastUpdatedLabel = "| **Last Updated** |"
	GeneratedLabel   = "- Generated:"
)

func (g *Generator) renderProgress() string {
	var b strings.Builder
	cfg := g.Config

	b.WriteString(projection.RenderHeader(1, g.title(": Progress")))
	b.WriteString("Use this checklist to track batch execution progress.\n\n")

	b.WriteString(projection.RenderHeader(2, "Current Status"))
	next := "—"
	if len(g.Batches) > 0 {
		next = "Batch " + batchNumber(g.Batches[0])
	}
	b.WriteString(projection.RenderAlignedTable(
		[]projection.Column{{Title: "Field"}, {Title: "Value"}},
		[][]string{
			{"**Last Completed**", "—"},
			{"**In Progress**", "—"},
			{"**Next Up**", next},
			{"**Progress**", fmt.Sprintf("0/%d (0%%)", len(g.Batches))},
			{"**Last Updated**", g.now().Format("2006-01-02")},
		},
	))
	b.WriteString("\n")

	b.WriteString(projection.RenderHeader(2, "Preflight"))
	b.WriteString(fmt.Sprintf("- [ ] On main: %s\n", projection.Code("git pull --ff-only")))
	if cfg.Downstream.Branch != "" {
		b.WriteString(fmt.Sprintf("- [ ] Branch exists: %s\n", projection.Code("git checkout -b "+cfg.Downstream.Branch)))
	}
	b.WriteString(fmt.Sprintf("- [ ] Upstream remote + tags fetched: %s\n", projection.Code("git fetch upstream --tags")))
	b.WriteString(fmt.Sprintf("- [ ] Clean worktree before Batch 01: %s is empty\n", projection.Code("git status --porcelain")))
	b.WriteString(fmt.Sprintf("- [ ] File existence pre-check run (see %s)\n\n", PlanFile))

	b.WriteString(projection.RenderHeader(2, "Batch Checklist"))
	for _, bt := range g.Batches {
		b.WriteString(fmt.Sprintf("- [ ] Batch %s — %s — %s — %s — %s\n",
			batchNumber(bt),
			bt.Verify(),
			bt.Type,
			projection.Code(strings.Join(bt.Shorts(), ", ")),
			strings.Join(bt.Subjects(), " / "),
		))
	}

	return b.String()
}

func renderNotes() string {
	var b strings.Builder

	b.WriteString(projection.RenderHeader(1, "Notes"))
	b.WriteString("Keep this as a running log while executing batches.\n\n")

	b.WriteString(projection.RenderHeader(2, "Rules"))
	b.WriteString(projection.RenderList([]string{
		"Add a complete entry after every batch (PICK or REIMPLEMENT).",
		"Include actual command output (no summaries).",
		"Document deviations from plan and follow-ups.",
	}))
	b.WriteString("\n")

	b.WriteString(projection.RenderHeader(2, "Record Template"))

	b.WriteString(projection.RenderHeader(3, "Selection Record"))
	b.WriteString(fence(
		"Batch: NN",
		"Type: PICK | REIMPLEMENT",
		"Upstream SHA(s): <sha(s)>",
		"Subject: <subject>",
		"Playbook: <path if REIMPLEMENT, N/A for PICK>",
		"Prerequisites Checked:",
		"  - Previous batch record exists: YES | NO | N/A",
		"  - Previous batch verification: PASS | FAIL | N/A",
		"  - Previous batch pushed: YES | NO | N/A",
		"  - Special dependencies: <list or None>",
		"Ready to Execute: YES | NO",
	))

	b.WriteString(projection.RenderHeader(3, "Execution Record"))
	b.WriteString(fence("$ git cherry-pick <sha...>", "<output>"))

	b.WriteString(projection.RenderHeader(3, "Verification Record"))
	b.WriteString(fence("$ <verify command>", "<output>"))

	b.WriteString(projection.RenderHeader(3, "Feature Landing Verification"))
	b.WriteString(fence("<evidence: git show / grep / diff>"))

	b.WriteString(projection.RenderHeader(3, "Commit/Push Record"))
	b.WriteString(strings.TrimSuffix(fence(
		"$ git status --porcelain",
		"<output>",
		`$ git commit -m "..."`,
		"<output>",
		"$ git push",
		"<output>",
	), "\n"))

	return b.String()
}

// fence renders lines as a fenced code block followed by a blank line.
func fence(lines ...string) string {
	return "```\n" + strings.Join(lines, "\n") + "\n```\n\n"
}

func (g *Generator) renderAudit() string {
	var b strings.Builder
	cfg := g.Config

	b.WriteString(projection.RenderHeader(1, g.title(": Audit")))
	b.WriteString(fmt.Sprintf("%s %s\n", GeneratedLabel, projection.Code(g.now().Format("2006-01-02 15:04"))))
	if cfg.Downstream.Branch != "" {
		b.WriteString(fmt.Sprintf("- Branch: %s\n", projection.Code(cfg.Downstream.Branch)))
	}
	b.WriteString(fmt.Sprintf("- Upstream range: %s (%s commits)\n\n",
		projection.Code(cfg.Upstream.Range()), projection.Code(strconv.Itoa(len(g.Classified)))))

	b.WriteString(projection.RenderHeader(2, fmt.Sprintf("Status Counts (Against %s)", CherriesFile)))
	statusRows := make([][]string, 0, 7)
	for _, s := range []string{"PICKED", "REIMPLEMENTED", "SKIP", "NO_OP", "ALREADY_PRESENT", "DIVERGED", "MISSING"} {
		statusRows = append(statusRows, []string{s, "0"})
	}
	b.WriteString(projection.RenderAlignedTable(
		[]projection.Column{{Title: "Status"}, {Title: "Count", Align: projection.AlignRight}},
		statusRows,
	))
	b.WriteString("\n")

	b.WriteString(projection.RenderHeader(2, "Full Upstream Table (Chronological)"))
	rows := make([][]string, 0, len(g.Classified))
	for _, c := range g.Classified {
		rows = append(rows, []string{
			strconv.Itoa(c.Index),
			projection.Code(c.Commit.Short),
			string(c.Result.Decision),
			"",
			"",
			projection.EscapeCell(c.Commit.Subject),
			"",
		})
	}
	b.WriteString(projection.RenderAlignedTable([]projection.Column{
		{Title: "#", Align: projection.AlignRight},
		{Title: "Upstream", Align: projection.AlignLeft},
		{Title: "Decision", Align: projection.AlignLeft},
		{Title: "Status", Align: projection.AlignLeft},
		{Title: "Local", Align: projection.AlignLeft},
		{Title: "Subject", Align: projection.AlignLeft},
		{Title: "Notes", Align: projection.AlignLeft},
	}, rows))

	return b.String()
}
