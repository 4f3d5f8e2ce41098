// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"fmt"
	"strings"

	"github.com/bartekus/mergeplan/internal/batch"
	"github.com/bartekus/mergeplan/internal/decision"
	"github.com/bartekus/mergeplan/internal/projection"
	"github.com/bartekus/mergeplan/internal/worktree"
)

var scheduleColumns = []projection.Column{
	{Title: "Batch", Align: projection.AlignRight},
	{Title: "Type", Align: projection.AlignLeft},
	{Title: "Upstream SHA(s)", Align: projection.AlignLeft},
	{Title: "Command / Playbook", Align: projection.AlignLeft},
	{Title: "Commit Message", Align: projection.AlignLeft},
	{Title: "Verify", Align: projection.AlignLeft},
}

// Hints for one batch in the schedule.
type scheduleHint struct {
	Command string
	Message string
}

func (g *Generator) hintFor(b batch.Batch) scheduleHint {
	shorts := b.Shorts()
	if b.Type == decision.Reimplement {
		return scheduleHint{
			Command: g.planPath(PlaybookFile(shorts[0])),
			Message: reimplementMessage(b.Commits[0]),
		}
	}
	return scheduleHint{
		Command: "git cherry-pick " + strings.Join(shorts, " "),
		Message: fmt.Sprintf("cherry-pick: upstream %s..%s batch %s", shorts[0], shorts[len(shorts)-1], batchNumber(b)),
	}
}

func reimplementMessage(c decision.Classified) string {
	return fmt.Sprintf("reimplement: %s (upstream %s)", c.Commit.Subject, c.Commit.Short)
}

func batchNumber(b batch.Batch) string {
	return fmt.Sprintf("%02d", b.Number)
}

// missingFiles maps files touched by REIMPLEMENT commits that are absent locally to those commits.
func (g *Generator) missingFiles() map[string][]string {
	byCommit := make(map[string][]string)
	for _, c := range decision.Filter(g.Classified, decision.Reimplement) {
		byCommit[c.Commit.Short] = c.Commit.Files
	}
	return worktree.Missing(g.Files, byCommit)
}

func codeList(cmds []string) string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, projection.Code(c))
	}
	return strings.Join(out, ", ")
}

func (g *Generator) renderPlan() string {
	var b strings.Builder
	cfg := g.Config
	down := cfg.Downstream.Name

	b.WriteString(projection.RenderHeader(1, g.title(": Batch Plan")))

	b.WriteString("References:\n")
	refs := append([]string{}, cfg.References...)
	refs = append(refs, g.planPath(CherriesFile), g.planPath(SummaryFile))
	for _, r := range refs {
		b.WriteString(fmt.Sprintf("- %s\n", projection.Code(r)))
	}
	if cfg.Downstream.TrackingIssue != "" {
		b.WriteString(fmt.Sprintf("- Tracking issue: %s\n", cfg.Downstream.TrackingIssue))
	}
	b.WriteString("\n")

	if len(cfg.NonNegotiables) > 0 {
		b.WriteString(projection.RenderHeader(2, "Non-negotiables"))
		b.WriteString(projection.RenderList(cfg.NonNegotiables))
		b.WriteString("\n")
	}

	b.WriteString(projection.RenderHeader(2, "File Existence Pre-Check"))
	missing := map[string][]string{}
	if g.Files != nil {
		missing = g.missingFiles()
	}
	switch {
	case g.Files == nil:
		b.WriteString("File existence pre-check skipped (no working tree available).\n")
	case len(missing) > 0:
		b.WriteString(fmt.Sprintf("The following upstream files are missing in %s. If still missing during execution, "+
			"follow playbook SKIP/NO_OP guidance and record in %s.\n\n", down, AuditFile))
		rows := make([][]string, 0, len(missing))
		for _, f := range projection.SortedKeys(missing) {
			rows = append(rows, []string{projection.Code(f), strings.Join(missing[f], ", ")})
		}
		b.WriteString(projection.RenderTable([]string{"File", "Upstream SHAs"}, rows))
	default:
		b.WriteString("No missing files detected for REIMPLEMENT commits (as of plan generation).\n")
	}
	b.WriteString("\n")

	if len(cfg.Branding) > 0 {
		b.WriteString(projection.RenderHeader(2, "Branding Substitutions"))
		b.WriteString(projection.RenderList(cfg.Branding))
		b.WriteString("\n")
	}

	b.WriteString(projection.RenderHeader(2, "Verification Cadence"))
	b.WriteString(fmt.Sprintf("- After every batch (Quick): %s\n", codeList(cfg.Verify.Quick)))
	b.WriteString(fmt.Sprintf("- After every 2nd batch (Full): %s\n", codeList(cfg.Verify.Full)))
	b.WriteString("- If formatting modifies files during full verify, commit those changes without rerunning checks.\n\n")

	b.WriteString(projection.RenderHeader(2, "Batch Schedule"))
	rows := make([][]string, 0, len(g.Batches))
	for _, bt := range g.Batches {
		hint := g.hintFor(bt)
		rows = append(rows, []string{
			batchNumber(bt),
			string(bt.Type),
			projection.Code(strings.Join(bt.Shorts(), ", ")),
			projection.Code(hint.Command),
			projection.Code(projection.EscapeCell(hint.Message)),
			string(bt.Verify()),
		})
	}
	b.WriteString(projection.RenderAlignedTable(scheduleColumns, rows))
	b.WriteString("\n")

	b.WriteString(projection.RenderHeader(2, "Failure Recovery"))
	b.WriteString(fmt.Sprintf("- Abort a conflicted cherry-pick: %s.\n", projection.Code("git cherry-pick --abort")))
	b.WriteString(fmt.Sprintf("- After resolving conflicts, continue with %s.\n", projection.Code("git cherry-pick --continue")))
	b.WriteString(fmt.Sprintf("- If verification fails, fix immediately and add %s commit before next batch.\n\n",
		projection.Code("fix: post-batch NN verification")))

	b.WriteString(projection.RenderHeader(2, "Note-taking Requirement"))
	b.WriteString(fmt.Sprintf("- After each batch, update %s, append %s, and update %s with %s commit hashes.\n",
		ProgressFile, NotesFile, AuditFile, down))

	return b.String()
}
