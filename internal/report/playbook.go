// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"fmt"
	"strings"

	"github.com/bartekus/mergeplan/internal/decision"
	"github.com/bartekus/mergeplan/internal/projection"
)

func (g *Generator) renderPlaybookIndex() string {
	var b strings.Builder

	b.WriteString(projection.RenderHeader(1, "Reimplementation Playbooks"))
	b.WriteString("This directory contains per-commit playbooks for REIMPLEMENT decisions.\n")
	b.WriteString("Each playbook should be executed as a solo batch.\n")

	reimpl := decision.Filter(g.Classified, decision.Reimplement)
	if len(reimpl) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	items := make([]string, 0, len(reimpl))
	for _, c := range reimpl {
		items = append(items, fmt.Sprintf("%s — %s",
			projection.Link(projection.Code(c.Commit.Short), PlaybookFile(c.Commit.Short)), c.Commit.Subject))
	}
	b.WriteString(projection.RenderList(items))

	return b.String()
}

func (g *Generator) renderPlaybook(c decision.Classified) string {
	var b strings.Builder
	commit := c.Commit
	down := g.Config.Downstream.Name

	b.WriteString(projection.RenderHeader(1, fmt.Sprintf("Reimplement %s — %s", commit.Short, commit.Subject)))
	b.WriteString(fmt.Sprintf("Upstream: %s\n", commit.URL(g.Config.Upstream.Repository)))
	b.WriteString(fmt.Sprintf("Areas: %s\n", strings.Join(commit.Areas, ", ")))
	b.WriteString(fmt.Sprintf("Rationale: %s\n\n", c.Result.Rationale))

	b.WriteString(projection.RenderHeader(2, "Upstream Files"))
	if len(commit.Files) == 0 {
		b.WriteString("- (No files listed in inventory)\n")
	}
	for _, f := range commit.Files {
		if g.Files == nil {
			b.WriteString(fmt.Sprintf("- %s\n", projection.Code(f)))
			continue
		}
		exists := "NO"
		if g.Files.Exists(f) {
			exists = "YES"
		}
		b.WriteString(fmt.Sprintf("- %s (exists: %s)\n", projection.Code(f), exists))
	}
	b.WriteString("\n")

	b.WriteString(projection.RenderHeader(2, "Implementation Steps"))
	b.WriteString(fmt.Sprintf("1. Inspect upstream diff: %s.\n", projection.Code("git show "+commit.Short+" --stat")))
	b.WriteString(fmt.Sprintf("2. Review each touched file: %s.\n", projection.Code("git show "+commit.Short+" -- <file>")))
	b.WriteString(fmt.Sprintf("3. Apply equivalent changes in %s, adjusting for:\n", down))
	for _, item := range g.Config.PortingChecklist {
		b.WriteString(fmt.Sprintf("   - %s\n", item))
	}
	b.WriteString(fmt.Sprintf("4. If a referenced file is missing in %s, document NO_OP in %s and explain in %s.\n",
		down, AuditFile, NotesFile))
	b.WriteString(fmt.Sprintf("5. Run quick verify after implementation: %s.\n", andList(g.Config.Verify.Quick)))
	b.WriteString(fmt.Sprintf("6. Commit with: %s.\n", projection.Code(reimplementMessage(c))))
	b.WriteString(fmt.Sprintf("7. Update %s, append %s, and record in %s.\n", ProgressFile, NotesFile, AuditFile))

	return b.String()
}

func andList(cmds []string) string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, projection.Code(c))
	}
	return strings.Join(out, " and ")
}
