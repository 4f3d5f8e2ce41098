// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bartekus/mergeplan/internal/decision"
	"github.com/bartekus/mergeplan/internal/projection"
)

var cherryColumns = []projection.Column{
	{Title: "#", Align: projection.AlignRight},
	{Title: "Commit", Align: projection.AlignLeft},
	{Title: "Date", Align: projection.AlignLeft},
	{Title: "Areas", Align: projection.AlignLeft},
	{Title: "Decision", Align: projection.AlignLeft},
	{Title: "Rationale", Align: projection.AlignLeft},
	{Title: "Subject", Align: projection.AlignLeft},
}

var summaryColumns = []projection.Column{
	{Title: "#", Align: projection.AlignRight},
	{Title: "Commit", Align: projection.AlignLeft},
	{Title: "Date", Align: projection.AlignLeft},
	{Title: "Rationale", Align: projection.AlignLeft},
	{Title: "Subject", Align: projection.AlignLeft},
}

func (g *Generator) renderCherries() string {
	var b strings.Builder
	counts := decision.Count(g.Classified)
	up := g.Config.Upstream

	b.WriteString(projection.RenderHeader(1, g.title(" cherry-pick candidates")))
	b.WriteString(fmt.Sprintf("Upstream: %s\n\n", up.Repository))
	b.WriteString(fmt.Sprintf("- Range: %s (%d commits)\n", projection.Code(up.Range()), counts.Total()))
	b.WriteString(fmt.Sprintf("- Recommended: %d PICK, %d REIMPLEMENT, %d SKIP\n\n",
		counts.Pick, counts.Reimplement, counts.Skip))

	if len(g.Config.Notes) > 0 {
		b.WriteString(projection.RenderHeader(2, "Decision Notes"))
		b.WriteString(projection.RenderList(g.Config.Notes))
		b.WriteString("\n")
	}

	b.WriteString(projection.RenderHeader(2, "Full Commit Table (chronological)"))
	rows := make([][]string, 0, len(g.Classified))
	for _, c := range g.Classified {
		rows = append(rows, []string{
			strconv.Itoa(c.Index),
			g.commitLink(c.Commit),
			projection.EscapeCell(c.Commit.Date),
			projection.EscapeCell(strings.Join(c.Commit.Areas, ", ")),
			string(c.Result.Decision),
			projection.EscapeCell(c.Result.Rationale),
			projection.EscapeCell(c.Commit.Subject),
		})
	}
	b.WriteString(projection.RenderAlignedTable(cherryColumns, rows))

	return b.String()
}

func (g *Generator) renderSummary() string {
	var b strings.Builder
	counts := decision.Count(g.Classified)

	b.WriteString(projection.RenderHeader(1, g.title(": Recommended cherry-picks")))
	b.WriteString(fmt.Sprintf("This is a subset view of %s focusing on actionable changes.\n\n", projection.Code(CherriesFile)))
	if issue := g.Config.Downstream.TrackingIssue; issue != "" {
		b.WriteString(fmt.Sprintf("Tracking issue: %s\n\n", issue))
	}
	b.WriteString(fmt.Sprintf("Total commits: %d; PICK %d, REIMPLEMENT %d, SKIP %d\n\n",
		counts.Total(), counts.Pick, counts.Reimplement, counts.Skip))

	b.WriteString(projection.RenderHeader(2, "PICK (apply as commits)"))
	b.WriteString(projection.RenderAlignedTable(summaryColumns, g.summaryRows(decision.Pick)))
	b.WriteString("\n")

	b.WriteString(projection.RenderHeader(2, "REIMPLEMENT (port manually)"))
	b.WriteString(projection.RenderAlignedTable(summaryColumns, g.summaryRows(decision.Reimplement)))

	return b.String()
}

func (g *Generator) summaryRows(d decision.Decision) [][]string {
	selected := decision.Filter(g.Classified, d)
	rows := make([][]string, 0, len(selected))
	for i, c := range selected {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			g.commitLink(c.Commit),
			projection.EscapeCell(c.Commit.Date),
			projection.EscapeCell(c.Result.Rationale),
			projection.EscapeCell(c.Commit.Subject),
		})
	}
	return rows
}
