// SPDX-License-Identifier: AGPL-3.0-or-later

// Package termstyle colors command output when it goes to a terminal.
package termstyle

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/bartekus/mergeplan/internal/decision"
)

const defaultWidth = 80

// Enabled reports whether w is a terminal and NO_COLOR is unset.
func Enabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, defaulting to 80.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// Styles renders labels. The zero value renders plain text.
type Styles struct {
	enabled bool

	pick        lipgloss.Style
	skip        lipgloss.Style
	reimplement lipgloss.Style
	heading     lipgloss.Style
	dim         lipgloss.Style
}

// New returns styles for w, plain unless w is a color terminal.
func New(w io.Writer) Styles {
	if !Enabled(w) {
		return Styles{}
	}
	return Styles{
		enabled:     true,
		pick:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3FB950")),
		skip:        lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		reimplement: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D29922")),
		heading:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		dim:         lipgloss.NewStyle().Faint(true),
	}
}

func (s Styles) Decision(d decision.Decision) string {
	label := string(d)
	if !s.enabled {
		return label
	}
	switch d {
	case decision.Pick:
		return s.pick.Render(label)
	case decision.Reimplement:
		return s.reimplement.Render(label)
	default:
		return s.skip.Render(label)
	}
}

func (s Styles) Heading(text string) string {
	if !s.enabled {
		return text
	}
	return s.heading.Render(text)
}

func (s Styles) Dim(text string) string {
	if !s.enabled {
		return text
	}
	return s.dim.Render(text)
}
