// SPDX-License-Identifier: AGPL-3.0-or-later
package decision

import (
	"strings"

	"github.com/bartekus/mergeplan/internal/inventory"
)

// Fixed fallback rationales.
const (
	RationaleTelemetry  = "touches disallowed telemetry component"
	RationaleRelease    = "upstream release/versioning"
	RationaleRevert     = "upstream revert"
	RationaleMarkdown   = "formatting churn"
	RationalePublishing = "publishing process excluded"
	RationaleDefault    = "not selected (low value or conflicts)"
)

// Rule names reported in Result.Rule.
const (
	RuleOverride   = "override"
	RuleTelemetry  = "telemetry"
	RuleRelease    = "release"
	RuleRevert     = "revert"
	RuleMarkdown   = "markdown"
	RulePublishing = "publishing"
	RuleDefault    = "default"
)

// Result is the classification of one commit.
type Result struct {
	Decision  Decision
	Rationale string
	Rule      string
}

// Classified pairs a commit with its result and 1-based chronological position.
type Classified struct {
	Index  int
	Commit inventory.Commit
	Result Result
}

// Rule is one fallback check. Subject is passed lower-cased.
type Rule struct {
	Name      string
	Decision  Decision
	Rationale string
	Match     func(c inventory.Commit, subject string) bool
}

// Rules builds the fallback chain. The order is part of the contract:
// structural checks (telemetry paths) dominate subject keywords.
func Rules(h Heuristics) []Rule {
	h = h.WithDefaults()
	rules := []Rule{
		{
			Name: RuleTelemetry, Decision: Skip, Rationale: RationaleTelemetry,
			Match: func(c inventory.Commit, _ string) bool {
				for _, f := range c.Files {
					if containsAny(f, h.TelemetryPatterns) {
						return true
					}
				}
				return false
			},
		},
		{
			Name: RuleRelease, Decision: Skip, Rationale: RationaleRelease,
			Match: func(_ inventory.Commit, subject string) bool {
				return hasAnyPrefix(subject, lowerAll(h.ReleasePrefixes)) ||
					containsAny(subject, lowerAll(h.ReleasePhrases))
			},
		},
		{
			Name: RuleRevert, Decision: Skip, Rationale: RationaleRevert,
			Match: func(_ inventory.Commit, subject string) bool {
				return strings.HasPrefix(subject, strings.ToLower(h.RevertPrefix))
			},
		},
	}

	for _, a := range h.AreaSkips {
		area := a.Area
		rules = append(rules, Rule{
			Name: "area:" + area, Decision: Skip, Rationale: a.Rationale,
			Match: func(c inventory.Commit, _ string) bool {
				return onlyArea(c.Areas, area)
			},
		})
	}

	for _, t := range h.TopicSkips {
		phrases := lowerAll(t.Phrases)
		rules = append(rules, Rule{
			Name: "topic:" + strings.Join(phrases, "|"), Decision: Skip, Rationale: t.Rationale,
			Match: func(_ inventory.Commit, subject string) bool {
				return containsAny(subject, phrases)
			},
		})
	}

	marker := strings.ToLower(h.PublishMarker)
	words := lowerAll(h.PublishWords)
	rules = append(rules,
		Rule{
			Name: RuleMarkdown, Decision: Skip, Rationale: RationaleMarkdown,
			Match: func(_ inventory.Commit, subject string) bool {
				return containsAny(subject, lowerAll(h.MarkdownMarkers))
			},
		},
		Rule{
			Name: RulePublishing, Decision: Skip, Rationale: RationalePublishing,
			Match: func(_ inventory.Commit, subject string) bool {
				return strings.Contains(subject, marker) && containsAny(subject, words)
			},
		},
	)

	return rules
}

// Classifier maps commits to decisions: the override table first, then the fallback rules.
type Classifier struct {
	table      *Table
	rules      []Rule
	downstream string
}

// NewClassifier builds a classifier. A nil table behaves as an empty one.
func NewClassifier(table *Table, h Heuristics, downstream string) *Classifier {
	return &Classifier{
		table:      table,
		rules:      Rules(h),
		downstream: downstream,
	}
}

// RuleNames lists the fallback rules in evaluation order.
func (c *Classifier) RuleNames() []string {
	names := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		names = append(names, r.Name)
	}
	return names
}

// Classify returns the decision for one commit. It never fails.
func (c *Classifier) Classify(commit inventory.Commit) Result {
	if o, ok := c.table.Lookup(commit.Short); ok {
		rationale := o.Rationale
		if rationale == "" {
			rationale = DefaultRationale(o.Decision, c.downstream)
		}
		return Result{Decision: o.Decision, Rationale: rationale, Rule: RuleOverride}
	}

	subject := strings.ToLower(commit.Subject)
	for _, r := range c.rules {
		if r.Match(commit, subject) {
			return Result{Decision: r.Decision, Rationale: r.Rationale, Rule: r.Name}
		}
	}

	return Result{Decision: Skip, Rationale: RationaleDefault, Rule: RuleDefault}
}

// ClassifyAll classifies commits in their input order.
func (c *Classifier) ClassifyAll(commits []inventory.Commit) []Classified {
	out := make([]Classified, 0, len(commits))
	for i, commit := range commits {
		out = append(out, Classified{Index: i + 1, Commit: commit, Result: c.Classify(commit)})
	}
	return out
}

// Counts tallies decisions.
type Counts struct {
	Pick        int
	Skip        int
	Reimplement int
}

// Total returns the number of classified commits.
func (c Counts) Total() int { return c.Pick + c.Skip + c.Reimplement }

// Count tallies classified commits by decision.
func Count(classified []Classified) Counts {
	var c Counts
	for _, cl := range classified {
		switch cl.Result.Decision {
		case Pick:
			c.Pick++
		case Reimplement:
			c.Reimplement++
		default:
			c.Skip++
		}
	}
	return c
}

// Filter returns the classified commits carrying decision d.
func Filter(classified []Classified, d Decision) []Classified {
	var out []Classified
	for _, cl := range classified {
		if cl.Result.Decision == d {
			out = append(out, cl)
		}
	}
	return out
}

func onlyArea(areas []string, area string) bool {
	if len(areas) == 0 {
		return false
	}
	for _, a := range areas {
		if a != area {
			return false
		}
	}
	return true
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
