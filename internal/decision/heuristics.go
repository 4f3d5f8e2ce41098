// SPDX-License-Identifier: AGPL-3.0-or-later
package decision

// AreaSkip skips commits whose areas consist of Area alone.
type AreaSkip struct {
	Area      string `yaml:"area"`
	Rationale string `yaml:"rationale"`
}

// TopicSkip skips commits whose subject mentions any of Phrases.
type TopicSkip struct {
	Phrases   []string `yaml:"phrases"`
	Rationale string   `yaml:"rationale"`
}

// Heuristics parameterizes the fallback rules. Only the values are configurable;
// the order the rules run in is fixed by Rules.
type Heuristics struct {
	TelemetryPatterns []string    `yaml:"telemetry_patterns"`
	ReleasePrefixes   []string    `yaml:"release_prefixes"`
	ReleasePhrases    []string    `yaml:"release_phrases"`
	RevertPrefix      string      `yaml:"revert_prefix"`
	AreaSkips         []AreaSkip  `yaml:"area_skips"`
	TopicSkips        []TopicSkip `yaml:"topic_skips"`
	MarkdownMarkers   []string    `yaml:"markdown_markers"`
	PublishMarker     string      `yaml:"publish_marker"`
	PublishWords      []string    `yaml:"publish_words"`
}

// DefaultHeuristics returns the stock fallback parameters.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		TelemetryPatterns: []string{"clearcut-logger"},
		ReleasePrefixes:   []string{"chore(release):", "fix(patch):"},
		ReleasePhrases:    []string{"pre releases"},
		RevertPrefix:      "revert ",
		AreaSkips: []AreaSkip{
			{Area: "docs", Rationale: "docs only"},
			{Area: "github", Rationale: "CI/workflow only"},
			{Area: "integration-tests", Rationale: "upstream integration tests only"},
		},
		TopicSkips: []TopicSkip{
			{Phrases: []string{"model routing", "fallback"}, Rationale: "model routing/fallback not used"},
			{Phrases: []string{"codebase investigator"}, Rationale: "codebase investigator disabled"},
		},
		MarkdownMarkers: []string{"cleanup(markdown)"},
		PublishMarker:   "a2a",
		PublishWords:    []string{"publish", "publishing"},
	}
}

// WithDefaults fills every unset field from DefaultHeuristics.
func (h Heuristics) WithDefaults() Heuristics {
	d := DefaultHeuristics()
	if len(h.TelemetryPatterns) == 0 {
		h.TelemetryPatterns = d.TelemetryPatterns
	}
	if len(h.ReleasePrefixes) == 0 {
		h.ReleasePrefixes = d.ReleasePrefixes
	}
	if len(h.ReleasePhrases) == 0 {
		h.ReleasePhrases = d.ReleasePhrases
	}
	if h.RevertPrefix == "" {
		h.RevertPrefix = d.RevertPrefix
	}
	if len(h.AreaSkips) == 0 {
		h.AreaSkips = d.AreaSkips
	}
	if len(h.TopicSkips) == 0 {
		h.TopicSkips = d.TopicSkips
	}
	if len(h.MarkdownMarkers) == 0 {
		h.MarkdownMarkers = d.MarkdownMarkers
	}
	if h.PublishMarker == "" {
		h.PublishMarker = d.PublishMarker
	}
	if len(h.PublishWords) == 0 {
		h.PublishWords = d.PublishWords
	}
	return h
}
