// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mergeplan - Cherry-pick decision and batch planning reports for downstream forks.
It classifies upstream commits, groups the actionable ones into batches and generates deterministic Markdown planning artifacts.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package config loads the per-merge plan configuration (mergeplan.yaml).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/mergeplan/internal/batch"
	"github.com/bartekus/mergeplan/internal/decision"
)

// DefaultFileName is the config file looked up in the plan directory.
const DefaultFileName = "mergeplan.yaml"

// DefaultDecisionsFile is used when the config names no decisions file.
const DefaultDecisionsFile = "decisions.yaml"

// Upstream describes the project commits are taken from.
type Upstream struct {
	Name       string `yaml:"name"`
	Repository string `yaml:"repository"`
	From       string `yaml:"from"`
	To         string `yaml:"to"`
}

// Range renders the upstream range as from..to.
func (u Upstream) Range() string {
	return u.From + ".." + u.To
}

// Downstream describes the fork receiving the commits.
type Downstream struct {
	Name          string `yaml:"name"`
	Branch        string `yaml:"branch"`
	TrackingIssue string `yaml:"tracking_issue"`
}

// Batching holds batch planner settings.
type Batching struct {
	GroupSize int      `yaml:"group_size"`
	Solo      []string `yaml:"solo"`
}

// Verify lists the commands for each verification cadence.
type Verify struct {
	Quick []string `yaml:"quick"`
	Full  []string `yaml:"full"`
}

// Config is one merge plan's configuration.
type Config struct {
	Upstream         Upstream            `yaml:"upstream"`
	Downstream       Downstream          `yaml:"downstream"`
	Inventory        string              `yaml:"inventory"`
	Decisions        string              `yaml:"decisions"`
	PlanDir          string              `yaml:"plan_dir"`
	References       []string            `yaml:"references"`
	Batching         Batching            `yaml:"batching"`
	Verify           Verify              `yaml:"verify"`
	Notes            []string            `yaml:"notes"`
	NonNegotiables   []string            `yaml:"non_negotiables"`
	Branding         []string            `yaml:"branding"`
	PortingChecklist []string            `yaml:"porting_checklist"`
	Heuristics       decision.Heuristics `yaml:"heuristics"`

	// dir is the directory the config was loaded from; relative paths resolve against it.
	dir string
	// decisionsDefaulted is set when the file did not name a decisions path.
	decisionsDefaulted bool
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	cfg.dir = abs

	return cfg, nil
}

// Parse decodes config YAML, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Batching.GroupSize == 0 {
		c.Batching.GroupSize = batch.DefaultGroupSize
	}
	if c.Decisions == "" {
		c.Decisions = DefaultDecisionsFile
		c.decisionsDefaulted = true
	}
	if len(c.Verify.Quick) == 0 {
		c.Verify.Quick = []string{"npm run lint", "npm run typecheck"}
	}
	if len(c.Verify.Full) == 0 {
		c.Verify.Full = []string{"npm run lint", "npm run typecheck", "npm run test", "npm run format", "npm run build"}
	}
	if len(c.PortingChecklist) == 0 {
		c.PortingChecklist = []string{
			"Downstream architecture (no upstream-only code paths).",
			"Downstream logging and telemetry model.",
			"Canonical downstream tool names.",
		}
	}
	c.Heuristics = c.Heuristics.WithDefaults()
}

// Validate checks required fields and batching settings.
func (c *Config) Validate() error {
	if c.Upstream.Name == "" {
		return fmt.Errorf("upstream.name is required")
	}
	if c.Upstream.Repository == "" {
		return fmt.Errorf("upstream.repository is required")
	}
	if c.Upstream.From == "" || c.Upstream.To == "" {
		return fmt.Errorf("upstream.from and upstream.to are required")
	}
	if c.Downstream.Name == "" {
		return fmt.Errorf("downstream.name is required")
	}
	if c.Inventory == "" {
		return fmt.Errorf("inventory is required")
	}
	if c.Batching.GroupSize < 1 {
		return fmt.Errorf("batching.group_size must be at least 1, got %d", c.Batching.GroupSize)
	}

	seen := make(map[string]bool, len(c.Batching.Solo))
	for _, s := range c.Batching.Solo {
		if s == "" {
			return fmt.Errorf("batching.solo contains an empty id")
		}
		if seen[s] {
			return fmt.Errorf("batching.solo lists %s more than once", s)
		}
		seen[s] = true
	}

	return nil
}

// Dir returns the directory the config was loaded from.
func (c *Config) Dir() string { return c.dir }

// Resolve makes p absolute relative to the config directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// InventoryPath returns the resolved commit inventory path.
func (c *Config) InventoryPath() string { return c.Resolve(c.Inventory) }

// DecisionsPath returns the resolved decisions file path.
func (c *Config) DecisionsPath() string { return c.Resolve(c.Decisions) }

// DecisionsOptional reports whether a missing decisions file may be ignored.
// Only the defaulted path is optional; an explicitly named file must exist.
func (c *Config) DecisionsOptional() bool { return c.decisionsDefaulted }

// BatchConfig converts the batching section for the planner.
func (c *Config) BatchConfig() batch.Config {
	return batch.NewConfig(c.Batching.GroupSize, c.Batching.Solo...)
}
