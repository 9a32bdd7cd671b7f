// Package config loads engine configuration from TOML: per-level
// numbering schemes, the renumber debounce interval, and the mutation
// policies the engine treats as explicit decisions.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/listcraft/internal/doctree"
)

// Config is the full engine configuration.
type Config struct {
	Numbering NumberingConfig `toml:"numbering"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Policy    PolicyConfig    `toml:"policy"`
}

// NumberingConfig selects marker styles for numbered lists by level.
type NumberingConfig struct {
	// Levels holds style names level by level; unnamed levels use the
	// built-in defaults (decimal, lower-alpha, lower-roman, decimal).
	Levels []string `toml:"levels"`
}

// ScheduleConfig tunes the renumber scheduler.
type ScheduleConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// PolicyConfig exposes the mutation rules that are policy, not
// hard-coded behavior.
type PolicyConfig struct {
	// NestedOrdinalStyle names the style for a nested list freshly
	// created by indenting out of an ordinal list.
	NestedOrdinalStyle string `toml:"nested_ordinal_style"`

	// OutdentReconvert lets a demoted item rejoin a decimal run on
	// outdent.
	OutdentReconvert bool `toml:"outdent_reconvert"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Schedule: ScheduleConfig{DebounceMS: 500},
		Policy: PolicyConfig{
			NestedOrdinalStyle: doctree.Disc.String(),
			OutdentReconvert:   true,
		},
	}
}

// Load reads TOML configuration from path, layered over the defaults.
// A missing file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks that every named style resolves.
func (c Config) Validate() error {
	for i, name := range c.Numbering.Levels {
		if _, err := doctree.ParseMarkerStyle(name); err != nil {
			return fmt.Errorf("numbering.levels[%d]: %w", i, err)
		}
	}
	if c.Policy.NestedOrdinalStyle != "" {
		if _, err := doctree.ParseMarkerStyle(c.Policy.NestedOrdinalStyle); err != nil {
			return fmt.Errorf("policy.nested_ordinal_style: %w", err)
		}
	}
	if c.Schedule.DebounceMS < 0 {
		return fmt.Errorf("schedule.debounce_ms must not be negative, got %d", c.Schedule.DebounceMS)
	}
	return nil
}

// Debounce returns the scheduler interval.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Schedule.DebounceMS) * time.Millisecond
}

// LevelStyles resolves the configured per-level styles. Call only after
// Validate (Load validates); unknown names have already been rejected.
func (c Config) LevelStyles() []doctree.MarkerStyle {
	out := make([]doctree.MarkerStyle, 0, len(c.Numbering.Levels))
	for _, name := range c.Numbering.Levels {
		s, err := doctree.ParseMarkerStyle(name)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

// NestedOrdinalStyle resolves the policy style, defaulting to disc.
func (c Config) NestedOrdinalStyle() doctree.MarkerStyle {
	if c.Policy.NestedOrdinalStyle == "" {
		return doctree.Disc
	}
	s, err := doctree.ParseMarkerStyle(c.Policy.NestedOrdinalStyle)
	if err != nil {
		return doctree.Disc
	}
	return s
}
