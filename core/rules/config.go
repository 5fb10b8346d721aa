// Package rules decides which entity category, if any, applies to a
// token, and detects multi-token phrase matches over windows of
// contiguous tokens.
//
// Categories are configured as one or more match strategies (surface
// text, Strong's number, or lemma, each against a gazetteer) plus a
// priority list that totally orders category names. Phrase gazetteers
// are declared separately; phrase labels always override single-token
// decisions for the tokens they cover.
package rules

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/Silversmith/core/errors"
)

// StrategyKind identifies a match strategy.
type StrategyKind string

// Strategy kind constants. The set is closed: dispatch is an explicit
// switch on the kind, never runtime type inspection.
const (
	KindSurface StrategyKind = "surface"
	KindStrongs StrategyKind = "strongs"
	KindLemma   StrategyKind = "lemma"
)

// validStrategyKinds is the set of valid strategy kinds.
var validStrategyKinds = map[StrategyKind]bool{
	KindSurface: true,
	KindStrongs: true,
	KindLemma:   true,
}

// IsValid returns true if the strategy kind is valid.
func (k StrategyKind) IsValid() bool {
	return validStrategyKinds[k]
}

// StrategyConfig declares one match strategy for a category.
type StrategyConfig struct {
	// Kind is the match strategy kind (surface, strongs, lemma).
	Kind StrategyKind `yaml:"kind"`

	// Gazetteer is the gazetteer file path, relative to the config file.
	Gazetteer string `yaml:"gazetteer"`

	// CaseSensitive controls whether matching preserves case.
	CaseSensitive bool `yaml:"case_sensitive"`
}

// CategoryConfig declares the strategies for one entity category.
type CategoryConfig struct {
	Strategies []StrategyConfig `yaml:"strategies"`
}

// PhraseConfig declares a multi-token phrase gazetteer for a category.
type PhraseConfig struct {
	// Gazetteer is the phrase gazetteer file path, relative to the config file.
	Gazetteer string `yaml:"gazetteer"`

	// CaseSensitive controls whether phrase matching preserves case.
	CaseSensitive bool `yaml:"case_sensitive"`
}

// Config is the label rule configuration document.
type Config struct {
	// SchemaVersion tags the config document format.
	SchemaVersion string `yaml:"schema_version"`

	// Priority is the explicit total order over category names.
	// The first category with a satisfied strategy wins. Required.
	Priority []string `yaml:"priority"`

	// Categories maps category name to its match strategies.
	Categories map[string]CategoryConfig `yaml:"categories"`

	// Phrases maps category name to its phrase gazetteer.
	Phrases map[string]PhraseConfig `yaml:"phrases"`

	// baseDir resolves relative gazetteer paths; set by LoadConfig.
	baseDir string
}

// LoadConfig reads and validates a YAML rule configuration file.
// Relative gazetteer paths are resolved against the config file's
// directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &errors.ParseError{Format: "YAML", Path: path, Message: err.Error(), Err: err}
	}
	cfg.baseDir = filepath.Dir(path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for fatal errors. A missing or
// empty priority list is fatal: every downstream decision depends on it.
func (c *Config) Validate() error {
	if len(c.Priority) == 0 {
		return errors.NewConfig("priority", "priority list is required and cannot be empty")
	}

	seen := make(map[string]bool, len(c.Priority))
	for _, name := range c.Priority {
		if name == "" {
			return errors.NewConfig("priority", "priority entries cannot be empty")
		}
		if seen[name] {
			return errors.NewConfig("priority", "duplicate category "+name)
		}
		seen[name] = true
	}

	for name, cat := range c.Categories {
		if len(cat.Strategies) == 0 {
			return errors.NewConfig("categories."+name, "at least one strategy is required")
		}
		for _, s := range cat.Strategies {
			if !s.Kind.IsValid() {
				return errors.NewConfig("categories."+name,
					"unknown strategy kind "+string(s.Kind))
			}
			if s.Gazetteer == "" {
				return errors.NewConfig("categories."+name, "strategy gazetteer is required")
			}
		}
	}

	for name, p := range c.Phrases {
		if p.Gazetteer == "" {
			return errors.NewConfig("phrases."+name, "phrase gazetteer is required")
		}
	}

	return nil
}

// Labels returns the sorted union of category and phrase label names.
func (c *Config) Labels() []string {
	set := make(map[string]bool, len(c.Categories)+len(c.Phrases))
	for name := range c.Categories {
		set[name] = true
	}
	for name := range c.Phrases {
		set[name] = true
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// resolvePath resolves a gazetteer path against the config directory.
func (c *Config) resolvePath(p string) string {
	if filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}
