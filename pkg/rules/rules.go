/*
Package rules holds the static rule tables used by the ingredient cleaner.

The tables are data, not code: the builtin set ships as an embedded TOML
document and can be extended by a user file in TOML or YAML. Extension only
appends; builtin entries are never removed.

	r, err := rules.Load("my-rules.toml")
	cleaner, err := clean.New(r, clean.DefaultOptions())

# Layout

	substitution_adjectives = ["smoked", "fresh", ...]

	[[typos.specific]]
	pattern = 'Old\s+Bay\s+s\s+easoning'
	replace = 'Old Bay seasoning'

	[non_ingredient]
	words = ["served", "ramekin", ...]
	patterns = ['^served\s+with', ...]

	[trim]
	adjectives = ["chopped", "large", ...]
	protected = ["old bay", ...]

	[split]
	keep = ["salt and pepper", ...]
	patterns = ['\s+with\s+', ...]

Patterns are RE2 expressions; they are always matched case-insensitively.
*/
package rules

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed default_rules.toml
var defaultRules string

// Rules is the full set of tables the cleaner is built from.
type Rules struct {
	SubstitutionAdjectives []string           `toml:"substitution_adjectives" yaml:"substitution_adjectives"`
	Typos                  TypoRules          `toml:"typos" yaml:"typos"`
	NonIngredient          NonIngredientRules `toml:"non_ingredient" yaml:"non_ingredient"`
	Trim                   TrimRules          `toml:"trim" yaml:"trim"`
	Split                  SplitRules         `toml:"split" yaml:"split"`
}

// Replacement is a single regex rewrite.
type Replacement struct {
	Pattern string `toml:"pattern" yaml:"pattern"`
	Replace string `toml:"replace" yaml:"replace"`
}

// TypoRules are applied in three passes: Specific, Island, Glued.
type TypoRules struct {
	Specific []Replacement `toml:"specific" yaml:"specific"`
	Island   Replacement   `toml:"island" yaml:"island"`
	Glued    []Replacement `toml:"glued" yaml:"glued"`
}

// NonIngredientRules describe text that is structure or filler, not food.
type NonIngredientRules struct {
	Words    []string `toml:"words" yaml:"words"`
	Patterns []string `toml:"patterns" yaml:"patterns"`
}

// TrimRules list the generic adjectives that may be stripped.
type TrimRules struct {
	Adjectives []string `toml:"adjectives" yaml:"adjectives"`
	Protected  []string `toml:"protected" yaml:"protected"`
}

// SplitRules control compound splitting.
type SplitRules struct {
	Keep     []string `toml:"keep" yaml:"keep"`
	Patterns []string `toml:"patterns" yaml:"patterns"`
}

// Default returns a fresh copy of the builtin tables.
func Default() *Rules {
	r, err := Parse(defaultRules)
	if err != nil {
		// the embedded document is covered by tests
		panic(fmt.Sprintf("rules: builtin tables: %v", err))
	}
	return r
}

// Parse decodes a TOML rules document.
func Parse(doc string) (*Rules, error) {
	var r Rules
	if _, err := toml.Decode(doc, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Extend appends the entries of other to r. A non-empty island rule in other
// replaces the builtin one.
func (r *Rules) Extend(other *Rules) {
	if other == nil {
		return
	}
	r.SubstitutionAdjectives = append(r.SubstitutionAdjectives, other.SubstitutionAdjectives...)
	r.Typos.Specific = append(r.Typos.Specific, other.Typos.Specific...)
	if other.Typos.Island.Pattern != "" {
		r.Typos.Island = other.Typos.Island
	}
	r.Typos.Glued = append(r.Typos.Glued, other.Typos.Glued...)
	r.NonIngredient.Words = append(r.NonIngredient.Words, other.NonIngredient.Words...)
	r.NonIngredient.Patterns = append(r.NonIngredient.Patterns, other.NonIngredient.Patterns...)
	r.Trim.Adjectives = append(r.Trim.Adjectives, other.Trim.Adjectives...)
	r.Trim.Protected = append(r.Trim.Protected, other.Trim.Protected...)
	r.Split.Keep = append(r.Split.Keep, other.Split.Keep...)
	r.Split.Patterns = append(r.Split.Patterns, other.Split.Patterns...)
}

// Validate compiles every pattern once and reports the first one RE2 rejects.
func (r *Rules) Validate() error {
	check := func(section, pattern string) error {
		if _, err := Compile(pattern); err != nil {
			return fmt.Errorf("%s: %w", section, err)
		}
		return nil
	}
	for _, t := range r.Typos.Specific {
		if err := check("typos.specific", t.Pattern); err != nil {
			return err
		}
	}
	if r.Typos.Island.Pattern != "" {
		if err := check("typos.island", r.Typos.Island.Pattern); err != nil {
			return err
		}
	}
	for _, t := range r.Typos.Glued {
		if err := check("typos.glued", t.Pattern); err != nil {
			return err
		}
	}
	for _, p := range r.NonIngredient.Patterns {
		if err := check("non_ingredient.patterns", p); err != nil {
			return err
		}
	}
	for _, p := range r.Split.Patterns {
		if err := check("split.patterns", p); err != nil {
			return err
		}
	}
	return nil
}

// Compile compiles a rule pattern case-insensitively.
func Compile(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	return re, nil
}
