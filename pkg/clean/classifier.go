package clean

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bastiangx/menuclean/pkg/rules"
)

// Classifier recognizes filler and structural text that is not food.
type Classifier struct {
	words    map[string]struct{}
	patterns []*regexp.Regexp
}

// NewClassifier builds a classifier from the non-ingredient tables.
func NewClassifier(t rules.NonIngredientRules) (*Classifier, error) {
	words := make(map[string]struct{}, len(t.Words))
	for _, w := range t.Words {
		words[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	patterns := make([]*regexp.Regexp, 0, len(t.Patterns))
	for _, p := range t.Patterns {
		re, err := rules.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("non_ingredient.patterns: %w", err)
		}
		patterns = append(patterns, re)
	}
	return &Classifier{words: words, patterns: patterns}, nil
}

// IsNonIngredient reports whether text is an exact vocabulary entry or
// matches any non-ingredient pattern.
func (c *Classifier) IsNonIngredient(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if _, ok := c.words[lower]; ok {
		return true
	}
	for _, re := range c.patterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}
