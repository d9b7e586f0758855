package clean

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bastiangx/menuclean/internal/utils"
	"github.com/bastiangx/menuclean/pkg/rules"
)

// Splitter breaks a compound ingredient string into its parts.
type Splitter struct {
	keep        []string
	patterns    []*regexp.Regexp
	classifier  *Classifier
	minFragment int
}

// NewSplitter compiles the split tables. Parts shorter than minFragment
// characters, or classified as non-ingredients, are discarded.
func NewSplitter(t rules.SplitRules, classifier *Classifier, minFragment int) (*Splitter, error) {
	s := &Splitter{classifier: classifier, minFragment: minFragment}
	for _, k := range t.Keep {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			s.keep = append(s.keep, k)
		}
	}
	for _, p := range t.Patterns {
		re, err := rules.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("split.patterns: %w", err)
		}
		s.patterns = append(s.patterns, re)
	}
	return s, nil
}

// Split returns the ingredient parts of s. Whitelisted compounds come back
// whole. The patterns run in order over the output of the previous one; an
// item whose parts are all discarded disappears.
func (s *Splitter) Split(ingredient string) []string {
	lower := strings.ToLower(ingredient)
	for _, k := range s.keep {
		if strings.Contains(lower, k) {
			return []string{ingredient}
		}
	}

	results := []string{ingredient}
	for _, re := range s.patterns {
		next := make([]string, 0, len(results))
		for _, item := range results {
			if !re.MatchString(item) {
				next = append(next, item)
				continue
			}
			for _, part := range re.Split(item, -1) {
				if s.keepPart(part) {
					next = append(next, strings.TrimSpace(part))
				}
			}
		}
		results = next
	}
	return results
}

func (s *Splitter) keepPart(part string) bool {
	part = strings.TrimSpace(part)
	if part == "" || utils.RuneLen(part) < s.minFragment {
		return false
	}
	return s.classifier == nil || !s.classifier.IsNonIngredient(part)
}
