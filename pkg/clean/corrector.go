package clean

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bastiangx/menuclean/pkg/rules"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// Corrector repairs known spelling and spacing defects.
type Corrector struct {
	specific []rewrite
	island   *rewrite
	glued    []rewrite
}

// NewCorrector compiles the typo tables.
func NewCorrector(t rules.TypoRules) (*Corrector, error) {
	c := &Corrector{}
	var err error
	if c.specific, err = compileRewrites(t.Specific); err != nil {
		return nil, fmt.Errorf("typos.specific: %w", err)
	}
	if t.Island.Pattern != "" {
		re, err := rules.Compile(t.Island.Pattern)
		if err != nil {
			return nil, fmt.Errorf("typos.island: %w", err)
		}
		c.island = &rewrite{re: re, repl: t.Island.Replace}
	}
	if c.glued, err = compileRewrites(t.Glued); err != nil {
		return nil, fmt.Errorf("typos.glued: %w", err)
	}
	return c, nil
}

func compileRewrites(in []rules.Replacement) ([]rewrite, error) {
	out := make([]rewrite, 0, len(in))
	for _, r := range in {
		re, err := rules.Compile(r.Pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, rewrite{re: re, repl: r.Replace})
	}
	return out, nil
}

// Correct applies the specific rewrites, then the single-letter island
// repair, then the glued-word splits. The specific rules must run first or
// the island repair would swallow multi-word names.
func (c *Corrector) Correct(raw string) string {
	text := raw
	for _, r := range c.specific {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	if c.island != nil {
		text = c.island.re.ReplaceAllString(text, c.island.repl)
	}
	for _, r := range c.glued {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return strings.TrimSpace(text)
}
