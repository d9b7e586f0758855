package clean

import (
	"regexp"
	"slices"
	"strings"

	"github.com/bastiangx/menuclean/internal/utils"
	"github.com/bastiangx/menuclean/pkg/rules"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Trimmer strips generic descriptive adjectives while leaving any
// ingredient that names a substitution variant untouched.
type Trimmer struct {
	substitutions []string
	protected     []string
	adjectives    *patricia.Trie
	variant       *regexp.Regexp
}

// NewTrimmer builds a trimmer from the substitution set and trim tables.
func NewTrimmer(substitutions []string, t rules.TrimRules) *Trimmer {
	tr := &Trimmer{adjectives: patricia.NewTrie()}

	for _, s := range substitutions {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			tr.substitutions = append(tr.substitutions, s)
		}
	}
	for _, p := range t.Protected {
		if p = Key(p); p != "" {
			tr.protected = append(tr.protected, p)
		}
	}
	for _, a := range t.Adjectives {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		tr.adjectives.Insert(patricia.Prefix(a), a)
	}
	tr.variant = substitutionPattern(tr.substitutions)
	return tr
}

// substitutionPattern matches any substitution adjective as a whole word,
// longest first so "sun dried" wins over "dried".
func substitutionPattern(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	sorted := slices.Clone(words)
	slices.SortFunc(sorted, func(a, b string) int {
		return len(b) - len(a)
	})
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// ShouldKeep reports whether s contains a substitution adjective anywhere.
// The test is a plain substring match.
func (t *Trimmer) ShouldKeep(s string) bool {
	lower := strings.ToLower(s)
	for _, adj := range t.substitutions {
		if strings.Contains(lower, adj) {
			return true
		}
	}
	return false
}

// Trim removes at most one leading generic adjective and collapses
// whitespace. Ingredients that ShouldKeep are returned unchanged.
func (t *Trimmer) Trim(s string) string {
	if t.ShouldKeep(s) {
		return s
	}

	key := Key(s)
	for _, p := range t.protected {
		if key == p || strings.HasPrefix(key, p+" ") {
			return utils.CollapseSpaces(s)
		}
	}

	if n := t.leadingAdjective(s); n > 0 {
		s = s[n:]
	}
	return utils.CollapseSpaces(s)
}

// leadingAdjective returns the byte length of the adjective that starts s,
// or 0. The adjective must be followed by whitespace.
func (t *Trimmer) leadingAdjective(s string) int {
	lower := strings.ToLower(s)
	cut := 0
	err := t.adjectives.VisitPrefixes(patricia.Prefix(lower), func(p patricia.Prefix, item patricia.Item) error {
		n := len(p)
		if n > len(s) || !strings.EqualFold(s[:n], string(p)) {
			return nil
		}
		if utils.StartsWithSpace(s[n:]) {
			cut = n
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting adjective prefixes: %v", err)
		return 0
	}
	return cut
}

// StripSubstitutions removes whole-word substitution adjectives from a key.
func (t *Trimmer) StripSubstitutions(key string) string {
	if t.variant == nil {
		return key
	}
	return utils.CollapseSpaces(t.variant.ReplaceAllString(key, " "))
}
