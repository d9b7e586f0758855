/*
Package clean turns raw menu ingredient strings into a short, deduplicated,
sorted list.

Every raw string goes through the same pipeline:

	split -> correct -> classify -> trim -> dedupe

The Splitter breaks compound phrases ("butter with white wine"), the
Corrector repairs known typos ("Old Bay s easoning"), the Classifier drops
filler ("served with", "10 oz"), the Trimmer strips one generic leading
adjective and the deduplicator merges entries that share a normalization
key, differ only by a plural "s", or nearly contain each other.

Adjectives that pick a physical variant of an ingredient ("smoked",
"fresh", "grilled") are never trimmed, and when a plain and an adjective
form of the same ingredient meet, the adjective form wins:

	c, _ := clean.New(rules.Default(), clean.DefaultOptions())
	c.Clean([]string{"bacon", "smoked bacon"}) // ["smoked bacon"]

A Cleaner is immutable once built and safe for concurrent use.
*/
package clean

import (
	"fmt"
	"strings"

	"github.com/bastiangx/menuclean/internal/utils"
	"github.com/bastiangx/menuclean/pkg/rules"
)

// Options holds the length guards of the pipeline, in characters.
type Options struct {
	// MinLength rejects cleaned ingredients shorter than this.
	MinLength int
	// MaxLength rejects corrected strings longer than this; long strings are
	// almost always mis-parsed sentences.
	MaxLength int
	// MinFragmentLength is the shortest split part that is kept.
	MinFragmentLength int
}

// DefaultOptions returns the stock length guards.
func DefaultOptions() Options {
	return Options{
		MinLength:         2,
		MaxLength:         50,
		MinFragmentLength: 3,
	}
}

// Cleaner runs the whole pipeline.
type Cleaner struct {
	corrector  *Corrector
	classifier *Classifier
	trimmer    *Trimmer
	splitter   *Splitter
	opts       Options
}

// New compiles r into a Cleaner.
func New(r *rules.Rules, opts Options) (*Cleaner, error) {
	if r == nil {
		r = rules.Default()
	}
	if opts.MinLength <= 0 || opts.MaxLength < opts.MinLength || opts.MinFragmentLength < 0 {
		return nil, fmt.Errorf("invalid length options: min=%d max=%d fragment=%d",
			opts.MinLength, opts.MaxLength, opts.MinFragmentLength)
	}

	corrector, err := NewCorrector(r.Typos)
	if err != nil {
		return nil, err
	}
	classifier, err := NewClassifier(r.NonIngredient)
	if err != nil {
		return nil, err
	}
	splitter, err := NewSplitter(r.Split, classifier, opts.MinFragmentLength)
	if err != nil {
		return nil, err
	}

	return &Cleaner{
		corrector:  corrector,
		classifier: classifier,
		trimmer:    NewTrimmer(r.SubstitutionAdjectives, r.Trim),
		splitter:   splitter,
		opts:       opts,
	}, nil
}

// Corrector returns the typo corrector used by c.
func (c *Cleaner) Corrector() *Corrector { return c.corrector }

// Classifier returns the non-ingredient classifier used by c.
func (c *Cleaner) Classifier() *Classifier { return c.classifier }

// Trimmer returns the adjective trimmer used by c.
func (c *Cleaner) Trimmer() *Trimmer { return c.trimmer }

// Splitter returns the compound splitter used by c.
func (c *Cleaner) Splitter() *Splitter { return c.splitter }

// CleanOne cleans a single, already split, ingredient. The boolean is false
// when the string is rejected.
func (c *Cleaner) CleanOne(raw string) (string, bool) {
	s := c.corrector.Correct(utils.TrimRightSpace(raw))
	if utils.RuneLen(s) < c.opts.MinLength {
		return "", false
	}
	if c.classifier.IsNonIngredient(s) {
		return "", false
	}
	if utils.RuneLen(s) > c.opts.MaxLength {
		return "", false
	}

	s = strings.TrimSpace(c.trimmer.Trim(s))
	if utils.RuneLen(s) < c.opts.MinLength {
		return "", false
	}
	return s, true
}

// Clean splits, cleans and deduplicates raw and returns the survivors
// sorted case-insensitively. The result is never nil.
func (c *Cleaner) Clean(raw []string) []string {
	idx := newOrderedIndex()
	for _, ing := range raw {
		for _, part := range c.splitter.Split(ing) {
			cleaned, ok := c.CleanOne(part)
			if !ok {
				continue
			}
			c.resolve(idx, cleaned)
		}
	}
	return idx.sorted()
}
