/*
Package menu reads and rewrites the generated menu data module.

The file is TypeScript that wraps a JSON array of menu items:

	export const menuItems: MenuItem[] = [ ... ] as MenuItem[];

Only the array is touched. Each record's "ingredients" array is replaced with
the cleaned list; every other field keeps its exact bytes and position. The
text around the array is written back verbatim.
*/
package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	// ErrArrayNotFound means the menuItems declaration is missing.
	ErrArrayNotFound = errors.New("menuItems array not found")
	// ErrMalformed means the declaration was found but is not a JSON array.
	ErrMalformed = errors.New("menuItems array is malformed")
)

var arrayPattern = regexp.MustCompile(`export const menuItems: MenuItem\[\] = (\[[\s\S]*?\]) as MenuItem\[\];`)

// IngredientCleaner is the part of the cleaner the document needs.
type IngredientCleaner interface {
	Clean(raw []string) []string
}

// Document is a parsed menu data file.
type Document struct {
	prefix []byte
	items  []byte
	suffix []byte
}

// Stats summarizes a cleaning run.
type Stats struct {
	Items  int
	Before int
	After  int
}

// Removed returns how many ingredient entries were dropped or merged.
func (s Stats) Removed() int {
	return s.Before - s.After
}

// Parse locates the menuItems array in content.
func Parse(content []byte) (*Document, error) {
	loc := arrayPattern.FindSubmatchIndex(content)
	if loc == nil {
		return nil, ErrArrayNotFound
	}

	items := content[loc[2]:loc[3]]
	if !gjson.ValidBytes(items) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	if !gjson.ParseBytes(items).IsArray() {
		return nil, fmt.Errorf("%w: not an array", ErrMalformed)
	}

	return &Document{
		prefix: bytes.Clone(content[:loc[2]]),
		items:  bytes.Clone(items),
		suffix: bytes.Clone(content[loc[3]:]),
	}, nil
}

// Len returns the number of menu items.
func (d *Document) Len() int {
	return len(gjson.ParseBytes(d.items).Array())
}

// Ingredients returns the raw ingredient list of item i and the number of
// entries it held. Entries that are not strings are left out of the list but
// still counted. A record without ingredients yields an empty list.
func (d *Document) Ingredients(i int) ([]string, int) {
	res := gjson.GetBytes(d.items, fmt.Sprintf("%d.ingredients", i))
	if !res.IsArray() {
		return []string{}, 0
	}

	entries := res.Array()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type == gjson.String {
			out = append(out, e.String())
		}
	}
	return out, len(entries)
}

// SetIngredients replaces the ingredient list of item i.
func (d *Document) SetIngredients(i int, ingredients []string) error {
	if ingredients == nil {
		ingredients = []string{}
	}
	raw, err := encodeList(ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients of item %d: %w", i, err)
	}
	updated, err := sjson.SetRawBytes(d.items, fmt.Sprintf("%d.ingredients", i), raw)
	if err != nil {
		return fmt.Errorf("set ingredients of item %d: %w", i, err)
	}
	d.items = updated
	return nil
}

// encodeList renders a JSON string array with "&", "<" and ">" left as is.
func encodeList(list []string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// CleanIngredients runs c over every item and writes the results back.
// Array elements that are not objects are left alone.
func (d *Document) CleanIngredients(c IngredientCleaner) (Stats, error) {
	stats := Stats{Items: d.Len()}
	for i := 0; i < stats.Items; i++ {
		if !gjson.GetBytes(d.items, fmt.Sprintf("%d", i)).IsObject() {
			continue
		}
		raw, count := d.Ingredients(i)
		cleaned := c.Clean(raw)
		stats.Before += count
		stats.After += len(cleaned)
		if err := d.SetIngredients(i, cleaned); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// Bytes renders the file: the original surroundings with the array
// re-indented by two spaces, one element per line. Key order and values
// are kept.
func (d *Document) Bytes() []byte {
	// Width 0 disables pretty's single-line arrays.
	items := pretty.PrettyOptions(d.items, &pretty.Options{
		Width:  0,
		Indent: "  ",
	})
	items = bytes.TrimRight(items, "\n")

	out := make([]byte, 0, len(d.prefix)+len(items)+len(d.suffix))
	out = append(out, d.prefix...)
	out = append(out, items...)
	out = append(out, d.suffix...)
	return out
}
