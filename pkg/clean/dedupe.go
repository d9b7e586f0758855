package clean

import (
	"container/list"
	"slices"

	"github.com/bastiangx/menuclean/internal/utils"
)

// entry is one chosen ingredient in the dedupe index.
type entry struct {
	key   string // normalization key of the trimmed form
	base  string // key with substitution adjectives removed
	value string // display string
	keeps bool   // value carries a substitution adjective
}

// orderedIndex maps keys to entries and remembers insertion order; which
// prior entry matches first depends on it.
type orderedIndex struct {
	order *list.List
	byKey map[string]*list.Element
}

func newOrderedIndex() *orderedIndex {
	return &orderedIndex{order: list.New(), byKey: make(map[string]*list.Element)}
}

func (o *orderedIndex) get(key string) (*entry, bool) {
	el, ok := o.byKey[key]
	if !ok {
		return nil, false
	}
	return el.Value.(*entry), true
}

// add appends e at the end.
func (o *orderedIndex) add(e *entry) {
	o.byKey[e.key] = o.order.PushBack(e)
}

// swap replaces the entry stored under e.key without moving it.
func (o *orderedIndex) swap(e *entry) {
	o.byKey[e.key].Value = e
}

// replace drops old and appends e at the end.
func (o *orderedIndex) replace(old, e *entry) {
	if el, ok := o.byKey[old.key]; ok {
		o.order.Remove(el)
		delete(o.byKey, old.key)
	}
	o.add(e)
}

func (o *orderedIndex) each(fn func(*entry) bool) {
	for el := o.order.Front(); el != nil; el = el.Next() {
		if !fn(el.Value.(*entry)) {
			return
		}
	}
}

func (o *orderedIndex) sorted() []string {
	out := make([]string, 0, o.order.Len())
	o.each(func(e *entry) bool {
		out = append(out, e.value)
		return true
	})
	slices.SortFunc(out, utils.FoldCompare)
	return out
}

func (c *Cleaner) newEntry(cleaned string) *entry {
	key := Key(c.trimmer.Trim(cleaned))
	return &entry{
		key:   key,
		base:  Key(c.trimmer.StripSubstitutions(key)),
		value: cleaned,
		keeps: c.trimmer.ShouldKeep(cleaned),
	}
}

// resolve merges cleaned into idx. Checks run exact key first, then for each
// prior entry in insertion order: plural, near-match, adjective variant. The
// first prior entry that matches decides; on ties the existing entry stays.
func (c *Cleaner) resolve(idx *orderedIndex, cleaned string) {
	cand := c.newEntry(cleaned)

	if existing, ok := idx.get(cand.key); ok {
		if cand.keeps && !existing.keeps {
			idx.swap(cand)
		}
		return
	}

	var match *entry
	var replace bool
	idx.each(func(e *entry) bool {
		switch {
		case isPluralOf(cand.key, e.key):
			replace = cand.keeps && !e.keeps
		case isNearMatch(cand.key, e.key):
			replace = utils.RuneLen(cand.value) > utils.RuneLen(e.value) || cand.keeps
		case isAdjectiveVariant(cand, e):
			replace = cand.keeps
		default:
			return true
		}
		match = e
		return false
	})

	switch {
	case match == nil:
		idx.add(cand)
	case replace:
		idx.replace(match, cand)
	}
}

// isAdjectiveVariant reports whether exactly one of a and b carries a
// substitution adjective and removing it yields the other's key, as with
// "smoked bacon" and "bacon".
func isAdjectiveVariant(a, b *entry) bool {
	if a.keeps == b.keeps {
		return false
	}
	return (a.keeps && a.base == b.key) || (b.keeps && b.base == a.key)
}
