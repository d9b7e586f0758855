package clean

import (
	"strings"
	"testing"

	"github.com/bastiangx/menuclean/internal/utils"
	"github.com/bastiangx/menuclean/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const narrative = "Our chefs favorite preparation, beloved by regulars since the restaurant opened."

func TestCleanOne(t *testing.T) {
	t.Parallel()

	c := newTestCleaner(t)

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "adjective trimmed", input: "  chopped parsley  ", want: "parsley", wantOK: true},
		{name: "typo corrected", input: "Old Bay s easoning", want: "Old Bay seasoning", wantOK: true},
		{name: "one adjective only", input: "large chopped onion", want: "chopped onion", wantOK: true},
		{name: "substitution adjective kept", input: "smoked bacon", want: "smoked bacon", wantOK: true},
		{name: "non-ingredient", input: "served", wantOK: false},
		{name: "too short", input: "x", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "too long", input: narrative, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := c.CleanOne(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	c := newTestCleaner(t)

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "smoked variant absorbs plain form",
			input: []string{"smoked bacon", "bacon"},
			want:  []string{"smoked bacon"},
		},
		{
			name:  "smoked variant replaces earlier plain form",
			input: []string{"bacon", "smoked bacon"},
			want:  []string{"smoked bacon"},
		},
		{
			name:  "two different variants both survive",
			input: []string{"smoked salmon", "fresh salmon", "salmon"},
			want:  []string{"fresh salmon", "smoked salmon"},
		},
		{
			name:  "compound split",
			input: []string{"butter with white wine"},
			want:  []string{"butter", "white wine"},
		},
		{
			name:  "typo corrected",
			input: []string{"Old Bay s easoning"},
			want:  []string{"Old Bay seasoning"},
		},
		{
			name:  "serving phrase dropped",
			input: []string{"served with a side of rice", "rice"},
			want:  []string{"rice"},
		},
		{
			name:  "long narrative dropped",
			input: []string{narrative, "lemon"},
			want:  []string{"lemon"},
		},
		{
			name:  "near match keeps the longer form",
			input: []string{"tomato", "tomatoes"},
			want:  []string{"tomatoes"},
		},
		{
			name:  "near match in reverse order",
			input: []string{"tomatoes", "tomato"},
			want:  []string{"tomatoes"},
		},
		{
			name:  "plural keeps first seen",
			input: []string{"onion", "onions"},
			want:  []string{"onion"},
		},
		{
			name:  "plural keeps first seen in reverse order",
			input: []string{"onions", "onion"},
			want:  []string{"onions"},
		},
		{
			name:  "exact key keeps first spelling",
			input: []string{"Garlic", "garlic ", " GARLIC"},
			want:  []string{"Garlic"},
		},
		{
			name:  "adjective trimmed before comparison",
			input: []string{"parsley", "chopped parsley"},
			want:  []string{"parsley"},
		},
		{
			name:  "sorted case-insensitively",
			input: []string{"zucchini", "Arugula", "basil"},
			want:  []string{"Arugula", "basil", "zucchini"},
		},
		{
			name:  "whitelisted compound kept whole",
			input: []string{"salt and pepper"},
			want:  []string{"salt and pepper"},
		},
		{
			name:  "non-ingredients only",
			input: []string{"Ramekin", "10 oz", "then"},
			want:  []string{},
		},
		{
			name:  "empty input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := c.Clean(tc.input)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

var menuSample = []string{
	"Old Bay s easoning",
	"butter with white wine",
	"smoked bacon",
	"bacon",
	"tomatoes",
	"tomato",
	"chopped parsley",
	"served with a side of rice",
	"rice",
	"salt and pepper",
	"Ramekin",
	"10 oz filet",
	"houseoil",
}

func TestCleanMenuSample(t *testing.T) {
	t.Parallel()

	c := newTestCleaner(t)
	want := []string{
		"butter",
		"house oil",
		"Old Bay seasoning",
		"parsley",
		"rice",
		"salt and pepper",
		"smoked bacon",
		"tomatoes",
		"white wine",
	}
	assert.Equal(t, want, c.Clean(menuSample))
}

func TestCleanIsIdempotent(t *testing.T) {
	t.Parallel()

	c := newTestCleaner(t)
	inputs := [][]string{
		menuSample,
		{"smoked salmon", "fresh salmon", "salmon", "capers", "caper"},
		{"bison meatballs heated up in garlic butter", "flatbread"},
		{"tomato", "tomatoes", "Tomato"},
	}
	for _, in := range inputs {
		once := c.Clean(in)
		assert.Equal(t, once, c.Clean(once), "input %v", in)
	}
}

func TestCleanOutputProperties(t *testing.T) {
	t.Parallel()

	c := newTestCleaner(t)
	in := append([]string{
		"Garnished with parsley",
		"Two filets",
		"then chicken jus",
		"goat cheese with tomato basil sauce",
		"crispy onions",
		"onion",
		"Extra virgin olive oil",
		"olive oil",
	}, menuSample...)

	out := c.Clean(in)

	seen := make(map[string]bool)
	for i, s := range out {
		assert.False(t, c.Classifier().IsNonIngredient(s), "non-ingredient in output: %q", s)

		key := Key(c.Trimmer().Trim(s))
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true

		if i > 0 {
			assert.LessOrEqual(t, utils.FoldCompare(out[i-1], s), 0, "output not sorted at %d", i)
		}
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	t.Parallel()

	_, err := New(rules.Default(), Options{MinLength: 5, MaxLength: 2})
	assert.Error(t, err)

	_, err = New(rules.Default(), Options{})
	assert.Error(t, err)
}

func TestNewWithNilRules(t *testing.T) {
	t.Parallel()

	c, err := New(nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"butter", "white wine"}, c.Clean([]string{"butter with white wine"}))
}

func TestNewRejectsBadRules(t *testing.T) {
	t.Parallel()

	r := rules.Default()
	r.Split.Patterns = append(r.Split.Patterns, "(")
	_, err := New(r, DefaultOptions())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "split.patterns"))
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "olive oil", Key("  Olive \t OIL "))
	assert.Equal(t, "sautéed", Key("sautéed"))
	assert.Equal(t, "", Key("   "))
}
