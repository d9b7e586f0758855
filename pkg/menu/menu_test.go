package menu

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/menuclean/pkg/clean"
	"github.com/bastiangx/menuclean/pkg/rules"
	"github.com/tidwall/gjson"
)

const header = `// This file is auto-generated from wildfire_menu_allergens.csv
// Run: npm run generate-menu-data

import type { MenuItem } from '../types';

`

const sample = header + `export const menuItems: MenuItem[] = [
  {
    "id": "filet-mignon",
    "name": "Café Filet",
    "price": 42.50,
    "ingredients": ["smoked bacon", "bacon", "butter with white wine", "Ramekin"],
    "allergens": {"dairy": true}
  },
  {
    "id": "house-salad",
    "name": "House Salad",
    "ingredients": ["tomato", 7, null, "tomatoes", "Old Bay s easoning"]
  },
  {
    "id": "bread",
    "name": "Bread Basket"
  }
] as MenuItem[];
`

type cleanerFunc func([]string) []string

func (f cleanerFunc) Clean(raw []string) []string { return f(raw) }

func TestParseNotFound(t *testing.T) {
	_, err := Parse([]byte("export const drinks = [];"))
	if !errors.Is(err, ErrArrayNotFound) {
		t.Errorf("Expected ErrArrayNotFound, got %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		`export const menuItems: MenuItem[] = [{"id": ] as MenuItem[];`,
		`export const menuItems: MenuItem[] = [1, 2,] as MenuItem[];`,
	}
	for _, c := range cases {
		_, err := Parse([]byte(c))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q): expected ErrMalformed, got %v", c, err)
		}
	}
}

func TestIngredients(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Len() != 3 {
		t.Fatalf("Expected 3 items, got %d", doc.Len())
	}

	got, count := doc.Ingredients(1)
	want := []string{"tomato", "tomatoes", "Old Bay s easoning"}
	if !reflect.DeepEqual(got, want) || count != 5 {
		t.Errorf("Ingredients(1) = %v, %d; want %v, 5", got, count, want)
	}

	got, count = doc.Ingredients(2)
	if len(got) != 0 || count != 0 {
		t.Errorf("Item without ingredients should be empty, got %v, %d", got, count)
	}
}

func TestCleanIngredients(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := clean.New(rules.Default(), clean.DefaultOptions())
	if err != nil {
		t.Fatalf("clean.New: %v", err)
	}

	stats, err := doc.CleanIngredients(c)
	if err != nil {
		t.Fatalf("CleanIngredients: %v", err)
	}
	if stats.Items != 3 || stats.Before != 9 || stats.After != 5 || stats.Removed() != 4 {
		t.Errorf("Unexpected stats: %+v (removed %d)", stats, stats.Removed())
	}

	expect := map[int][]string{
		0: {"butter", "smoked bacon", "white wine"},
		1: {"Old Bay seasoning", "tomatoes"},
		2: {},
	}
	for i, want := range expect {
		got, _ := doc.Ingredients(i)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("item %d: got %v, want %v", i, got, want)
		}
	}
}

func TestBytesPreservesOtherFields(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	first := cleanerFunc(func(raw []string) []string {
		if len(raw) == 0 {
			return raw
		}
		return raw[:1]
	})
	if _, err := doc.CleanIngredients(first); err != nil {
		t.Fatalf("CleanIngredients: %v", err)
	}

	out := doc.Bytes()
	if !bytes.HasPrefix(out, []byte(header)) {
		t.Error("Header before the array should be kept verbatim")
	}
	if !bytes.HasSuffix(out, []byte("] as MenuItem[];\n")) {
		t.Error("Declaration tail should be kept verbatim")
	}

	reparsed, err := Parse(out)
	if err != nil {
		t.Fatalf("Re-parse rendered file: %v", err)
	}
	checks := map[string]string{
		"0.name":            `"Café Filet"`,
		"0.price":           `42.50`,
		"0.allergens.dairy": `true`,
		"0.ingredients.0":   `"smoked bacon"`,
		"2.name":            `"Bread Basket"`,
	}
	for path, raw := range checks {
		if got := gjson.GetBytes(reparsed.items, path).Raw; got != raw {
			t.Errorf("%s: got %s, want %s", path, got, raw)
		}
	}

	keys := []string{}
	gjson.GetBytes(reparsed.items, "0").ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	if strings.Join(keys, ",") != "id,name,price,ingredients,allergens" {
		t.Errorf("Key order changed: %v", keys)
	}
}

func TestSkipsNonObjectItems(t *testing.T) {
	content := `export const menuItems: MenuItem[] = [1, {"ingredients": ["rice"]}] as MenuItem[];`
	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	stats, err := doc.CleanIngredients(cleanerFunc(func(raw []string) []string { return raw }))
	if err != nil {
		t.Fatalf("CleanIngredients: %v", err)
	}
	if stats.Items != 2 || stats.Before != 1 || stats.After != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if got := gjson.GetBytes(doc.items, "0").Raw; got != "1" {
		t.Errorf("Non-object item changed: %s", got)
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu-items.ts")
	if err := os.WriteFile(path, []byte(sample), 0600); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := doc.SetIngredients(2, nil); err != nil {
		t.Fatalf("SetIngredients: %v", err)
	}
	if err := WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("File mode changed to %v", info.Mode().Perm())
	}

	again, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after write: %v", err)
	}
	if got := gjson.GetBytes(again.items, "2.ingredients").Raw; got != "[]" {
		t.Errorf("Expected empty ingredients, got %s", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.ts")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestReadFileWrapsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu-items.ts")
	if err := os.WriteFile(path, []byte("export default {};\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); !errors.Is(err, ErrArrayNotFound) {
		t.Errorf("Expected ErrArrayNotFound, got %v", err)
	}
}

func TestBytesKeepsLiteralCharacters(t *testing.T) {
	content := `export const menuItems: MenuItem[] = [{"id": "a", "ingredients": ["salt & pepper", "a<b", "jalapeño", "x>y"]}] as MenuItem[];`
	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := doc.CleanIngredients(cleanerFunc(func(raw []string) []string { return raw })); err != nil {
		t.Fatalf("CleanIngredients: %v", err)
	}

	want := `export const menuItems: MenuItem[] = [
  {
    "id": "a",
    "ingredients": [
      "salt & pepper",
      "a<b",
      "jalapeño",
      "x>y"
    ]
  }
] as MenuItem[];`
	if got := string(doc.Bytes()); got != want {
		t.Errorf("Unexpected rendering:\n%s\nwant:\n%s", got, want)
	}
	if bytes.Contains(doc.Bytes(), []byte(`\u00`)) {
		t.Error("Ingredients should not be escaped")
	}
}

func TestBytesExpandsShortArrays(t *testing.T) {
	content := `export const menuItems: MenuItem[] = [{"tags": ["a", "b"], "ingredients": ["rice"]}] as MenuItem[];`
	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := string(doc.Bytes())
	for _, want := range []string{
		"    \"tags\": [\n      \"a\",\n      \"b\"\n    ],\n",
		"    \"ingredients\": [\n      \"rice\"\n    ]\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in:\n%s", want, out)
		}
	}
}
