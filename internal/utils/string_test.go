package utils

import (
	"slices"
	"testing"
)

func TestCollapseSpaces(t *testing.T) {
	tests := map[string]string{
		"  old   bay\tseasoning ": "old bay seasoning",
		"rice":                   "rice",
		"   ":                    "",
	}
	for in, want := range tests {
		if got := CollapseSpaces(in); got != want {
			t.Errorf("CollapseSpaces(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRuneLen(t *testing.T) {
	if n := RuneLen("sautéed"); n != 7 {
		t.Errorf("expected 7 runes, got %d", n)
	}
}

func TestTrimRightSpace(t *testing.T) {
	if got := TrimRightSpace("  salt \n"); got != "  salt" {
		t.Errorf("got %q", got)
	}
}

func TestStartsWithSpace(t *testing.T) {
	if !StartsWithSpace(" bacon") || StartsWithSpace("bacon") || StartsWithSpace("") {
		t.Error("unexpected StartsWithSpace result")
	}
}

func TestFoldCompare(t *testing.T) {
	got := []string{"rice", "Butter", "butter", "Old Bay seasoning"}
	slices.SortFunc(got, FoldCompare)
	want := []string{"Butter", "butter", "Old Bay seasoning", "rice"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
