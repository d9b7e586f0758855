package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CollapseSpaces replaces every run of whitespace with a single space and
// trims both ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RuneLen returns the length of s in characters rather than bytes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// TrimRightSpace removes trailing whitespace only
func TrimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// StartsWithSpace reports whether the first rune of s is whitespace.
func StartsWithSpace(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

// FoldCompare orders strings case-insensitively. Strings that differ only by
// case fall back to a byte comparison so the order is total.
func FoldCompare(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
