package clean

import (
	"strings"

	"github.com/bastiangx/menuclean/internal/utils"
	"golang.org/x/text/unicode/norm"
)

// Key returns the normalization key of s: NFC, lower-cased, whitespace
// collapsed and trimmed. Keys are compared, never displayed.
func Key(s string) string {
	return utils.CollapseSpaces(strings.ToLower(norm.NFC.String(s)))
}

// isPluralOf reports whether one key is the other with a trailing "s".
func isPluralOf(a, b string) bool {
	return a == b+"s" || b == a+"s"
}

// isNearMatch reports whether two keys differ in length by at most two
// characters and one contains the other.
func isNearMatch(a, b string) bool {
	diff := utils.RuneLen(a) - utils.RuneLen(b)
	if diff < -2 || diff > 2 {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
