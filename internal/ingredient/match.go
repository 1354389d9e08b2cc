package ingredient

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// singular strips one trailing "s".
func singular(s string) string {
	return strings.TrimSuffix(s, "s")
}

// Matches reports whether two normalized names refer to the same
// ingredient: either contains the other, or their singular forms are equal.
// It is deliberately permissive, so "oil" matches "olive oil".
func Matches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return singular(a) == singular(b)
}

// NamesMatch normalizes both names before calling Matches.
func NamesMatch(a, b string) bool {
	return Matches(Normalize(a), Normalize(b))
}

// Similarity returns 1 - editDistance/maxLen for two strings.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}
