package ingredient

import (
	"regexp"
	"sort"
	"strings"
)

// descriptorPrefixExpr matches one or more descriptor words before a name.
var descriptorPrefixExpr = func() string {
	words := make([]string, 0, len(descriptorWords))
	for w := range descriptorWords {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return `(?:(?:` + strings.Join(words, "|") + `)\s+)+`
}()

func termExpr(term string) string {
	return strings.Join(strings.Fields(regexp.QuoteMeta(term)), `\s+`)
}

// ReplaceMentions rewrites occurrences of an ingredient in free text with
// replacement. It runs three passes: descriptor plus bare name, bare name
// alone, then the full original text. The result is best effort and can both
// miss and over-replace mentions.
func ReplaceMentions(text, original, replacement string) string {
	original = strings.TrimSpace(original)
	if text == "" || original == "" {
		return text
	}

	if bare := Normalize(original); bare != "" {
		name := termExpr(bare)
		withDescriptor := regexp.MustCompile(`(?i)\b` + descriptorPrefixExpr + name + `(?:e?s)?\b`)
		text = withDescriptor.ReplaceAllLiteralString(text, replacement)

		bareOnly := regexp.MustCompile(`(?i)\b` + name + `(?:e?s)?\b`)
		text = bareOnly.ReplaceAllLiteralString(text, replacement)
	}

	full := regexp.MustCompile(`(?i)` + wordBounded(original, termExpr(original)))
	return full.ReplaceAllLiteralString(text, replacement)
}

// wordBounded anchors expr at whichever ends of term are word characters, so
// a match never starts or stops inside another word.
func wordBounded(term, expr string) string {
	if isWordByte(term[0]) {
		expr = `\b` + expr
	}
	if isWordByte(term[len(term)-1]) {
		expr += `\b`
	}
	return expr
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
