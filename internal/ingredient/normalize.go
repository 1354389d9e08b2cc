package ingredient

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonAlphaPattern = regexp.MustCompile(`[^a-z]+`)

// connectorWords join quantities and alternatives in ingredient text
var connectorWords = map[string]bool{
	"to": true, "or": true, "and": true, "about": true, "approximately": true,
	"approx": true, "of": true, "a": true, "an": true, "the": true,
	"plus": true, "for": true, "into": true,
}

// descriptorWords describe preparation or size rather than identity
var descriptorWords = map[string]bool{
	// Preparation
	"fresh": true, "freshly": true, "dried": true, "chopped": true, "minced": true,
	"diced": true, "sliced": true, "grated": true, "shredded": true, "crushed": true,
	"ground": true, "peeled": true, "cubed": true, "trimmed": true, "rinsed": true,
	"drained": true, "halved": true, "quartered": true, "softened": true, "melted": true,
	"beaten": true, "cooked": true, "uncooked": true, "raw": true, "frozen": true,
	"thawed": true, "packed": true, "sifted": true, "cut": true, "mashed": true,
	// Manner
	"finely": true, "roughly": true, "thinly": true, "coarsely": true, "lightly": true,
	// Size
	"large": true, "medium": true, "small": true, "extra": true, "heaping": true,
	"level": true,
	// Texture
	"firm": true, "soft": true, "silken": true, "crispy": true, "tender": true,
	// Misc
	"boneless": true, "skinless": true, "organic": true, "ripe": true,
	"divided": true, "optional": true, "taste": true, "room": true, "temperature": true,
}

func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// clean lowercases, folds diacritics and keeps letters only.
func clean(s string) string {
	s = stripDiacritics(strings.ToLower(s))
	s = nonAlphaPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Normalize produces the comparison key for an ingredient name. Connector
// words, descriptors and unit tokens are removed. If nothing is left the
// cleaned text is returned so that a lone "cloves" still has a key.
func Normalize(name string) string {
	cleaned := clean(name)
	if cleaned == "" {
		return ""
	}

	words := strings.Fields(cleaned)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if connectorWords[w] || descriptorWords[w] || isUnitToken(w) {
			continue
		}
		kept = append(kept, w)
	}

	if len(kept) == 0 {
		return cleaned
	}
	return strings.Join(kept, " ")
}
