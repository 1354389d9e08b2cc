package ingredient

import (
	"regexp"

	"github.com/pantrychef/backend/internal/domain"
)

// quantityStrategy is one parsing attempt; the first that succeeds wins.
type quantityStrategy struct {
	name  string
	apply func(text string) (domain.ParsedQuantity, bool)
}

var (
	// "(3 1/2 to 4 pounds)"
	parenRangePattern = regexp.MustCompile(`\(\s*(` + numberExpr + `)` + rangeSepExpr + `(` + numberExpr + `)\s*(` + measurementUnitExpr + `)\b[^)]*\)`)

	// "(14 oz)"
	parenMeasurePattern = regexp.MustCompile(`\(\s*(` + numberExpr + `)\s*(` + measurementUnitExpr + `)\b[^)]*\)`)

	// "3 1/2 pounds"
	mixedFractionPattern = regexp.MustCompile(`\b(\d+\s+\d+/\d+)\s*(` + measurementUnitExpr + `)\b`)

	simpleWeightPattern = regexp.MustCompile(`^(` + numberExpr + `)\s*(` + weightUnitExpr + `)\b`)
	simpleVolumePattern = regexp.MustCompile(`^(` + numberExpr + `)\s*(` + volumeUnitExpr + `)\b`)

	// "2-3 cloves", "1 to 2 tablespoons"
	bareRangePattern = regexp.MustCompile(`^(` + numberExpr + `)` + rangeSepExpr + `(` + numberExpr + `)\b\s*([a-z]+(?:\s*oz)?)?`)

	// "2 onions", "a pinch", "1 large egg"
	genericPattern = regexp.MustCompile(`^(` + numberExpr + `|an?)\b\s*([a-z]+(?:\s*oz)?)?`)

	// "handful basil", "pinch of salt"
	bareVaguePattern = regexp.MustCompile(`^(` + vagueUnitExpr + `)\b`)
)

func defaultStrategies() []quantityStrategy {
	return []quantityStrategy{
		{name: "paren_range", apply: parseParenRange},
		{name: "paren_measure", apply: parseMeasureMatch(parenMeasurePattern)},
		{name: "mixed_fraction", apply: parseMeasureMatch(mixedFractionPattern)},
		{name: "simple_weight", apply: parseMeasureMatch(simpleWeightPattern)},
		{name: "simple_volume", apply: parseMeasureMatch(simpleVolumePattern)},
		{name: "bare_range", apply: parseBareRange},
		{name: "generic", apply: parseGeneric},
		{name: "bare_vague", apply: parseBareVague},
	}
}

func rangeQuantity(minText, maxText string) (domain.ParsedQuantity, bool) {
	lo, ok1 := parseNumber(minText)
	hi, ok2 := parseNumber(maxText)
	if !ok1 || !ok2 {
		return domain.ParsedQuantity{}, false
	}
	return domain.ParsedQuantity{
		Value:    (lo + hi) / 2,
		IsRange:  true,
		RangeMin: lo,
		RangeMax: hi,
	}, true
}

func parseParenRange(text string) (domain.ParsedQuantity, bool) {
	m := parenRangePattern.FindStringSubmatch(text)
	if m == nil {
		return domain.ParsedQuantity{}, false
	}
	q, ok := rangeQuantity(m[1], m[2])
	if !ok {
		return q, false
	}
	q.Unit = CanonicalUnit(m[3])
	return q, true
}

// parseMeasureMatch builds a strategy from a pattern capturing number and unit.
func parseMeasureMatch(pattern *regexp.Regexp) func(text string) (domain.ParsedQuantity, bool) {
	return func(text string) (domain.ParsedQuantity, bool) {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			return domain.ParsedQuantity{}, false
		}
		v, ok := parseNumber(m[1])
		if !ok {
			return domain.ParsedQuantity{}, false
		}
		return domain.ParsedQuantity{Value: v, Unit: CanonicalUnit(m[2])}, true
	}
}

func parseBareRange(text string) (domain.ParsedQuantity, bool) {
	m := bareRangePattern.FindStringSubmatch(text)
	if m == nil {
		return domain.ParsedQuantity{}, false
	}
	q, ok := rangeQuantity(m[1], m[2])
	if !ok {
		return q, false
	}
	q.Unit, q.IsVague = classifyUnitToken(m[3])
	return q, true
}

func parseGeneric(text string) (domain.ParsedQuantity, bool) {
	m := genericPattern.FindStringSubmatch(text)
	if m == nil {
		return domain.ParsedQuantity{}, false
	}
	value := 1.0
	if m[1] != "a" && m[1] != "an" {
		v, ok := parseNumber(m[1])
		if !ok {
			return domain.ParsedQuantity{}, false
		}
		value = v
	}
	unit, vague := classifyUnitToken(m[2])
	return domain.ParsedQuantity{Value: value, Unit: unit, IsVague: vague}, true
}

func parseBareVague(text string) (domain.ParsedQuantity, bool) {
	m := bareVaguePattern.FindStringSubmatch(text)
	if m == nil {
		return domain.ParsedQuantity{}, false
	}
	return domain.ParsedQuantity{Value: 1, Unit: CanonicalUnit(m[1]), IsVague: true}, true
}

// classifyUnitToken maps a captured token to a measurement unit, pcs, or a
// vague unit that the caller must clarify with the user.
func classifyUnitToken(token string) (string, bool) {
	t := cleanUnit(token)
	switch {
	case t == "":
		return CountUnit, false
	case IsVagueUnit(t):
		return CanonicalUnit(t), true
	case IsMeasurementUnit(t):
		return CanonicalUnit(t), false
	default:
		// counting words and unrecognized tokens ("2 large eggs") are pieces
		return CountUnit, false
	}
}
