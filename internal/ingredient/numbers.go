package ingredient

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// numberExpr matches a mixed fraction, a fraction or a decimal, in that order.
const numberExpr = `(?:\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?)`

// rangeSepExpr separates the two ends of a range.
const rangeSepExpr = `\s*(?:-|–|to)\s*`

var unicodeFractions = strings.NewReplacer(
	"½", " 1/2", "¼", " 1/4", "¾", " 3/4",
	"⅓", " 1/3", "⅔", " 2/3", "⅛", " 1/8",
	"⅜", " 3/8", "⅝", " 5/8", "⅞", " 7/8",
	"⁄", "/",
)

// parseNumber reads "3", "2.5", "1/2" or "3 1/2".
func parseNumber(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}

	total := 0.0
	for _, f := range fields {
		if num, den, ok := strings.Cut(f, "/"); ok {
			n, err1 := strconv.ParseFloat(num, 64)
			d, err2 := strconv.ParseFloat(den, 64)
			if err1 != nil || err2 != nil || d == 0 {
				return 0, false
			}
			total += n / d
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, false
		}
		total += v
	}
	return total, true
}

// unitAlternation builds a longest-first regex alternation of unit spellings.
func unitAlternation(keep func(canonical string) bool) string {
	var names []string
	for alias, canonical := range unitAliases {
		if keep(canonical) {
			names = append(names, alias)
		}
	}
	return alternation(names)
}

func alternation(names []string) string {
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(n), " ", `\s*`)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

var (
	measurementUnitExpr = unitAlternation(func(string) bool { return true })
	weightUnitExpr      = unitAlternation(func(c string) bool { return weightFactors[c] > 0 })
	volumeUnitExpr      = unitAlternation(func(c string) bool { return volumeFactors[c] > 0 })
	vagueUnitExpr       = func() string {
		names := make([]string, 0, len(vagueUnits))
		for name := range vagueUnits {
			names = append(names, name)
		}
		return alternation(names)
	}()
)
