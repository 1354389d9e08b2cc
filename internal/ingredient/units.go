package ingredient

import (
	"strings"
)

// Family groups units that can be converted into each other.
type Family string

const (
	FamilyWeight  Family = "weight"
	FamilyVolume  Family = "volume"
	FamilyCount   Family = "count"
	FamilyVague   Family = "vague"
	FamilyUnknown Family = ""
)

// CountUnit is the canonical counting unit.
const CountUnit = "pcs"

// unitAliases maps spelled-out and abbreviated measurement units to their
// canonical abbreviation.
var unitAliases = map[string]string{
	// Weight
	"mg": "mg", "milligram": "mg", "milligrams": "mg",
	"g": "g", "gr": "g", "gram": "g", "grams": "g", "gramme": "g", "grammes": "g",
	"kg": "kg", "kgs": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg", "kilograms": "kg",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	// Volume
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"tsp": "tsp", "tsps": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"tbsp": "tbsp", "tbsps": "tbsp", "tbs": "tbsp", "tbl": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"cup": "cup", "cups": "cup",
	"fl oz": "fl oz", "floz": "fl oz", "fluid ounce": "fl oz", "fluid ounces": "fl oz",
	"pint": "pint", "pints": "pint", "pt": "pint",
	"quart": "quart", "quarts": "quart", "qt": "quart",
	"gallon": "gallon", "gallons": "gallon", "gal": "gallon",
}

// countUnits are treated 1:1 with pcs.
var countUnits = map[string]bool{
	"pcs": true, "pc": true, "piece": true, "pieces": true,
	"whole": true, "each": true, "ea": true,
	"item": true, "items": true, "unit": true, "units": true,
	"clove": true, "cloves": true, "slice": true, "slices": true,
	"sprig": true, "sprigs": true, "stalk": true, "stalks": true,
	"leaf": true, "leaves": true, "wedge": true, "wedges": true,
	"segment": true, "segments": true, "head": true, "heads": true,
	"bulb": true, "bulbs": true, "can": true, "cans": true,
	"package": true, "packages": true, "pkg": true,
	"bunch": true, "bunches": true, "stick": true, "sticks": true,
	"fillet": true, "fillets": true, "loaf": true, "loaves": true,
}

// vagueUnits are passed through as-is and need user clarification.
var vagueUnits = map[string]string{
	"pinch": "pinch", "pinches": "pinch",
	"dash": "dash", "dashes": "dash",
	"handful": "handful", "handfuls": "handful",
	"splash": "splash", "splashes": "splash",
	"drizzle": "drizzle", "sprinkle": "sprinkle",
	"smidgen": "smidgen", "knob": "knob", "knobs": "knob",
}

var weightFactors = map[string]float64{
	"mg": 0.001,
	"g":  1,
	"kg": 1000,
	"oz": 28.3495,
	"lb": 453.592,
}

var volumeFactors = map[string]float64{
	"ml":     1,
	"l":      1000,
	"tsp":    4.92892,
	"tbsp":   14.7868,
	"cup":    236.588,
	"fl oz":  29.5735,
	"pint":   473.176,
	"quart":  946.353,
	"gallon": 3785.41,
}

func cleanUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, ".")
	return strings.Join(strings.Fields(u), " ")
}

// CanonicalUnit normalizes unit spelling and plurals. Counting units
// collapse to pcs, an empty unit means pcs, and unknown units are returned
// lowercased.
func CanonicalUnit(unit string) string {
	u := cleanUnit(unit)
	if u == "" {
		return CountUnit
	}
	if c, ok := unitAliases[u]; ok {
		return c
	}
	if countUnits[u] {
		return CountUnit
	}
	if v, ok := vagueUnits[u]; ok {
		return v
	}
	return u
}

// FamilyOf classifies a unit.
func FamilyOf(unit string) Family {
	u := CanonicalUnit(unit)
	switch {
	case weightFactors[u] > 0:
		return FamilyWeight
	case volumeFactors[u] > 0:
		return FamilyVolume
	case u == CountUnit:
		return FamilyCount
	}
	if _, ok := vagueUnits[u]; ok {
		return FamilyVague
	}
	return FamilyUnknown
}

// IsMeasurementUnit reports whether unit is a weight or volume unit.
func IsMeasurementUnit(unit string) bool {
	f := FamilyOf(unit)
	return f == FamilyWeight || f == FamilyVolume
}

// IsCountUnit reports whether unit is a counting unit.
func IsCountUnit(unit string) bool {
	return FamilyOf(unit) == FamilyCount
}

// IsVagueUnit reports whether unit is an imprecise amount such as a pinch.
func IsVagueUnit(unit string) bool {
	_, ok := vagueUnits[cleanUnit(unit)]
	return ok
}

// isUnitToken reports whether a single lowercase word names any known unit.
func isUnitToken(word string) bool {
	if _, ok := unitAliases[word]; ok {
		return true
	}
	if countUnits[word] {
		return true
	}
	_, ok := vagueUnits[word]
	return ok
}

// Convert converts value between two units of the same family. When no
// conversion path exists the original value is returned with ok=false.
func Convert(value float64, fromUnit, toUnit string) (float64, bool) {
	from := CanonicalUnit(fromUnit)
	to := CanonicalUnit(toUnit)

	if from == to {
		return value, true
	}

	if fw, ok := weightFactors[from]; ok {
		if tw, ok := weightFactors[to]; ok {
			return value * fw / tw, true
		}
		return value, false
	}

	if fv, ok := volumeFactors[from]; ok {
		if tv, ok := volumeFactors[to]; ok {
			return value * fv / tv, true
		}
		return value, false
	}

	return value, false
}

// wholeComponent relates a whole item to its countable parts.
type wholeComponent struct {
	whole string
	parts []string
	ratio float64
}

// wholeComponents lists how many parts make up one whole item.
var wholeComponents = []wholeComponent{
	{whole: "garlic", parts: []string{"clove"}, ratio: 10},
	{whole: "rosemary", parts: []string{"sprig"}, ratio: 6},
	{whole: "thyme", parts: []string{"sprig"}, ratio: 12},
	{whole: "parsley", parts: []string{"sprig"}, ratio: 15},
	{whole: "cilantro", parts: []string{"sprig"}, ratio: 15},
	{whole: "celery", parts: []string{"stalk", "rib"}, ratio: 8},
	{whole: "lemon", parts: []string{"wedge"}, ratio: 8},
	{whole: "lime", parts: []string{"wedge"}, ratio: 6},
	{whole: "orange", parts: []string{"segment"}, ratio: 10},
	{whole: "bread", parts: []string{"slice"}, ratio: 20},
	{whole: "lettuce", parts: []string{"leaf", "leaves"}, ratio: 12},
}

func mentionsAny(name string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(name, t) {
			return true
		}
	}
	return false
}

// ConvertWholeToComponent converts between whole items and their parts,
// e.g. 1 garlic bulb = 10 cloves. Forward (whole to part) multiplies, the
// reverse direction divides. ok is false when no table entry applies.
func ConvertWholeToComponent(quantity float64, fromItemName, toItemName string) (float64, bool) {
	from := strings.ToLower(fromItemName)
	to := strings.ToLower(toItemName)

	for _, wc := range wholeComponents {
		if strings.Contains(from, wc.whole) && !mentionsAny(from, wc.parts) && mentionsAny(to, wc.parts) {
			return quantity * wc.ratio, true
		}
	}

	for _, wc := range wholeComponents {
		if mentionsAny(from, wc.parts) && strings.Contains(to, wc.whole) && !mentionsAny(to, wc.parts) {
			return quantity / wc.ratio, true
		}
	}

	return 0, false
}

// DetectFamily finds the unit family a recipe line is measured in. Vague
// units win over everything, measurement units over counting units, and
// FamilyUnknown is returned when the text names no unit.
func DetectFamily(text string) Family {
	words := strings.Fields(nonAlphaPattern.ReplaceAllString(strings.ToLower(text), " "))

	found := FamilyUnknown
	for i, w := range words {
		if IsVagueUnit(w) {
			return FamilyVague
		}
		candidate := w
		if i+1 < len(words) {
			if _, ok := unitAliases[w+" "+words[i+1]]; ok {
				candidate = w + " " + words[i+1]
			}
		}
		if _, ok := unitAliases[candidate]; ok {
			if found == FamilyUnknown || found == FamilyCount {
				found = FamilyOf(candidate)
			}
			continue
		}
		if countUnits[w] && found == FamilyUnknown {
			found = FamilyCount
		}
	}
	return found
}
