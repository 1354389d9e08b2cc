package ingredient

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pantrychef/backend/internal/domain"
)

// Default quantity for seasonings listed without an amount
const (
	defaultSeasoningValue = 0.5
	defaultSeasoningUnit  = "tbsp"
)

var (
	// Matches cut/preparation descriptors that are not part of the ingredient identity
	nonStandardDescriptorPattern = regexp.MustCompile(`\b(boneless|skinless|skin-on|bone-in|skin on|bone in|deveined|shell-on|pitted|seedless|unpeeled)\b`)

	// Matches a quantity at the very start of the text ("3", "1/2", "a", "an")
	leadingQuantityPattern = regexp.MustCompile(`^(` + numberExpr + `|an?)\b`)

	leadingNumberPattern = regexp.MustCompile(`^(` + numberExpr + `)`)

	bulletPattern     = regexp.MustCompile(`^[\s\-*•·]+`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// ingredientSynonyms maps recipe wording to the name a pantry usually uses
var ingredientSynonyms = map[string]string{
	"fryer":        "chicken",
	"broiler":      "chicken",
	"roaster":      "chicken",
	"scallion":     "green onion",
	"spring onion": "green onion",
	"garbanzo":     "chickpea",
	"cilantro":     "coriander",
	"coriander":    "cilantro",
	"aubergine":    "eggplant",
	"courgette":    "zucchini",
	"capsicum":     "bell pepper",
	"confectioner": "powdered sugar",
	"icing sugar":  "powdered sugar",
	"minced meat":  "ground beef",
}

// defaultSeasonings get half a tablespoon when no amount is given
var defaultSeasonings = map[string]bool{
	"salt": true, "kosher salt": true, "sea salt": true, "table salt": true,
	"pepper": true, "black pepper": true, "white pepper": true, "salt pepper": true,
	"oil": true, "olive oil": true, "vegetable oil": true, "canola oil": true,
	"cooking oil": true, "sesame oil": true, "coconut oil": true,
	"butter": true, "unsalted butter": true, "salted butter": true,
}

// QuantityParser turns free-text ingredient lines into structured quantities
type QuantityParser struct {
	logger     *zap.Logger
	strategies []quantityStrategy
}

// NewQuantityParser creates a parser. A nil logger disables tracing.
func NewQuantityParser(logger *zap.Logger) *QuantityParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuantityParser{
		logger:     logger,
		strategies: defaultStrategies(),
	}
}

// StrategyNames returns the parsing strategies in the order they are tried.
func (p *QuantityParser) StrategyNames() []string {
	names := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		names[i] = s.name
	}
	return names
}

// Parse reads the quantity of one ingredient line. Pantry items take
// precedence: when the ingredient is in the pantry, the pantry unit is used
// regardless of the unit written in the recipe.
func (p *QuantityParser) Parse(text string, pantryItems []domain.PantryItem) domain.ParsedQuantity {
	cleaned, descriptors := stripDescriptors(prepare(text))
	name := Normalize(cleaned)

	if item, ok := findPantryMatch(name, pantryItems); ok {
		value := 1.0
		if m := leadingNumberPattern.FindString(cleaned); m != "" {
			if v, ok := parseNumber(m); ok {
				value = v
			}
		}
		unit := item.Unit
		if unit == "" {
			unit = CountUnit
		}
		p.logger.Debug("quantity taken from pantry unit",
			zap.String("ingredient", text),
			zap.String("pantry_item", item.ItemName),
			zap.Float64("value", value),
			zap.String("unit", unit))
		return domain.ParsedQuantity{Value: value, Unit: unit, Descriptors: descriptors, FromPantry: true}
	}

	if !leadingQuantityPattern.MatchString(cleaned) && !bareVaguePattern.MatchString(cleaned) && defaultSeasonings[name] {
		p.logger.Debug("default seasoning quantity",
			zap.String("ingredient", text))
		return domain.ParsedQuantity{Value: defaultSeasoningValue, Unit: defaultSeasoningUnit, Descriptors: descriptors}
	}

	for _, s := range p.strategies {
		if q, ok := s.apply(cleaned); ok {
			q.Descriptors = descriptors
			p.logger.Debug("quantity parsed",
				zap.String("strategy", s.name),
				zap.String("ingredient", text),
				zap.Float64("value", q.Value),
				zap.String("unit", q.Unit))
			return q
		}
	}

	p.logger.Debug("no quantity pattern matched, using default",
		zap.String("ingredient", text))
	return domain.ParsedQuantity{Value: 1, Unit: CountUnit, Descriptors: descriptors}
}

// prepare lowercases the text and expands unicode fractions.
func prepare(text string) string {
	s := strings.ToLower(text)
	s = unicodeFractions.Replace(s)
	s = bulletPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(s, " "))
}

func stripDescriptors(text string) (string, []string) {
	descriptors := append([]string{}, nonStandardDescriptorPattern.FindAllString(text, -1)...)
	if len(descriptors) == 0 {
		return text, descriptors
	}
	cleaned := nonStandardDescriptorPattern.ReplaceAllString(text, " ")
	cleaned = strings.TrimSpace(multiSpacePattern.ReplaceAllString(cleaned, " "))
	return cleaned, descriptors
}

// findPantryMatch looks for a pantry item whose normalized name contains, or
// is contained in, the ingredient name, directly or through a synonym.
func findPantryMatch(name string, pantryItems []domain.PantryItem) (domain.PantryItem, bool) {
	if name == "" {
		return domain.PantryItem{}, false
	}
	for _, item := range pantryItems {
		pantryName := Normalize(item.ItemName)
		if pantryName == "" {
			continue
		}
		if strings.Contains(name, pantryName) || strings.Contains(pantryName, name) {
			return item, true
		}
		for word, synonym := range ingredientSynonyms {
			if strings.Contains(name, word) && strings.Contains(pantryName, synonym) {
				return item, true
			}
		}
	}
	return domain.PantryItem{}, false
}
