package domain

import "encoding/json"

// IngredientLine is one entry of a recipe's ingredient list. Plain string
// lines are represented with only Text set.
type IngredientLine struct {
	Text          string  `json:"text"`
	Name          string  `json:"name,omitempty"`
	Quantity      float64 `json:"quantity,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	IsSubstituted bool    `json:"isSubstituted,omitempty"`
	OriginalText  string  `json:"originalText,omitempty"`
	PantryItemID  string  `json:"pantryItemId,omitempty"`
}

// Label returns the text used to identify the ingredient.
func (l IngredientLine) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Text
}

// UnmarshalJSON accepts either a plain string or an object.
func (l *IngredientLine) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*l = IngredientLine{Text: text}
		return nil
	}

	type plain IngredientLine
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = IngredientLine(p)
	return nil
}

// LinesFromStrings wraps plain ingredient strings.
func LinesFromStrings(lines []string) []IngredientLine {
	out := make([]IngredientLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, IngredientLine{Text: l})
	}
	return out
}

// Recipe is the input to the mutation engine.
type Recipe struct {
	ID            string           `json:"id,omitempty"`
	Name          string           `json:"name"`
	CookingMethod string           `json:"cookingMethod,omitempty"`
	Ingredients   []IngredientLine `json:"ingredients"`
	Instructions  []string         `json:"instructions,omitempty"`
}

// UnmarshalJSON reads the structured "ingredients" list and falls back to
// plain "ingredientLines" strings when no structured list is given.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type plain Recipe
	var p struct {
		plain
		IngredientLines []string `json:"ingredientLines"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Recipe(p.plain)
	if len(r.Ingredients) == 0 && len(p.IngredientLines) > 0 {
		r.Ingredients = LinesFromStrings(p.IngredientLines)
	}
	return nil
}

// ModifiedRecipe is a recipe after substitutions were applied.
type ModifiedRecipe struct {
	Recipe
	Substitutions SubstitutionMap `json:"substitutions"`
}

// UnmarshalJSON keeps the substitution map alongside the embedded recipe.
func (m *ModifiedRecipe) UnmarshalJSON(data []byte) error {
	if err := m.Recipe.UnmarshalJSON(data); err != nil {
		return err
	}
	var subs struct {
		Substitutions SubstitutionMap `json:"substitutions"`
	}
	if err := json.Unmarshal(data, &subs); err != nil {
		return err
	}
	m.Substitutions = subs.Substitutions
	return nil
}

// Confidence grades a substitution candidate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Rank orders confidences with high first.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 0
	case ConfidenceMedium:
		return 1
	default:
		return 2
	}
}

// ConfidenceFromScore maps a numeric model score in [0,1] to a grade.
func ConfidenceFromScore(score float64) Confidence {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// SubstitutionCandidate is a pantry item proposed in place of a missing
// ingredient. Quantity and Unit are always the pantry item's own values.
type SubstitutionCandidate struct {
	PantryItemID             string     `json:"pantryItemId"`
	Name                     string     `json:"name"`
	Quantity                 float64    `json:"quantity"`
	Unit                     string     `json:"unit"`
	Category                 string     `json:"category,omitempty"`
	Reason                   string     `json:"reason"`
	Confidence               Confidence `json:"confidence"`
	Ratio                    string     `json:"ratio,omitempty"`
	OriginalQuantityInPantry float64    `json:"originalQuantityInPantry"`
	OriginalUnitInPantry     string     `json:"originalUnitInPantry"`
	RequiresUserInput        bool       `json:"requiresUserInput"`
}

// SubstitutionMap maps original ingredient text to the confirmed substitute.
type SubstitutionMap map[string]SubstitutionCandidate
