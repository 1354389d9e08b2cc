package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pantrychef/backend/internal/domain"
	"github.com/pantrychef/backend/internal/ingredient"
)

// CreateSubstitutedRecipe returns a copy of recipe with substituted
// ingredient lines and rewritten instructions. The input is not modified.
func CreateSubstitutedRecipe(recipe domain.Recipe, substitutions domain.SubstitutionMap) *domain.ModifiedRecipe {
	modified := &domain.ModifiedRecipe{
		Recipe:        recipe,
		Substitutions: make(domain.SubstitutionMap, len(substitutions)),
	}
	for k, v := range substitutions {
		modified.Substitutions[k] = v
	}

	modified.Ingredients = make([]domain.IngredientLine, len(recipe.Ingredients))
	for i, line := range recipe.Ingredients {
		sub, ok := lookupSubstitution(line, substitutions)
		if !ok {
			modified.Ingredients[i] = line
			continue
		}

		original := line.Text
		if line.IsSubstituted && line.OriginalText != "" {
			original = line.OriginalText
		}
		modified.Ingredients[i] = domain.IngredientLine{
			Text:          substitutedText(sub),
			Name:          sub.Name,
			Quantity:      sub.Quantity,
			Unit:          sub.Unit,
			IsSubstituted: true,
			OriginalText:  original,
			PantryItemID:  sub.PantryItemID,
		}
	}

	// longest keys first so "chicken breast" is rewritten before "chicken"
	keys := make([]string, 0, len(substitutions))
	for k := range substitutions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	modified.Instructions = make([]string, len(recipe.Instructions))
	for i, step := range recipe.Instructions {
		for _, k := range keys {
			step = ingredient.ReplaceMentions(step, k, substitutions[k].Name)
		}
		modified.Instructions[i] = step
	}

	return modified
}

func lookupSubstitution(line domain.IngredientLine, substitutions domain.SubstitutionMap) (domain.SubstitutionCandidate, bool) {
	for _, key := range []string{line.Text, line.OriginalText, line.Name} {
		if key == "" {
			continue
		}
		if sub, ok := substitutions[key]; ok {
			return sub, true
		}
	}
	return domain.SubstitutionCandidate{}, false
}

func substitutedText(sub domain.SubstitutionCandidate) string {
	parts := []string{strconv.FormatFloat(sub.Quantity, 'f', -1, 64)}
	if sub.Unit != "" {
		parts = append(parts, sub.Unit)
	}
	parts = append(parts, sub.Name)
	return strings.Join(parts, " ")
}
