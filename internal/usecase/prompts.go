package usecase

import (
	"fmt"
	"strings"

	"github.com/pantrychef/backend/internal/domain"
)

func formatPantryLines(items []domain.PantryItem) string {
	var b strings.Builder
	for _, item := range items {
		unit := item.Unit
		if unit == "" {
			unit = "pcs"
		}
		fmt.Fprintf(&b, "- %s (%g %s)\n", item.ItemName, item.Quantity, unit)
	}
	return b.String()
}

func buildSubstitutionPrompt(missing string, pantry []domain.PantryItem, recipeName, cookingMethod, originalText string) string {
	var b strings.Builder
	b.WriteString("You are a cooking assistant helping a home cook replace a missing ingredient using only what is in their pantry.\n\n")
	fmt.Fprintf(&b, "Recipe: %s\n", orUnknown(recipeName))
	fmt.Fprintf(&b, "Cooking method: %s\n", orUnknown(cookingMethod))
	fmt.Fprintf(&b, "Missing ingredient: %s\n", missing)
	if originalText != "" {
		fmt.Fprintf(&b, "Original recipe line: %s\n", originalText)
	}
	b.WriteString("\nPantry items:\n")
	b.WriteString(formatPantryLines(pantry))
	b.WriteString(`
Suggest up to 5 substitutes. Only use pantry item names exactly as listed above.
Respond with JSON only, no prose, in this format:
{"substitutes":[{"pantryItemName":"<name from the list>","reason":"<short reason>","ratio":"<e.g. 1:1>","confidence":"high|medium|low"}]}
If nothing in the pantry works, respond with {"substitutes":[]}.`)
	return b.String()
}

func buildClassificationPrompt(used []domain.UsedIngredient) string {
	var b strings.Builder
	b.WriteString("Classify the ingredients a cook just used for deduction from their pantry.\n")
	b.WriteString("Solid foods measured by weight can be subtracted automatically. Condiments, seasonings, liquids, and anything measured by volume or count need the user to confirm.\n\n")
	b.WriteString("Ingredients (index: name, amount):\n")
	for i, u := range used {
		unit := u.Unit
		if unit == "" {
			unit = "pcs"
		}
		fmt.Fprintf(&b, "%d: %s, %g %s\n", i, u.Name, u.Quantity, unit)
	}
	b.WriteString(`
Respond with JSON only, listing every index exactly once:
{"autoSubtract":[<indices>],"needsConfirmation":[<indices>]}`)
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
