package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/domain"
)

func tofuRecipe() domain.Recipe {
	return domain.Recipe{
		Name: "Tofu stir fry",
		Ingredients: []domain.IngredientLine{
			{Text: "14 oz firm tofu"},
			{Text: "2 tbsp soy sauce"},
		},
		Instructions: []string{
			"Press the tofu for 20 minutes.",
			"Add the tofu to the pan",
			"Stir in the soy sauce.",
		},
	}
}

func TestCreateSubstitutedRecipe(t *testing.T) {
	chicken := domain.SubstitutionCandidate{
		PantryItemID: "p1", Name: "chicken", Quantity: 500, Unit: "g", RequiresUserInput: true,
	}

	t.Run("ingredient line is replaced", func(t *testing.T) {
		got := CreateSubstitutedRecipe(tofuRecipe(), domain.SubstitutionMap{"14 oz firm tofu": chicken})

		line := got.Ingredients[0]
		assert.Equal(t, "500 g chicken", line.Text)
		assert.True(t, line.IsSubstituted)
		assert.Equal(t, "14 oz firm tofu", line.OriginalText)
		assert.Equal(t, 500.0, line.Quantity)
		assert.Equal(t, "g", line.Unit)
		assert.Equal(t, "p1", line.PantryItemID)
		assert.Equal(t, tofuRecipe().Ingredients[1], got.Ingredients[1])
	})

	t.Run("instructions are rewritten", func(t *testing.T) {
		got := CreateSubstitutedRecipe(tofuRecipe(), domain.SubstitutionMap{"14 oz firm tofu": chicken})

		require.Len(t, got.Instructions, 3)
		assert.Contains(t, got.Instructions[1], "chicken")
		assert.NotContains(t, got.Instructions[1], "tofu")
		assert.Equal(t, "Press the chicken for 20 minutes.", got.Instructions[0])
		assert.Equal(t, "Stir in the soy sauce.", got.Instructions[2])
	})

	t.Run("original recipe is untouched", func(t *testing.T) {
		recipe := tofuRecipe()

		CreateSubstitutedRecipe(recipe, domain.SubstitutionMap{"14 oz firm tofu": chicken})

		assert.Equal(t, tofuRecipe(), recipe)
	})

	t.Run("plain key tofu", func(t *testing.T) {
		recipe := domain.Recipe{
			Ingredients:  []domain.IngredientLine{{Text: "tofu"}},
			Instructions: []string{"Add the tofu to the pan"},
		}

		got := CreateSubstitutedRecipe(recipe, domain.SubstitutionMap{"tofu": chicken})

		assert.Equal(t, "Add the chicken to the pan", got.Instructions[0])
		assert.Equal(t, domain.SubstitutionMap{"tofu": chicken}, got.Substitutions)
	})

	t.Run("unit is omitted when empty", func(t *testing.T) {
		eggs := domain.SubstitutionCandidate{Name: "eggs", Quantity: 6}
		recipe := domain.Recipe{Ingredients: []domain.IngredientLine{{Text: "2 flax eggs"}}}

		got := CreateSubstitutedRecipe(recipe, domain.SubstitutionMap{"2 flax eggs": eggs})

		assert.Equal(t, "6 eggs", got.Ingredients[0].Text)
	})
}
