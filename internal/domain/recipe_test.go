package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientLine_UnmarshalJSON(t *testing.T) {
	var lines []IngredientLine
	payload := `["2 cups flour", {"text": "1 tbsp butter", "name": "butter", "quantity": 1, "unit": "tbsp"}]`

	require.NoError(t, json.Unmarshal([]byte(payload), &lines))
	require.Len(t, lines, 2)

	assert.Equal(t, IngredientLine{Text: "2 cups flour"}, lines[0])
	assert.Equal(t, "butter", lines[1].Name)
	assert.Equal(t, 1.0, lines[1].Quantity)
	assert.Equal(t, "butter", lines[1].Label())
	assert.Equal(t, "2 cups flour", lines[0].Label())

	var bad IngredientLine
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestRecipe_UnmarshalJSON(t *testing.T) {
	t.Run("plain ingredient lines", func(t *testing.T) {
		var r Recipe
		payload := `{"name": "Pancakes", "ingredientLines": ["2 cups flour", "1 egg"]}`

		require.NoError(t, json.Unmarshal([]byte(payload), &r))
		assert.Equal(t, "Pancakes", r.Name)
		assert.Equal(t, []IngredientLine{{Text: "2 cups flour"}, {Text: "1 egg"}}, r.Ingredients)
	})

	t.Run("structured list wins over plain lines", func(t *testing.T) {
		var r Recipe
		payload := `{"name": "Pancakes", "ingredients": [{"text": "1 cup milk", "name": "milk"}], "ingredientLines": ["2 cups flour"]}`

		require.NoError(t, json.Unmarshal([]byte(payload), &r))
		require.Len(t, r.Ingredients, 1)
		assert.Equal(t, "milk", r.Ingredients[0].Name)
	})

	t.Run("modified recipe keeps substitutions", func(t *testing.T) {
		var m ModifiedRecipe
		payload := `{"name": "Stew", "ingredients": ["1 lb beef"], "substitutions": {"1 lb beef": {"name": "turkey", "confidence": "low"}}}`

		require.NoError(t, json.Unmarshal([]byte(payload), &m))
		assert.Equal(t, "Stew", m.Name)
		require.Len(t, m.Ingredients, 1)
		assert.Equal(t, "turkey", m.Substitutions["1 lb beef"].Name)
	})
}

func TestConfidenceFromScore(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, ConfidenceFromScore(0.8))
	assert.Equal(t, ConfidenceMedium, ConfidenceFromScore(0.5))
	assert.Equal(t, ConfidenceLow, ConfidenceFromScore(0.49))
	assert.Less(t, ConfidenceHigh.Rank(), ConfidenceMedium.Rank())
	assert.Less(t, ConfidenceMedium.Rank(), ConfidenceLow.Rank())
}

func TestPantryItem_Usable(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	assert.True(t, PantryItem{Quantity: 1}.Usable(now))
	assert.True(t, PantryItem{Quantity: 1, ItemExpiration: &tomorrow}.Usable(now))
	assert.False(t, PantryItem{Quantity: 1, ItemExpiration: &yesterday}.Usable(now))
	assert.False(t, PantryItem{Quantity: 0}.Usable(now))
}
