package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pantrychef/backend/internal/domain"
)

func TestFallbackClassify(t *testing.T) {
	tests := []struct {
		name       string
		ingredient domain.UsedIngredient
		wantAuto   bool
	}{
		{"salt by tablespoon", domain.UsedIngredient{Name: "salt", Quantity: 1, Unit: "tbsp"}, false},
		{"salt by weight", domain.UsedIngredient{Name: "salt", Quantity: 10, Unit: "g"}, false},
		{"chicken by weight", domain.UsedIngredient{Name: "chicken breast", Quantity: 500, Unit: "g"}, true},
		{"beef in pounds", domain.UsedIngredient{Name: "ground beef", Quantity: 1, Unit: "lbs"}, true},
		{"oil by weight", domain.UsedIngredient{Name: "olive oil", Quantity: 30, Unit: "g"}, false},
		{"liquid by volume", domain.UsedIngredient{Name: "rice", Quantity: 1, Unit: "cup"}, false},
		{"counted", domain.UsedIngredient{Name: "carrots", Quantity: 3, Unit: "pcs"}, false},
		{"no unit", domain.UsedIngredient{Name: "onion", Quantity: 1}, false},
		{"vague", domain.UsedIngredient{Name: "parsley", Quantity: 1, Unit: "handful"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auto, reason := FallbackClassify(tt.ingredient)
			assert.Equal(t, tt.wantAuto, auto)
			if !auto {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestDeductionClassifier_Classify(t *testing.T) {
	ctx := context.Background()
	used := []domain.UsedIngredient{
		{Name: "salt", Quantity: 1, Unit: "tbsp"},
		{Name: "chicken breast", Quantity: 500, Unit: "g"},
		{Name: "pork shoulder", Quantity: 1, Unit: "kg"},
	}

	t.Run("without client uses the rule", func(t *testing.T) {
		c := NewDeductionClassifier(nil, nil, nil, RetryPolicy{})

		got := c.Classify(ctx, used)

		assert.False(t, got.Auto[0])
		assert.True(t, got.Auto[1])
		assert.True(t, got.Auto[2])
		assert.Equal(t, reasonCondiment, got.Reasons[0])
	})

	t.Run("model cannot promote a held back item", func(t *testing.T) {
		client := &MockSuggestionClient{responses: []string{`{"autoSubtract":[0,1,2],"needsConfirmation":[]}`}}
		c := NewDeductionClassifier(client, nil, nil, fastPolicy())

		got := c.Classify(ctx, used)

		assert.False(t, got.Auto[0])
		assert.True(t, got.Auto[1])
		assert.True(t, got.Auto[2])
	})

	t.Run("model can hold back an item", func(t *testing.T) {
		client := &MockSuggestionClient{responses: []string{`{"autoSubtract":[1],"needsConfirmation":[0,2]}`}}
		recorder := &MockRecorder{}
		c := NewDeductionClassifier(client, recorder, nil, fastPolicy())

		got := c.Classify(ctx, used)

		assert.True(t, got.Auto[1])
		assert.False(t, got.Auto[2])
		assert.Equal(t, reasonModel, got.Reasons[2])
		assert.Equal(t, []string{"classification:model"}, recorder.suggestions)
	})

	t.Run("model failure keeps the rule", func(t *testing.T) {
		client := &MockSuggestionClient{responses: []string{"not json"}}
		recorder := &MockRecorder{}
		c := NewDeductionClassifier(client, recorder, nil, fastPolicy())

		got := c.Classify(ctx, used)

		assert.False(t, got.Auto[0])
		assert.True(t, got.Auto[1])
		assert.True(t, got.Auto[2])
		assert.Equal(t, []string{"classification:fallback_error"}, recorder.suggestions)
	})
}
