package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/domain"
)

func testPantry() []domain.PantryItem {
	return []domain.PantryItem{
		{ItemID: "1", ItemName: "chicken breast", Quantity: 500, Unit: "g"},
		{ItemID: "2", ItemName: "tofu", Quantity: 2, Unit: "pcs"},
		{ItemID: "3", ItemName: "ground turkey", Quantity: 1, Unit: "lb"},
		{ItemID: "4", ItemName: "olive oil", Quantity: 1, Unit: "l"},
		{ItemID: "5", ItemName: "milk", Quantity: 2, Unit: "cup"},
	}
}

func names(candidates []domain.SubstitutionCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Name
	}
	return out
}

func newTestRecommender(client domain.SuggestionClient, cache domain.CacheRepository, recorder Recorder) *SubstitutionRecommender {
	return NewSubstitutionRecommender(client, cache, recorder, nil, SubstitutionConfig{Policy: fastPolicy()})
}

func TestFindSubstitutes(t *testing.T) {
	r := newTestRecommender(nil, nil, nil)

	t.Run("category with weight requirement", func(t *testing.T) {
		got := r.FindSubstitutes("beef", testPantry(), "1 lb ground beef")

		assert.Equal(t, []string{"chicken breast", "ground turkey"}, names(got))
		for _, c := range got {
			assert.Equal(t, "Protein", c.Category)
			assert.Equal(t, domain.ConfidenceHigh, c.Confidence)
			assert.True(t, c.RequiresUserInput)
		}
	})

	t.Run("candidates keep pantry unit and quantity", func(t *testing.T) {
		got := r.FindSubstitutes("beef", testPantry(), "1 lb ground beef")

		require.NotEmpty(t, got)
		assert.Equal(t, "g", got[0].Unit)
		assert.Equal(t, 500.0, got[0].Quantity)
		assert.Equal(t, "g", got[0].OriginalUnitInPantry)
		assert.Equal(t, 500.0, got[0].OriginalQuantityInPantry)
	})

	t.Run("no family requirement accepts all and sorts measured first", func(t *testing.T) {
		got := r.FindSubstitutes("beef", testPantry(), "2 beef patties")

		assert.Equal(t, []string{"chicken breast", "ground turkey", "tofu"}, names(got))
		assert.Equal(t, domain.ConfidenceMedium, got[0].Confidence)
	})

	t.Run("vague unit applies no family filter", func(t *testing.T) {
		got := r.FindSubstitutes("canola oil", testPantry(), "a splash of canola oil")

		assert.Equal(t, []string{"olive oil"}, names(got))
	})

	t.Run("family mismatch is rejected", func(t *testing.T) {
		got := r.FindSubstitutes("cream", testPantry(), "200 g cream")

		assert.Empty(t, got)
	})

	t.Run("similar name fallback", func(t *testing.T) {
		got := r.FindSubstitutes("chipotle", testPantry(), "1 chipotle")

		require.Len(t, got, 1)
		assert.Equal(t, "chicken breast", got[0].Name)
		assert.Equal(t, domain.ConfidenceLow, got[0].Confidence)
	})

	t.Run("similar names are not tried when the category matched", func(t *testing.T) {
		pantry := []domain.PantryItem{
			{ItemID: "1", ItemName: "milk", Quantity: 2, Unit: "cup"},
			{ItemID: "2", ItemName: "butternut squash", Quantity: 1, Unit: "kg"},
		}

		assert.Empty(t, r.FindSubstitutes("butter", pantry, "100 g butter"))
	})

	t.Run("at most ten candidates", func(t *testing.T) {
		var pantry []domain.PantryItem
		for i := 0; i < 12; i++ {
			pantry = append(pantry, domain.PantryItem{
				ItemID: fmt.Sprint(i), ItemName: fmt.Sprintf("chicken cut %d", i), Quantity: 100, Unit: "g",
			})
		}

		got := r.FindSubstitutes("pork", pantry, "1 lb pork")

		assert.Len(t, got, 10)
	})

	t.Run("expired items are skipped", func(t *testing.T) {
		yesterday := time.Now().Add(-24 * time.Hour)
		pantry := []domain.PantryItem{{ItemID: "1", ItemName: "turkey", Quantity: 1, Unit: "kg", ItemExpiration: &yesterday}}

		assert.Empty(t, r.FindSubstitutes("beef", pantry, "1 lb beef"))
	})
}

func TestGetAISubstitutions(t *testing.T) {
	ctx := context.Background()

	t.Run("model suggestions are matched to the pantry", func(t *testing.T) {
		client := &MockSuggestionClient{responses: []string{
			"Sure! Here you go:\n```json\n" +
				`{"substitutes":[` +
				`{"pantryItemName":"Tofu","reason":"plant protein","ratio":"1:1","confidence":0.9},` +
				`{"pantryItemName":"chiken breast","reason":"lean meat","ratio":1,"confidence":"medium"},` +
				`{"pantryItemName":"dragonfruit","reason":"?","ratio":"1:1","confidence":"low"}]}` +
				"\n```",
		}}
		recorder := &MockRecorder{}
		r := newTestRecommender(client, nil, recorder)

		got := r.GetAISubstitutions(ctx, "beef", testPantry(), "Beef stew", "braise", "1 lb beef")

		require.Len(t, got, 2)
		assert.Equal(t, "tofu", got[0].Name)
		assert.Equal(t, "pcs", got[0].Unit)
		assert.Equal(t, domain.ConfidenceHigh, got[0].Confidence)
		assert.Equal(t, "1:1", got[0].Ratio)
		assert.True(t, got[0].RequiresUserInput)
		assert.Equal(t, "chicken breast", got[1].Name)
		assert.Equal(t, "1", got[1].Ratio)
		assert.Equal(t, []string{"substitution:model"}, recorder.suggestions)
		assert.Contains(t, client.prompts[0], "Beef stew")
		assert.Contains(t, client.prompts[0], "- tofu (2 pcs)")
	})

	t.Run("failing service returns rule-based result", func(t *testing.T) {
		client := &MockSuggestionClient{errs: []error{domain.ErrSuggestionRetryable}}
		recorder := &MockRecorder{}
		r := newTestRecommender(client, nil, recorder)

		got := r.GetAISubstitutions(ctx, "beef", testPantry(), "Beef stew", "braise", "1 lb beef")
		want := r.FindSubstitutes("beef", testPantry(), "1 lb beef")

		assert.Equal(t, want, got)
		assert.NotEmpty(t, got)
		assert.Equal(t, 2, client.Calls())
		assert.Equal(t, []string{"substitution:fallback_error"}, recorder.suggestions)
	})

	t.Run("unmatched suggestions fall back", func(t *testing.T) {
		client := &MockSuggestionClient{responses: []string{`{"substitutes":[{"pantryItemName":"seitan","reason":"x","confidence":"high"}]}`}}
		recorder := &MockRecorder{}
		r := newTestRecommender(client, nil, recorder)

		got := r.GetAISubstitutions(ctx, "beef", testPantry(), "", "", "1 lb beef")

		assert.Equal(t, r.FindSubstitutes("beef", testPantry(), "1 lb beef"), got)
		assert.Equal(t, 1, client.Calls())
		assert.Equal(t, []string{"substitution:fallback_empty"}, recorder.suggestions)
	})

	t.Run("malformed response falls back", func(t *testing.T) {
		client := &MockSuggestionClient{responses: []string{"I cannot help with that."}}
		r := newTestRecommender(client, nil, nil)

		got := r.GetAISubstitutions(ctx, "beef", testPantry(), "", "", "1 lb beef")

		assert.Equal(t, r.FindSubstitutes("beef", testPantry(), "1 lb beef"), got)
	})

	t.Run("no client uses rules", func(t *testing.T) {
		recorder := &MockRecorder{}
		r := newTestRecommender(nil, nil, recorder)

		got := r.GetAISubstitutions(ctx, "beef", testPantry(), "", "", "1 lb beef")

		assert.Equal(t, r.FindSubstitutes("beef", testPantry(), "1 lb beef"), got)
		assert.Equal(t, []string{"substitution:fallback_disabled"}, recorder.suggestions)
	})

	t.Run("responses are cached by prompt", func(t *testing.T) {
		client := &MockSuggestionClient{responses: []string{`{"substitutes":[{"pantryItemName":"tofu","reason":"x","confidence":"high"}]}`}}
		cache := NewMockCacheRepository()
		recorder := &MockRecorder{}
		r := newTestRecommender(client, cache, recorder)

		first := r.GetAISubstitutions(ctx, "beef", testPantry(), "", "", "1 lb beef")
		second := r.GetAISubstitutions(ctx, "beef", testPantry(), "", "", "1 lb beef")

		assert.Equal(t, first, second)
		assert.Equal(t, 1, client.Calls())
		assert.True(t, cache.setCalled)
		assert.Equal(t, []string{"substitution:model", "substitution:cache_hit"}, recorder.suggestions)
	})

	t.Run("cache failures are ignored", func(t *testing.T) {
		client := &MockSuggestionClient{responses: []string{`{"substitutes":[{"pantryItemName":"tofu","reason":"x","confidence":"high"}]}`}}
		cache := NewMockCacheRepository()
		cache.getError = errors.New("connection refused")
		cache.setError = errors.New("connection refused")
		r := newTestRecommender(client, cache, nil)

		got := r.GetAISubstitutions(ctx, "beef", testPantry(), "", "", "1 lb beef")

		require.Len(t, got, 1)
		assert.Equal(t, "tofu", got[0].Name)
	})
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Confidence
	}{
		{`"high"`, domain.ConfidenceHigh},
		{`"LOW"`, domain.ConfidenceLow},
		{`0.85`, domain.ConfidenceHigh},
		{`0.6`, domain.ConfidenceMedium},
		{`"30%"`, domain.ConfidenceLow},
		{`75`, domain.ConfidenceMedium},
		{``, domain.ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseConfidence([]byte(tt.raw)))
		})
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"bell pepper", "Vegetable"},
		{"red bell peppers", "Vegetable"},
		{"black pepper", "Seasoning"},
		{"cheddar cheese", "Dairy"},
		{"2 lbs boneless chicken thighs", "Protein"},
		{"Peanut oil", "Oil"},
		{"potatoes", "Vegetable"},
		{"molasses", "Sweetener"},
		{"chipotle", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categoryOf(tt.name))
		})
	}
}
