package usecase

import (
	"time"

	"github.com/pantrychef/backend/internal/domain"
	"github.com/pantrychef/backend/internal/ingredient"
)

// AvailabilityChecker partitions recipe ingredients into available and missing
type AvailabilityChecker struct {
	now func() time.Time
}

// NewAvailabilityChecker creates a new availability checker
func NewAvailabilityChecker() *AvailabilityChecker {
	return &AvailabilityChecker{now: time.Now}
}

// Check marks an ingredient available when any unexpired pantry item matches
// its normalized name. Quantities are not compared, so Insufficient is always
// empty.
func (c *AvailabilityChecker) Check(ingredients []domain.IngredientLine, pantryItems []domain.PantryItem) *domain.AvailabilityResult {
	now := c.now()
	keys := make([]string, 0, len(pantryItems))
	for _, item := range pantryItems {
		if item.IsExpired(now) {
			continue
		}
		if key := ingredient.Normalize(item.ItemName); key != "" {
			keys = append(keys, key)
		}
	}

	result := &domain.AvailabilityResult{
		Available:    []domain.IngredientLine{},
		Missing:      []domain.IngredientLine{},
		Insufficient: []domain.IngredientLine{},
	}

	for _, line := range ingredients {
		name := ingredient.Normalize(line.Label())
		found := false
		for _, key := range keys {
			if ingredient.Matches(name, key) {
				found = true
				break
			}
		}
		if found {
			result.Available = append(result.Available, line)
		} else {
			result.Missing = append(result.Missing, line)
		}
	}

	return result
}
