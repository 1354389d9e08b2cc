package domain

// Conversion types recorded on deduction plan entries.
const (
	ConversionStandard       = "standard"
	ConversionWholeComponent = "whole-component"
)

// UsedIngredient is an ingredient consumed while cooking.
type UsedIngredient struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit,omitempty"`
	OriginalText string  `json:"originalText,omitempty"`
	PantryItemID string  `json:"pantryItemId,omitempty"`
}

// DeductionPlanEntry describes one pantry row update.
type DeductionPlanEntry struct {
	ItemID         string  `json:"itemId"`
	ItemName       string  `json:"itemName"`
	OldQuantity    float64 `json:"oldQuantity"`
	Subtracted     float64 `json:"subtracted"`
	NewQuantity    float64 `json:"newQuantity"`
	Unit           string  `json:"unit,omitempty"`
	ConversionType string  `json:"conversionType"`
}

// ConfirmationItem is a used ingredient held back for user approval.
type ConfirmationItem struct {
	Index        int                 `json:"index"`
	Name         string              `json:"name"`
	Quantity     float64             `json:"quantity"`
	Unit         string              `json:"unit,omitempty"`
	PantryItemID string              `json:"pantryItemId,omitempty"`
	Reason       string              `json:"reason,omitempty"`
	Proposed     *DeductionPlanEntry `json:"proposed,omitempty"`
}

// SkippedIngredient is a used ingredient with no pantry counterpart.
type SkippedIngredient struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// DeductionPlan is the classified, computed set of pantry updates.
type DeductionPlan struct {
	AutoSubtractIndices []int                `json:"autoSubtractIndices"`
	NeedsConfirmation   []ConfirmationItem   `json:"needsConfirmation"`
	Entries             []DeductionPlanEntry `json:"entries"`
	Skipped             []SkippedIngredient  `json:"skipped,omitempty"`
}

// PantryUpdate reports the outcome of one applied plan entry.
type PantryUpdate struct {
	DeductionPlanEntry
	Deleted bool   `json:"deleted,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DeductionResult is returned after applying a plan to the pantry store.
type DeductionResult struct {
	Success           bool                `json:"success"`
	UpdatedCount      int                 `json:"updatedCount"`
	Updates           []PantryUpdate      `json:"updates"`
	NeedsConfirmation []ConfirmationItem  `json:"needsConfirmation"`
	Skipped           []SkippedIngredient `json:"skipped,omitempty"`
}

// AvailabilityResult partitions recipe ingredients against a pantry.
// Insufficient is reserved and currently always empty.
type AvailabilityResult struct {
	Available    []IngredientLine `json:"available"`
	Missing      []IngredientLine `json:"missing"`
	Insufficient []IngredientLine `json:"insufficient"`
}
