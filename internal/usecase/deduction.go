package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/pantrychef/backend/internal/domain"
	"github.com/pantrychef/backend/internal/ingredient"
)

// DeductionConfig holds configuration for the deduction planner
type DeductionConfig struct {
	// DeleteWhenEmpty removes pantry items that reach zero instead of keeping them at 0
	DeleteWhenEmpty bool
}

// DeductionPlanner computes and applies pantry deductions after cooking
type DeductionPlanner struct {
	store           domain.PantryStore
	classifier      *DeductionClassifier
	recorder        Recorder
	logger          *zap.Logger
	deleteWhenEmpty bool
}

// NewDeductionPlanner creates a new deduction planner
func NewDeductionPlanner(
	store domain.PantryStore,
	classifier *DeductionClassifier,
	recorder Recorder,
	logger *zap.Logger,
	config DeductionConfig,
) *DeductionPlanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if classifier == nil {
		classifier = NewDeductionClassifier(nil, recorder, logger, RetryPolicy{})
	}
	return &DeductionPlanner{
		store:           store,
		classifier:      classifier,
		recorder:        recorder,
		logger:          logger,
		deleteWhenEmpty: config.DeleteWhenEmpty,
	}
}

// Plan classifies the used ingredients and computes the pantry updates
// without writing anything.
func (p *DeductionPlanner) Plan(ctx context.Context, userID string, used []domain.UsedIngredient) (*domain.DeductionPlan, error) {
	return p.buildPlan(ctx, userID, used, true)
}

// SubtractIngredientsFromPantry applies the auto-subtractable part of the
// plan one pantry row at a time, in input order. A failed row does not stop
// or undo the others; it is reported in the result.
func (p *DeductionPlanner) SubtractIngredientsFromPantry(ctx context.Context, userID string, used []domain.UsedIngredient) (*domain.DeductionResult, error) {
	plan, err := p.buildPlan(ctx, userID, used, true)
	if err != nil {
		return nil, err
	}
	return p.apply(ctx, plan), nil
}

// ConfirmDeductions applies ingredients the user approved after they were
// returned as needing confirmation.
func (p *DeductionPlanner) ConfirmDeductions(ctx context.Context, userID string, confirmed []domain.UsedIngredient) (*domain.DeductionResult, error) {
	plan, err := p.buildPlan(ctx, userID, confirmed, false)
	if err != nil {
		return nil, err
	}
	return p.apply(ctx, plan), nil
}

func (p *DeductionPlanner) buildPlan(ctx context.Context, userID string, used []domain.UsedIngredient, classify bool) (*domain.DeductionPlan, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	pantry, err := p.store.GetUserPantryItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	var verdict Classification
	if classify {
		verdict = p.classifier.Classify(ctx, used)
	}

	plan := &domain.DeductionPlan{
		AutoSubtractIndices: []int{},
		NeedsConfirmation:   []domain.ConfirmationItem{},
		Entries:             []domain.DeductionPlanEntry{},
	}

	// running quantities so repeated ingredients draw down the same row
	remaining := make(map[string]float64, len(pantry))
	for _, item := range pantry {
		remaining[item.ItemID] = item.Quantity
	}

	for i, u := range used {
		item, ok := matchPantryItem(u, pantry)
		if !ok {
			p.logger.Warn("used ingredient not in pantry, skipping",
				zap.String("ingredient", u.Name))
			plan.Skipped = append(plan.Skipped, domain.SkippedIngredient{
				Index: i, Name: u.Name, Reason: "no matching pantry item",
			})
			continue
		}

		entry := p.computeEntry(u, item, remaining[item.ItemID])

		if classify && !verdict.Auto[i] {
			proposed := entry
			plan.NeedsConfirmation = append(plan.NeedsConfirmation, domain.ConfirmationItem{
				Index:        i,
				Name:         u.Name,
				Quantity:     u.Quantity,
				Unit:         u.Unit,
				PantryItemID: item.ItemID,
				Reason:       verdict.Reasons[i],
				Proposed:     &proposed,
			})
			continue
		}

		remaining[item.ItemID] = entry.NewQuantity
		plan.AutoSubtractIndices = append(plan.AutoSubtractIndices, i)
		plan.Entries = append(plan.Entries, entry)
	}

	return plan, nil
}

func (p *DeductionPlanner) apply(ctx context.Context, plan *domain.DeductionPlan) *domain.DeductionResult {
	result := &domain.DeductionResult{
		Success:           true,
		Updates:           make([]domain.PantryUpdate, 0, len(plan.Entries)),
		NeedsConfirmation: plan.NeedsConfirmation,
		Skipped:           plan.Skipped,
	}

	for _, entry := range plan.Entries {
		update := domain.PantryUpdate{DeductionPlanEntry: entry}

		var err error
		if entry.NewQuantity == 0 && p.deleteWhenEmpty {
			err = p.store.DeleteItem(ctx, entry.ItemID)
			update.Deleted = err == nil
		} else {
			err = p.store.UpdateItem(ctx, entry.ItemID, entry.NewQuantity)
		}

		switch {
		case err != nil:
			update.Error = err.Error()
			result.Success = false
			p.recorder.PantryUpdate(OutcomeFailed)
			p.logger.Error("pantry update failed",
				zap.String("item_id", entry.ItemID),
				zap.String("item", entry.ItemName),
				zap.Error(err))
		case update.Deleted:
			result.UpdatedCount++
			p.recorder.PantryUpdate(OutcomeDeleted)
		default:
			result.UpdatedCount++
			p.recorder.PantryUpdate(OutcomeUpdated)
		}

		result.Updates = append(result.Updates, update)
	}

	return result
}

// computeEntry converts the used amount into the pantry item's unit and
// clamps the new quantity at zero.
func (p *DeductionPlanner) computeEntry(u domain.UsedIngredient, item domain.PantryItem, current float64) domain.DeductionPlanEntry {
	subtract, conversion := p.quantityToSubtract(u, item)
	return domain.DeductionPlanEntry{
		ItemID:         item.ItemID,
		ItemName:       item.ItemName,
		OldQuantity:    current,
		Subtracted:     subtract,
		NewQuantity:    math.Max(0, current-subtract),
		Unit:           item.Unit,
		ConversionType: conversion,
	}
}

// quantityToSubtract tries a standard unit conversion, then whole/component
// conversion when a count unit is involved, then the raw amount.
func (p *DeductionPlanner) quantityToSubtract(u domain.UsedIngredient, item domain.PantryItem) (float64, string) {
	converted, ok := ingredient.Convert(u.Quantity, u.Unit, item.Unit)
	if !ok {
		p.logger.Debug("no conversion path, using value as given",
			zap.String("ingredient", u.Name),
			zap.String("from_unit", u.Unit),
			zap.String("to_unit", item.Unit))
	}

	if converted == u.Quantity && (ingredient.IsCountUnit(u.Unit) || ingredient.IsCountUnit(item.Unit)) {
		described := u.Name
		if u.OriginalText != "" {
			described = u.OriginalText
		}
		from := strings.TrimSpace(u.Unit + " " + described)
		to := strings.TrimSpace(item.ItemName + " " + item.Unit)
		if v, ok := ingredient.ConvertWholeToComponent(u.Quantity, from, to); ok {
			p.logger.Debug("whole/component conversion",
				zap.String("from", from),
				zap.String("to", to),
				zap.Float64("value", v))
			return v, domain.ConversionWholeComponent
		}
	}

	return converted, domain.ConversionStandard
}

// matchPantryItem prefers an explicit pantry id, then an exact normalized
// name, then a fuzzy match.
func matchPantryItem(u domain.UsedIngredient, pantry []domain.PantryItem) (domain.PantryItem, bool) {
	if u.PantryItemID != "" {
		for _, item := range pantry {
			if item.ItemID == u.PantryItemID {
				return item, true
			}
		}
	}

	name := u.Name
	if name == "" {
		name = u.OriginalText
	}
	key := ingredient.Normalize(name)
	if key == "" {
		return domain.PantryItem{}, false
	}

	for _, item := range pantry {
		if ingredient.Normalize(item.ItemName) == key {
			return item, true
		}
	}
	for _, item := range pantry {
		if ingredient.Matches(key, ingredient.Normalize(item.ItemName)) {
			return item, true
		}
	}
	return domain.PantryItem{}, false
}
