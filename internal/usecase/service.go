package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pantrychef/backend/internal/domain"
	"github.com/pantrychef/backend/internal/ingredient"
)

// PantryServiceConfig holds configuration for the pantry service
type PantryServiceConfig struct {
	Substitution   SubstitutionConfig
	Classification RetryPolicy
	Deduction      DeductionConfig
}

// PantryService is the entry point used by the delivery layer. It loads the
// pantry snapshot once per operation and delegates to the engine components.
type PantryService struct {
	store        domain.PantryRepository
	parser       *ingredient.QuantityParser
	availability *AvailabilityChecker
	recommender  *SubstitutionRecommender
	planner      *DeductionPlanner
	logger       *zap.Logger
}

// NewPantryService wires the engine components together. client, cache and
// recorder may be nil.
func NewPantryService(
	store domain.PantryRepository,
	client domain.SuggestionClient,
	cache domain.CacheRepository,
	recorder Recorder,
	logger *zap.Logger,
	config PantryServiceConfig,
) *PantryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	classifier := NewDeductionClassifier(client, recorder, logger, config.Classification)

	return &PantryService{
		store:        store,
		parser:       ingredient.NewQuantityParser(logger.Named("parser")),
		availability: NewAvailabilityChecker(),
		recommender:  NewSubstitutionRecommender(client, cache, recorder, logger.Named("substitution"), config.Substitution),
		planner:      NewDeductionPlanner(store, classifier, recorder, logger.Named("deduction"), config.Deduction),
		logger:       logger,
	}
}

func (s *PantryService) loadPantry(ctx context.Context, userID string) ([]domain.PantryItem, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	items, err := s.store.GetUserPantryItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	return items, nil
}

// ListPantry returns the user's usable pantry items.
func (s *PantryService) ListPantry(ctx context.Context, userID string) ([]domain.PantryItem, error) {
	return s.loadPantry(ctx, userID)
}

// AddPantryItem stores a new pantry item for the user.
func (s *PantryService) AddPantryItem(ctx context.Context, userID string, item domain.PantryItem) (*domain.PantryItem, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(item.ItemName) == "" || item.Quantity < 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.store.AddItem(ctx, userID, item)
}

// ParseIngredient parses one ingredient line against the user's pantry.
func (s *PantryService) ParseIngredient(ctx context.Context, userID, text string) (*domain.ParsedQuantity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: ingredient text is required", domain.ErrInvalidRequest)
	}
	pantry, err := s.loadPantry(ctx, userID)
	if err != nil {
		return nil, err
	}
	parsed := s.parser.Parse(text, pantry)
	return &parsed, nil
}

// CheckIngredientAvailability partitions recipe ingredients against the pantry.
func (s *PantryService) CheckIngredientAvailability(ctx context.Context, userID string, ingredients []domain.IngredientLine) (*domain.AvailabilityResult, error) {
	pantry, err := s.loadPantry(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.availability.Check(ingredients, pantry), nil
}

// SubstitutionRequest describes one missing ingredient
type SubstitutionRequest struct {
	IngredientName string
	OriginalText   string
	RecipeName     string
	CookingMethod  string
	UseAI          bool
}

// FindSubstitutes returns ranked substitutes from the user's pantry, using the
// suggestion service when requested.
func (s *PantryService) FindSubstitutes(ctx context.Context, userID string, req SubstitutionRequest) ([]domain.SubstitutionCandidate, error) {
	if strings.TrimSpace(req.IngredientName) == "" {
		return nil, fmt.Errorf("%w: ingredient name is required", domain.ErrInvalidRequest)
	}
	pantry, err := s.loadPantry(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.UseAI {
		return s.recommender.GetAISubstitutions(ctx, req.IngredientName, pantry, req.RecipeName, req.CookingMethod, req.OriginalText), nil
	}
	return s.recommender.FindSubstitutes(req.IngredientName, pantry, req.OriginalText), nil
}

// CreateSubstitutedRecipe applies confirmed substitutions to a recipe.
func (s *PantryService) CreateSubstitutedRecipe(recipe *domain.Recipe, substitutions domain.SubstitutionMap) (*domain.ModifiedRecipe, error) {
	if recipe == nil {
		return nil, fmt.Errorf("%w: recipe is required", domain.ErrInvalidRequest)
	}
	return CreateSubstitutedRecipe(*recipe, substitutions), nil
}

// PlanDeduction computes the deduction plan without writing to the pantry.
func (s *PantryService) PlanDeduction(ctx context.Context, userID string, used []domain.UsedIngredient) (*domain.DeductionPlan, error) {
	return s.planner.Plan(ctx, userID, used)
}

// SubtractIngredientsFromPantry applies the auto-subtractable deductions.
func (s *PantryService) SubtractIngredientsFromPantry(ctx context.Context, userID string, used []domain.UsedIngredient) (*domain.DeductionResult, error) {
	return s.planner.SubtractIngredientsFromPantry(ctx, userID, used)
}

// ConfirmDeductions applies deductions the user approved.
func (s *PantryService) ConfirmDeductions(ctx context.Context, userID string, confirmed []domain.UsedIngredient) (*domain.DeductionResult, error) {
	return s.planner.ConfirmDeductions(ctx, userID, confirmed)
}
