package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pantrychef/backend/internal/domain"
	"github.com/pantrychef/backend/internal/ingredient"
)

const (
	maxSubstitutes           = 10
	similarNamePrefixLen     = 3
	suggestionMatchThreshold = 0.8
)

var errNoMatchedSuggestions = errors.New("no suggested substitute matched the pantry")

// SubstitutionConfig holds configuration for the substitution recommender
type SubstitutionConfig struct {
	Policy   RetryPolicy
	CacheTTL time.Duration
}

// SubstitutionRecommender proposes pantry items to replace missing ingredients
type SubstitutionRecommender struct {
	client   domain.SuggestionClient
	cache    domain.CacheRepository
	cacheTTL time.Duration
	policy   RetryPolicy
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewSubstitutionRecommender creates a recommender. client and cache may be
// nil; without a client only the rule-based path is used.
func NewSubstitutionRecommender(
	client domain.SuggestionClient,
	cache domain.CacheRepository,
	recorder Recorder,
	logger *zap.Logger,
	config SubstitutionConfig,
) *SubstitutionRecommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if config.Policy.Attempts == 0 {
		config.Policy = DefaultSubstitutionPolicy()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 24 * time.Hour
	}

	return &SubstitutionRecommender{
		client:   client,
		cache:    cache,
		cacheTTL: config.CacheTTL,
		policy:   config.Policy,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// FindSubstitutes ranks pantry items that could replace ingredientName using
// the category table and the unit family of the original recipe line.
func (s *SubstitutionRecommender) FindSubstitutes(
	ingredientName string,
	pantryItems []domain.PantryItem,
	originalText string,
) []domain.SubstitutionCandidate {
	familyText := originalText
	if familyText == "" {
		familyText = ingredientName
	}
	required := ingredient.DetectFamily(familyText)
	strictFamily := required == ingredient.FamilyWeight ||
		required == ingredient.FamilyVolume ||
		required == ingredient.FamilyCount

	missingKey := ingredient.Normalize(ingredientName)
	category := categoryOf(ingredientName)
	now := s.now()

	var eligible []domain.PantryItem
	for _, item := range pantryItems {
		if item.IsExpired(now) {
			continue
		}
		itemKey := ingredient.Normalize(item.ItemName)
		if itemKey == "" || itemKey == missingKey {
			continue
		}
		if strictFamily && ingredient.FamilyOf(item.Unit) != required {
			continue
		}
		eligible = append(eligible, item)
	}

	var candidates []domain.SubstitutionCandidate
	if category != "" {
		confidence := domain.ConfidenceMedium
		if strictFamily {
			confidence = domain.ConfidenceHigh
		}
		reason := fmt.Sprintf("Both are %s ingredients", strings.ToLower(category))
		for _, item := range eligible {
			if categoryOf(item.ItemName) == category {
				candidates = append(candidates, newCandidate(item, category, reason, confidence))
			}
		}
	}

	if category == "" {
		reason := fmt.Sprintf("Similar to %s", ingredientName)
		for _, item := range eligible {
			if sharesPrefix(missingKey, ingredient.Normalize(item.ItemName)) {
				candidates = append(candidates, newCandidate(item, categoryOf(item.ItemName), reason, domain.ConfidenceLow))
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		mi := ingredient.IsMeasurementUnit(candidates[i].Unit)
		mj := ingredient.IsMeasurementUnit(candidates[j].Unit)
		if mi != mj {
			return mi
		}
		return candidates[i].Confidence.Rank() < candidates[j].Confidence.Rank()
	})

	if len(candidates) > maxSubstitutes {
		candidates = candidates[:maxSubstitutes]
	}

	s.logger.Debug("rule-based substitutes",
		zap.String("ingredient", ingredientName),
		zap.String("category", category),
		zap.String("required_family", string(required)),
		zap.Int("candidates", len(candidates)))

	return candidates
}

// GetAISubstitutions asks the suggestion service for substitutes and falls
// back to FindSubstitutes on any failure or when no suggestion matches a
// pantry item.
func (s *SubstitutionRecommender) GetAISubstitutions(
	ctx context.Context,
	missingIngredient string,
	pantryItems []domain.PantryItem,
	recipeName string,
	cookingMethod string,
	originalText string,
) []domain.SubstitutionCandidate {
	fallback := func() []domain.SubstitutionCandidate {
		return s.FindSubstitutes(missingIngredient, pantryItems, originalText)
	}

	start := time.Now()
	if s.client == nil {
		s.recorder.SuggestionCall(CallSubstitution, OutcomeFallbackDisabled, 0)
		return fallback()
	}

	usable := make([]domain.PantryItem, 0, len(pantryItems))
	now := s.now()
	for _, item := range pantryItems {
		if !item.IsExpired(now) {
			usable = append(usable, item)
		}
	}

	prompt := buildSubstitutionPrompt(missingIngredient, usable, recipeName, cookingMethod, originalText)
	cacheHit := false

	result, err := callWithFallback(ctx, s.policy, s.logger, CallSubstitution,
		func(ctx context.Context) ([]domain.SubstitutionCandidate, error) {
			content, hit, err := s.complete(ctx, prompt)
			if err != nil {
				return nil, err
			}
			cacheHit = hit

			var resp substitutionResponse
			if err := decodeSuggestion(content, &resp); err != nil {
				return nil, err
			}
			matched := s.matchSuggestions(resp.Substitutes, usable)
			if len(matched) == 0 {
				return nil, errNoMatchedSuggestions
			}
			return matched, nil
		},
		fallback,
	)

	elapsed := time.Since(start)
	switch {
	case errors.Is(err, errNoMatchedSuggestions):
		s.recorder.SuggestionCall(CallSubstitution, OutcomeFallbackEmpty, elapsed)
	case err != nil:
		s.recorder.SuggestionCall(CallSubstitution, OutcomeFallbackError, elapsed)
	case cacheHit:
		s.recorder.SuggestionCall(CallSubstitution, OutcomeCacheHit, elapsed)
	default:
		s.recorder.SuggestionCall(CallSubstitution, OutcomeModel, elapsed)
	}

	return result
}

// complete returns the model answer for prompt, consulting the cache first.
// Cache errors are logged and otherwise ignored.
func (s *SubstitutionRecommender) complete(ctx context.Context, prompt string) (string, bool, error) {
	key := suggestionCacheKey(prompt)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			if content, ok := cached.(string); ok {
				return content, true, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("suggestion cache read failed", zap.Error(err))
		}
	}

	content, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return "", false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, content, s.cacheTTL); err != nil {
			s.logger.Warn("suggestion cache write failed", zap.Error(err))
		}
	}
	return content, false, nil
}

// matchSuggestions resolves model-returned names against the pantry: exact,
// then normalized, then fuzzy containment, then edit-distance similarity.
func (s *SubstitutionRecommender) matchSuggestions(
	suggestions []suggestedSubstitute,
	pantryItems []domain.PantryItem,
) []domain.SubstitutionCandidate {
	seen := make(map[string]bool)
	var out []domain.SubstitutionCandidate

	for _, sug := range suggestions {
		item, tier, ok := resolvePantryItem(sug.PantryItemName, pantryItems)
		if !ok {
			s.logger.Debug("suggested substitute not in pantry",
				zap.String("suggestion", sug.PantryItemName))
			continue
		}
		id := item.ItemID
		if id == "" {
			id = item.ItemName
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		c := newCandidate(item, categoryOf(item.ItemName), sug.Reason, parseConfidence(sug.Confidence))
		c.Ratio = rawText(sug.Ratio)
		out = append(out, c)

		s.logger.Debug("suggested substitute matched",
			zap.String("suggestion", sug.PantryItemName),
			zap.String("pantry_item", item.ItemName),
			zap.String("tier", tier))

		if len(out) == maxSubstitutes {
			break
		}
	}
	return out
}

func resolvePantryItem(name string, pantryItems []domain.PantryItem) (domain.PantryItem, string, bool) {
	wanted := strings.ToLower(strings.TrimSpace(name))
	if wanted == "" {
		return domain.PantryItem{}, "", false
	}

	for _, item := range pantryItems {
		if strings.ToLower(strings.TrimSpace(item.ItemName)) == wanted {
			return item, "exact", true
		}
	}

	wantedKey := ingredient.Normalize(wanted)
	for _, item := range pantryItems {
		if ingredient.Normalize(item.ItemName) == wantedKey {
			return item, "normalized", true
		}
	}

	for _, item := range pantryItems {
		if ingredient.Matches(wantedKey, ingredient.Normalize(item.ItemName)) {
			return item, "fuzzy", true
		}
	}

	best, bestScore := -1, 0.0
	for i, item := range pantryItems {
		score := ingredient.Similarity(wantedKey, ingredient.Normalize(item.ItemName))
		if score >= suggestionMatchThreshold && score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		return pantryItems[best], "similarity", true
	}
	return domain.PantryItem{}, "", false
}

func newCandidate(item domain.PantryItem, category, reason string, confidence domain.Confidence) domain.SubstitutionCandidate {
	return domain.SubstitutionCandidate{
		PantryItemID:             item.ItemID,
		Name:                     item.ItemName,
		Quantity:                 item.Quantity,
		Unit:                     item.Unit,
		Category:                 category,
		Reason:                   reason,
		Confidence:               confidence,
		OriginalQuantityInPantry: item.Quantity,
		OriginalUnitInPantry:     item.Unit,
		RequiresUserInput:        true,
	}
}

func sharesPrefix(a, b string) bool {
	if len(a) < similarNamePrefixLen || len(b) < similarNamePrefixLen {
		return false
	}
	return a[:similarNamePrefixLen] == b[:similarNamePrefixLen]
}

func suggestionCacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "suggestion:" + hex.EncodeToString(sum[:])
}
