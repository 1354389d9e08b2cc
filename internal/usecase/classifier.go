package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pantrychef/backend/internal/domain"
	"github.com/pantrychef/backend/internal/ingredient"
)

// Reasons attached to needs-confirmation items
const (
	reasonCondiment  = "condiment, seasoning or liquid"
	reasonVolume     = "measured by volume"
	reasonCount      = "counted item"
	reasonUnmeasured = "no weight given"
	reasonModel      = "flagged for review"
)

// condimentKeywords mark ingredients that always need user confirmation
var condimentKeywords = []string{
	"salt", "pepper", "oil", "vinegar", "sauce", "spice", "seasoning", "ketchup",
	"mustard", "mayo", "dressing", "syrup", "honey", "extract", "powder", "paprika",
	"cumin", "oregano", "basil", "thyme", "cinnamon", "herb", "stock", "broth",
	"water", "milk", "cream", "juice", "wine", "sugar", "zest", "flakes",
}

// FallbackClassify applies the deterministic deduction rule: only
// weight-measured items that are not condiments are auto-subtractable.
func FallbackClassify(used domain.UsedIngredient) (bool, string) {
	name := strings.ToLower(used.Name + " " + used.OriginalText)
	for _, kw := range condimentKeywords {
		if strings.Contains(name, kw) {
			return false, reasonCondiment
		}
	}

	switch ingredient.FamilyOf(used.Unit) {
	case ingredient.FamilyWeight:
		return true, ""
	case ingredient.FamilyVolume:
		return false, reasonVolume
	case ingredient.FamilyCount:
		return false, reasonCount
	default:
		return false, reasonUnmeasured
	}
}

// Classification maps used-ingredient indices to auto-subtract decisions.
// Reasons is set for every index that needs confirmation.
type Classification struct {
	Auto    map[int]bool
	Reasons map[int]string
}

// DeductionClassifier decides which used ingredients can be subtracted
// without asking the user
type DeductionClassifier struct {
	client   domain.SuggestionClient
	policy   RetryPolicy
	recorder Recorder
	logger   *zap.Logger
}

// NewDeductionClassifier creates a classifier. A nil client uses the
// deterministic rule only.
func NewDeductionClassifier(client domain.SuggestionClient, recorder Recorder, logger *zap.Logger, policy RetryPolicy) *DeductionClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if policy.Attempts == 0 {
		policy = DefaultClassificationPolicy()
	}
	return &DeductionClassifier{
		client:   client,
		policy:   policy,
		recorder: recorder,
		logger:   logger,
	}
}

// Classify returns the classification of every used ingredient. The model
// can only move items to needs-confirmation; it never promotes an item the
// deterministic rule holds back.
func (c *DeductionClassifier) Classify(ctx context.Context, used []domain.UsedIngredient) Classification {
	base := Classification{Auto: make(map[int]bool), Reasons: make(map[int]string)}
	for i, u := range used {
		auto, reason := FallbackClassify(u)
		base.Auto[i] = auto
		if !auto {
			base.Reasons[i] = reason
		}
	}

	if c.client == nil || len(used) == 0 {
		c.recorder.SuggestionCall(CallClassification, OutcomeFallbackDisabled, 0)
		return base
	}

	start := time.Now()
	prompt := buildClassificationPrompt(used)
	modelAuto, err := callWithFallback(ctx, c.policy, c.logger, CallClassification,
		func(ctx context.Context) (map[int]bool, error) {
			content, err := c.client.Complete(ctx, prompt)
			if err != nil {
				return nil, err
			}
			var resp classificationResponse
			if err := decodeSuggestion(content, &resp); err != nil {
				return nil, err
			}
			out := make(map[int]bool, len(resp.AutoSubtract))
			for _, idx := range resp.AutoSubtract {
				out[idx] = true
			}
			for _, idx := range resp.NeedsConfirmation {
				delete(out, idx)
			}
			return out, nil
		},
		func() map[int]bool { return nil },
	)

	if err != nil {
		c.recorder.SuggestionCall(CallClassification, OutcomeFallbackError, time.Since(start))
		return base
	}
	c.recorder.SuggestionCall(CallClassification, OutcomeModel, time.Since(start))

	for i := range used {
		if base.Auto[i] && !modelAuto[i] {
			base.Auto[i] = false
			base.Reasons[i] = reasonModel
			c.logger.Debug("model held back deduction", zap.String("ingredient", used[i].Name))
		}
	}
	return base
}
