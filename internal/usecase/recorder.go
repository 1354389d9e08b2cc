package usecase

import "time"

// Suggestion call names
const (
	CallSubstitution   = "substitution"
	CallClassification = "classification"
)

// Suggestion call outcomes
const (
	OutcomeModel            = "model"
	OutcomeCacheHit         = "cache_hit"
	OutcomeFallbackError    = "fallback_error"
	OutcomeFallbackEmpty    = "fallback_empty"
	OutcomeFallbackDisabled = "fallback_disabled"
)

// Pantry write outcomes
const (
	OutcomeUpdated = "updated"
	OutcomeDeleted = "deleted"
	OutcomeFailed  = "failed"
)

// Recorder receives operational counters. Implementations must be safe for
// concurrent use.
type Recorder interface {
	SuggestionCall(call, outcome string, elapsed time.Duration)
	PantryUpdate(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) SuggestionCall(string, string, time.Duration) {}
func (nopRecorder) PantryUpdate(string)                          {}
