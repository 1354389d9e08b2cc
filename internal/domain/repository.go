package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PantryStore is the persistence collaborator used by the engine.
// GetUserPantryItems excludes expired and zero-quantity items.
type PantryStore interface {
	GetUserPantryItems(ctx context.Context, userID string) ([]PantryItem, error)
	UpdateItem(ctx context.Context, itemID string, quantity float64) error
	DeleteItem(ctx context.Context, itemID string) error
}

// PantryRepository extends PantryStore with inventory management
type PantryRepository interface {
	PantryStore
	AddItem(ctx context.Context, userID string, item PantryItem) (*PantryItem, error)
}

// SuggestionClient sends a prompt to the external suggestion service and
// returns the raw text answer.
type SuggestionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
