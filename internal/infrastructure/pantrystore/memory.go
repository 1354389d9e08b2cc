package pantrystore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pantrychef/backend/internal/domain"
)

type storedItem struct {
	userID    string
	item      domain.PantryItem
	createdAt time.Time
}

// MemoryStore keeps pantry items in process memory
type MemoryStore struct {
	mutex sync.RWMutex
	items map[string]*storedItem
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory pantry store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*storedItem),
		now:   time.Now,
	}
}

// GetUserPantryItems returns the user's unexpired items with a positive
// quantity, oldest first.
func (s *MemoryStore) GetUserPantryItems(ctx context.Context, userID string) ([]domain.PantryItem, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	var owned []*storedItem
	for _, stored := range s.items {
		if stored.userID == userID && stored.item.Usable(now) {
			owned = append(owned, stored)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].createdAt.Equal(owned[j].createdAt) {
			return owned[i].item.ItemID < owned[j].item.ItemID
		}
		return owned[i].createdAt.Before(owned[j].createdAt)
	})

	result := make([]domain.PantryItem, 0, len(owned))
	for _, stored := range owned {
		result = append(result, stored.item)
	}
	return result, nil
}

// AddItem stores a new item. An empty ItemID is assigned a UUID.
func (s *MemoryStore) AddItem(ctx context.Context, userID string, item domain.PantryItem) (*domain.PantryItem, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if item.ItemID == "" {
		item.ItemID = uuid.NewString()
	}
	if item.InventoryID == "" {
		item.InventoryID = userID
	}

	s.items[item.ItemID] = &storedItem{
		userID:    userID,
		item:      item,
		createdAt: s.now(),
	}

	saved := item
	return &saved, nil
}

// UpdateItem sets the quantity of an existing item
func (s *MemoryStore) UpdateItem(ctx context.Context, itemID string, quantity float64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored, ok := s.items[itemID]
	if !ok {
		return domain.ErrPantryItemNotFound
	}
	stored.item.Quantity = quantity
	return nil
}

// DeleteItem removes an item
func (s *MemoryStore) DeleteItem(ctx context.Context, itemID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return domain.ErrPantryItemNotFound
	}
	delete(s.items, itemID)
	return nil
}
