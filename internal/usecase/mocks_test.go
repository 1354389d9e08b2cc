package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/pantrychef/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]interface{}
	getError  error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockSuggestionClient is a mock implementation of domain.SuggestionClient
type MockSuggestionClient struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

// Complete returns the next scripted response or error; the last entry repeats.
func (m *MockSuggestionClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.calls
	m.calls++
	m.prompts = append(m.prompts, prompt)

	if len(m.errs) > 0 {
		err := m.errs[min(i, len(m.errs)-1)]
		if err != nil {
			return "", err
		}
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	return m.responses[min(i, len(m.responses)-1)], nil
}

func (m *MockSuggestionClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockPantryStore is a mock implementation of domain.PantryRepository
type MockPantryStore struct {
	items       []domain.PantryItem
	getError    error
	updateError map[string]error
	updates     []string
	deletes     []string
}

func NewMockPantryStore(items ...domain.PantryItem) *MockPantryStore {
	return &MockPantryStore{
		items:       items,
		updateError: make(map[string]error),
	}
}

func (m *MockPantryStore) GetUserPantryItems(ctx context.Context, userID string) ([]domain.PantryItem, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	out := make([]domain.PantryItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MockPantryStore) UpdateItem(ctx context.Context, itemID string, quantity float64) error {
	m.updates = append(m.updates, itemID)
	if err := m.updateError[itemID]; err != nil {
		return err
	}
	for i := range m.items {
		if m.items[i].ItemID == itemID {
			m.items[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrPantryItemNotFound
}

func (m *MockPantryStore) DeleteItem(ctx context.Context, itemID string) error {
	m.deletes = append(m.deletes, itemID)
	for i := range m.items {
		if m.items[i].ItemID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrPantryItemNotFound
}

func (m *MockPantryStore) AddItem(ctx context.Context, userID string, item domain.PantryItem) (*domain.PantryItem, error) {
	m.items = append(m.items, item)
	return &item, nil
}

func (m *MockPantryStore) quantity(itemID string) float64 {
	for _, item := range m.items {
		if item.ItemID == itemID {
			return item.Quantity
		}
	}
	return -1
}

// MockRecorder collects recorded outcomes
type MockRecorder struct {
	mu          sync.Mutex
	suggestions []string
	updates     []string
}

func (m *MockRecorder) SuggestionCall(call, outcome string, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestions = append(m.suggestions, call+":"+outcome)
}

func (m *MockRecorder) PantryUpdate(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, outcome)
}

// fastPolicy keeps retry tests quick
func fastPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:    2,
		Timeout:     time.Second,
		TimeoutStep: 0,
		Backoff:     time.Millisecond,
	}
}
