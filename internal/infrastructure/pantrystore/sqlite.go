package pantrystore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrychef/backend/internal/domain"
)

// PantryItemModel is the persisted form of a pantry item
type PantryItemModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"index;not null"`
	InventoryID string
	Name        string  `gorm:"not null"`
	Quantity    float64 `gorm:"not null"`
	Unit        string
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default pluralised table name
func (PantryItemModel) TableName() string {
	return "pantry_items"
}

func (m PantryItemModel) toDomain() domain.PantryItem {
	return domain.PantryItem{
		ItemID:         m.ID,
		ItemName:       m.Name,
		Quantity:       m.Quantity,
		Unit:           m.Unit,
		ItemExpiration: m.ExpiresAt,
		InventoryID:    m.InventoryID,
	}
}

// SQLiteStore persists pantry items with GORM on SQLite
type SQLiteStore struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an ephemeral database.
func OpenSQLite(path string, debug bool) (*SQLiteStore, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", domain.ErrStoreFailure, err)
	}

	// each :memory: connection is a separate database
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return NewSQLiteStore(db)
}

// NewSQLiteStore wraps an open connection and migrates the schema
func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&PantryItemModel{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", domain.ErrStoreFailure, err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// GetUserPantryItems returns the user's unexpired items with a positive
// quantity, oldest first.
func (s *SQLiteStore) GetUserPantryItems(ctx context.Context, userID string) ([]domain.PantryItem, error) {
	var models []PantryItemModel
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND quantity > 0", userID).
		Where("expires_at IS NULL OR expires_at >= ?", s.now().UTC()).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	items := make([]domain.PantryItem, 0, len(models))
	for _, m := range models {
		items = append(items, m.toDomain())
	}
	return items, nil
}

// AddItem stores a new item. An empty ItemID is assigned a UUID.
func (s *SQLiteStore) AddItem(ctx context.Context, userID string, item domain.PantryItem) (*domain.PantryItem, error) {
	if item.ItemID == "" {
		item.ItemID = uuid.NewString()
	}
	if item.InventoryID == "" {
		item.InventoryID = userID
	}

	model := PantryItemModel{
		ID:          item.ItemID,
		UserID:      userID,
		InventoryID: item.InventoryID,
		Name:        item.ItemName,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		ExpiresAt:   utc(item.ItemExpiration),
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	saved := model.toDomain()
	return &saved, nil
}

// UpdateItem sets the quantity of an existing item
func (s *SQLiteStore) UpdateItem(ctx context.Context, itemID string, quantity float64) error {
	result := s.db.WithContext(ctx).
		Model(&PantryItemModel{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreFailure, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPantryItemNotFound
	}
	return nil
}

// DeleteItem removes an item
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID string) error {
	result := s.db.WithContext(ctx).Delete(&PantryItemModel{}, "id = ?", itemID)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreFailure, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPantryItemNotFound
	}
	return nil
}

// Close releases the underlying connection pool
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// utc normalises timestamps so SQLite's text comparison orders them correctly
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
