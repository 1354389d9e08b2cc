package domain

import "time"

// PantryItem is one row of a user's inventory.
type PantryItem struct {
	ItemID         string     `json:"itemId"`
	ItemName       string     `json:"itemName"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit,omitempty"`
	ItemExpiration *time.Time `json:"itemExpiration,omitempty"`
	InventoryID    string     `json:"inventoryId,omitempty"`
}

// IsExpired reports whether the item expired before now.
func (p PantryItem) IsExpired(now time.Time) bool {
	return p.ItemExpiration != nil && p.ItemExpiration.Before(now)
}

// Usable reports whether the item can take part in matching.
func (p PantryItem) Usable(now time.Time) bool {
	return p.Quantity > 0 && !p.IsExpired(now)
}

// ParsedQuantity is the structured reading of a free-text ingredient line.
type ParsedQuantity struct {
	Value       float64  `json:"value"`
	Unit        string   `json:"unit"`
	Descriptors []string `json:"descriptors"`
	IsVague     bool     `json:"isVague,omitempty"`
	IsRange     bool     `json:"isRange,omitempty"`
	RangeMin    float64  `json:"rangeMin,omitempty"`
	RangeMax    float64  `json:"rangeMax,omitempty"`
	FromPantry  bool     `json:"fromPantry,omitempty"`
}
