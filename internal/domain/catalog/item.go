package catalog

import (
	"strings"
	"time"

	"github.com/stockops/backend/internal/domain/shared"
)

// ItemStatus represents the status of an item
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

// Item represents a countable SKU in the catalog. Stock counts snapshot
// its name and SKU into their lines, so renames never rewrite history.
type Item struct {
	shared.BaseAggregateRoot
	SKU     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name    string     `gorm:"type:varchar(200);not null"`
	Barcode string     `gorm:"type:varchar(50);index"`
	Unit    string     `gorm:"type:varchar(20);not null"` // e.g. "pcs", "kg", "box"
	Status  ItemStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new active item
func NewItem(sku, name, unit string) (*Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item SKU cannot be empty")
	}
	if len(sku) > 50 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item SKU cannot exceed 50 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item unit cannot be empty")
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Unit:              unit,
		Status:            ItemStatusActive,
	}, nil
}

// Update updates the item's basic information
func (i *Item) Update(name, barcode string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Item name cannot be empty")
	}
	i.Name = name
	i.Barcode = barcode
	i.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the item inactive. Inactive items stay resolvable so
// existing count lines keep working, but new lines should not target them.
func (i *Item) Deactivate() {
	i.Status = ItemStatusInactive
	i.UpdatedAt = time.Now()
}

// Activate marks the item active
func (i *Item) Activate() {
	i.Status = ItemStatusActive
	i.UpdatedAt = time.Now()
}

// IsActive reports whether the item is active
func (i *Item) IsActive() bool {
	return i.Status == ItemStatusActive
}
