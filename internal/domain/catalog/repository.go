package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/shared"
)

// ItemRepository defines the persistence interface for catalog items
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindBySKU finds an item by its SKU
	FindBySKU(ctx context.Context, sku string) (*Item, error)

	// FindByBarcode finds an item by its barcode
	FindByBarcode(ctx context.Context, barcode string) (*Item, error)

	// FindByIDs finds all items matching the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)

	// FindAll finds all items
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySKU checks if an item with the SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
