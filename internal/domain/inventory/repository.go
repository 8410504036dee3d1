package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/stockcount"
)

// Repository defines the persistence interface for stock levels and the
// adjustment ledger
type Repository interface {
	// FindLevel finds the stock level for an item at a location/bin
	FindLevel(ctx context.Context, itemID, locationID uuid.UUID, binID *uuid.UUID) (*StockLevel, error)

	// FindLevelsByLocation finds all stock levels at a location
	FindLevelsByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]StockLevel, error)

	// FindLevelsByItem finds all stock levels for an item across locations
	FindLevelsByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]StockLevel, error)

	// SaveLevel creates or updates a stock level
	SaveLevel(ctx context.Context, level *StockLevel) error

	// CountLevelsByLocation counts stock levels at a location
	CountLevelsByLocation(ctx context.Context, locationID uuid.UUID) (int64, error)

	// ApplyAdjustment applies one stock count adjustment in a single
	// transaction: upsert the level, apply the delta and record the
	// ledger row. A ledger row already holding the adjustment's
	// (stock_count_id, line_id) pair makes the call a no-op.
	ApplyAdjustment(ctx context.Context, adjustment stockcount.Adjustment) error

	// FindAdjustmentsByStockCount returns the ledger rows for a stock count
	FindAdjustmentsByStockCount(ctx context.Context, stockCountID uuid.UUID) ([]StockAdjustment, error)
}
