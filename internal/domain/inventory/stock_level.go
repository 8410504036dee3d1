package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/shared"
)

// StockLevel is the book quantity of one item at one location (and
// optionally one bin). Approved stock count variances adjust it.
type StockLevel struct {
	shared.BaseAggregateRoot
	ItemID     uuid.UUID
	LocationID uuid.UUID
	BinID      *uuid.UUID
	Quantity   decimal.Decimal
}

// NewStockLevel creates a stock level with a zero quantity
func NewStockLevel(itemID, locationID uuid.UUID, binID *uuid.UUID) (*StockLevel, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Location ID cannot be empty")
	}

	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemID:            itemID,
		LocationID:        locationID,
		BinID:             binID,
		Quantity:          decimal.Zero,
	}, nil
}

// Adjust applies a signed delta to the book quantity. Movements recorded
// between the count's snapshot and its approval are not netted out, so
// the result may go negative; the ledger keeps the trail either way.
func (sl *StockLevel) Adjust(delta decimal.Decimal) {
	sl.Quantity = sl.Quantity.Add(delta)
	sl.UpdatedAt = time.Now()
	sl.IncrementVersion()
}
