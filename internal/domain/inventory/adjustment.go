package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/shared"
)

// StockAdjustment is one row of the adjustment ledger. The unique
// (stock_count_id, line_id) pair is what makes approval idempotent: a
// line's variance lands here exactly once no matter how often the
// approval is retried.
type StockAdjustment struct {
	shared.BaseEntity
	StockCountID   uuid.UUID
	LineID         uuid.UUID
	ItemID         uuid.UUID
	LocationID     uuid.UUID
	BinID          *uuid.UUID
	Delta          decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Reason         string
}

// ReasonStockCount marks adjustments produced by stock count approvals
const ReasonStockCount = "stock_count"

// NewStockAdjustment records the application of a variance to a stock level
func NewStockAdjustment(stockCountID, lineID, itemID, locationID uuid.UUID, binID *uuid.UUID, delta, before, after decimal.Decimal) *StockAdjustment {
	return &StockAdjustment{
		BaseEntity:     shared.NewBaseEntity(),
		StockCountID:   stockCountID,
		LineID:         lineID,
		ItemID:         itemID,
		LocationID:     locationID,
		BinID:          binID,
		Delta:          delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         ReasonStockCount,
	}
}
