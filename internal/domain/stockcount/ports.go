package stockcount

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Adjustment is a single inventory correction derived from a counted line
// with a non-zero variance. Delta is counted minus expected and may be
// negative.
type Adjustment struct {
	StockCountID uuid.UUID
	LineID       uuid.UUID
	ItemID       uuid.UUID
	LocationID   uuid.UUID
	BinID        *uuid.UUID
	Delta        decimal.Decimal
}

// IdempotencyKey identifies the adjustment across approval retries. One
// line of one stock count adjusts inventory at most once no matter how
// often approval is attempted.
func (a Adjustment) IdempotencyKey() string {
	return fmt.Sprintf("%s:%s", a.StockCountID, a.LineID)
}

// AdjustmentSink applies inventory adjustments during approval. Apply must
// be idempotent per Adjustment.IdempotencyKey: re-applying an adjustment
// that already landed is a no-op, not an error.
type AdjustmentSink interface {
	Apply(ctx context.Context, adjustment Adjustment) error
}
