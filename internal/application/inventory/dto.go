package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/inventory"
)

// StockLevelResponse represents a stock level in API responses
type StockLevelResponse struct {
	ID         uuid.UUID       `json:"id"`
	ItemID     uuid.UUID       `json:"item_id"`
	LocationID uuid.UUID       `json:"location_id"`
	BinID      *uuid.UUID      `json:"bin_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// StockAdjustmentResponse represents an adjustment ledger row in API responses
type StockAdjustmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	StockCountID   uuid.UUID       `json:"stock_count_id"`
	LineID         uuid.UUID       `json:"line_id"`
	ItemID         uuid.UUID       `json:"item_id"`
	LocationID     uuid.UUID       `json:"location_id"`
	BinID          *uuid.UUID      `json:"bin_id,omitempty"`
	Delta          decimal.Decimal `json:"delta"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Reason         string          `json:"reason"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StockLevelListFilter represents filter options for stock level queries
type StockLevelListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToStockLevelResponse converts a domain stock level to a response DTO
func ToStockLevelResponse(level *inventory.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ID:         level.ID,
		ItemID:     level.ItemID,
		LocationID: level.LocationID,
		BinID:      level.BinID,
		Quantity:   level.Quantity,
		UpdatedAt:  level.UpdatedAt,
	}
}

// ToStockLevelResponses converts a slice of stock levels to response DTOs
func ToStockLevelResponses(levels []inventory.StockLevel) []StockLevelResponse {
	responses := make([]StockLevelResponse, len(levels))
	for i := range levels {
		responses[i] = ToStockLevelResponse(&levels[i])
	}
	return responses
}

// ToStockAdjustmentResponse converts a ledger row to a response DTO
func ToStockAdjustmentResponse(adj *inventory.StockAdjustment) StockAdjustmentResponse {
	return StockAdjustmentResponse{
		ID:             adj.ID,
		StockCountID:   adj.StockCountID,
		LineID:         adj.LineID,
		ItemID:         adj.ItemID,
		LocationID:     adj.LocationID,
		BinID:          adj.BinID,
		Delta:          adj.Delta,
		QuantityBefore: adj.QuantityBefore,
		QuantityAfter:  adj.QuantityAfter,
		Reason:         adj.Reason,
		CreatedAt:      adj.CreatedAt,
	}
}

// ToStockAdjustmentResponses converts ledger rows to response DTOs
func ToStockAdjustmentResponses(adjs []inventory.StockAdjustment) []StockAdjustmentResponse {
	responses := make([]StockAdjustmentResponse, len(adjs))
	for i := range adjs {
		responses[i] = ToStockAdjustmentResponse(&adjs[i])
	}
	return responses
}
