package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/inventory"
	"github.com/stockops/backend/internal/domain/shared"
)

// StockLevelModel is the persistence model for the StockLevel aggregate.
// The unique (item_id, location_id, bin_id) triple backs the upsert the
// adjustment path relies on.
type StockLevelModel struct {
	AggregateModel
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_level_item_location_bin,priority:1"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_level_item_location_bin,priority:2"`
	BinID      *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_level_item_location_bin,priority:3"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockLevelModel) TableName() string {
	return "stock_levels"
}

// ToDomain converts the persistence model to a domain StockLevel
func (m *StockLevelModel) ToDomain() *inventory.StockLevel {
	return &inventory.StockLevel{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ItemID:     m.ItemID,
		LocationID: m.LocationID,
		BinID:      m.BinID,
		Quantity:   m.Quantity,
	}
}

// StockLevelModelFromDomain creates a persistence model from a domain StockLevel
func StockLevelModelFromDomain(level *inventory.StockLevel) *StockLevelModel {
	m := &StockLevelModel{
		ItemID:     level.ItemID,
		LocationID: level.LocationID,
		BinID:      level.BinID,
		Quantity:   level.Quantity,
	}
	m.FromDomainAggregateRoot(level.BaseAggregateRoot)
	return m
}

// StockAdjustmentModel is the persistence model for the adjustment ledger.
// The unique (stock_count_id, line_id) pair enforces at-most-once
// application of each line's variance.
type StockAdjustmentModel struct {
	BaseModel
	StockCountID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_adjustment_count_line,priority:1"`
	LineID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_adjustment_count_line,priority:2"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BinID          *uuid.UUID      `gorm:"type:uuid"`
	Delta          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason         string          `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (StockAdjustmentModel) TableName() string {
	return "stock_adjustments"
}

// ToDomain converts the persistence model to a domain StockAdjustment
func (m *StockAdjustmentModel) ToDomain() *inventory.StockAdjustment {
	return &inventory.StockAdjustment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		StockCountID:   m.StockCountID,
		LineID:         m.LineID,
		ItemID:         m.ItemID,
		LocationID:     m.LocationID,
		BinID:          m.BinID,
		Delta:          m.Delta,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
	}
}

// StockAdjustmentModelFromDomain creates a persistence model from a domain StockAdjustment
func StockAdjustmentModelFromDomain(adj *inventory.StockAdjustment) *StockAdjustmentModel {
	m := &StockAdjustmentModel{
		StockCountID:   adj.StockCountID,
		LineID:         adj.LineID,
		ItemID:         adj.ItemID,
		LocationID:     adj.LocationID,
		BinID:          adj.BinID,
		Delta:          adj.Delta,
		QuantityBefore: adj.QuantityBefore,
		QuantityAfter:  adj.QuantityAfter,
		Reason:         adj.Reason,
	}
	m.FromDomainBaseEntity(adj.BaseEntity)
	return m
}
