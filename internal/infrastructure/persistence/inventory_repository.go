package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/inventory"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/stockcount"
	"github.com/stockops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryRepository implements inventory.Repository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindLevel finds the stock level for an item at a location/bin
func (r *GormInventoryRepository) FindLevel(ctx context.Context, itemID, locationID uuid.UUID, binID *uuid.UUID) (*inventory.StockLevel, error) {
	model, err := r.findLevelModel(r.db.WithContext(ctx), itemID, locationID, binID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormInventoryRepository) findLevelModel(tx *gorm.DB, itemID, locationID uuid.UUID, binID *uuid.UUID) (*models.StockLevelModel, error) {
	query := tx.Where("item_id = ? AND location_id = ?", itemID, locationID)
	if binID != nil {
		query = query.Where("bin_id = ?", *binID)
	} else {
		query = query.Where("bin_id IS NULL")
	}

	var model models.StockLevelModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}

// FindLevelsByLocation finds all stock levels at a location
func (r *GormInventoryRepository) FindLevelsByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.StockLevelModel{}).
			Where("location_id = ?", locationID),
		filter,
	)
	return r.findLevels(query)
}

// FindLevelsByItem finds all stock levels for an item across locations
func (r *GormInventoryRepository) FindLevelsByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.StockLevelModel{}).
			Where("item_id = ?", itemID),
		filter,
	)
	return r.findLevels(query)
}

func (r *GormInventoryRepository) findLevels(query *gorm.DB) ([]inventory.StockLevel, error) {
	var levelModels []models.StockLevelModel
	if err := query.Find(&levelModels).Error; err != nil {
		return nil, err
	}
	levels := make([]inventory.StockLevel, len(levelModels))
	for i, model := range levelModels {
		levels[i] = *model.ToDomain()
	}
	return levels, nil
}

// SaveLevel creates or updates a stock level
func (r *GormInventoryRepository) SaveLevel(ctx context.Context, level *inventory.StockLevel) error {
	model := models.StockLevelModelFromDomain(level)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountLevelsByLocation counts stock levels at a location
func (r *GormInventoryRepository) CountLevelsByLocation(ctx context.Context, locationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StockLevelModel{}).
		Where("location_id = ?", locationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ApplyAdjustment applies one stock count adjustment. The level upsert,
// the delta and the ledger row land in a single transaction, and an
// existing ledger row for the adjustment's (stock_count_id, line_id)
// pair makes the whole call a no-op. A retried approval therefore never
// applies a delta twice.
func (r *GormInventoryRepository) ApplyAdjustment(ctx context.Context, adjustment stockcount.Adjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var applied int64
		if err := tx.Model(&models.StockAdjustmentModel{}).
			Where("stock_count_id = ? AND line_id = ?", adjustment.StockCountID, adjustment.LineID).
			Count(&applied).Error; err != nil {
			return err
		}
		if applied > 0 {
			return nil
		}

		levelModel, err := r.findLevelModel(tx, adjustment.ItemID, adjustment.LocationID, adjustment.BinID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			newLevel, err := inventory.NewStockLevel(adjustment.ItemID, adjustment.LocationID, adjustment.BinID)
			if err != nil {
				return err
			}
			levelModel = models.StockLevelModelFromDomain(newLevel)
			if err := tx.Create(levelModel).Error; err != nil {
				return err
			}
		}

		level := levelModel.ToDomain()
		before := level.Quantity
		level.Adjust(adjustment.Delta)

		if err := tx.Save(models.StockLevelModelFromDomain(level)).Error; err != nil {
			return err
		}

		ledger := inventory.NewStockAdjustment(
			adjustment.StockCountID,
			adjustment.LineID,
			adjustment.ItemID,
			adjustment.LocationID,
			adjustment.BinID,
			adjustment.Delta,
			before,
			level.Quantity,
		)
		return tx.Create(models.StockAdjustmentModelFromDomain(ledger)).Error
	})
}

// FindAdjustmentsByStockCount returns the ledger rows for a stock count
func (r *GormInventoryRepository) FindAdjustmentsByStockCount(ctx context.Context, stockCountID uuid.UUID) ([]inventory.StockAdjustment, error) {
	var adjModels []models.StockAdjustmentModel
	if err := r.db.WithContext(ctx).
		Where("stock_count_id = ?", stockCountID).
		Order("created_at ASC").
		Find(&adjModels).Error; err != nil {
		return nil, err
	}
	adjustments := make([]inventory.StockAdjustment, len(adjModels))
	for i, model := range adjModels {
		adjustments[i] = *model.ToDomain()
	}
	return adjustments, nil
}

// applyFilter applies pagination and ordering to a query
func (r *GormInventoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query.Order("updated_at DESC")
}

// Ensure GormInventoryRepository implements inventory.Repository
var _ inventory.Repository = (*GormInventoryRepository)(nil)
