package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/stockcount"
	"github.com/stockops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockCountRepository implements stockcount.Repository using GORM
type GormStockCountRepository struct {
	db *gorm.DB
}

// NewGormStockCountRepository creates a new GormStockCountRepository
func NewGormStockCountRepository(db *gorm.DB) *GormStockCountRepository {
	return &GormStockCountRepository{db: db}
}

// FindByID finds a stock count by its ID
func (r *GormStockCountRepository) FindByID(ctx context.Context, id uuid.UUID) (*stockcount.StockCount, error) {
	var model models.StockCountModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCountNumber finds a stock count by its number
func (r *GormStockCountRepository) FindByCountNumber(ctx context.Context, countNumber string) (*stockcount.StockCount, error) {
	var model models.StockCountModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("count_number = ?", countNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds stock counts matching the filter
func (r *GormStockCountRepository) FindAll(ctx context.Context, filter stockcount.ListFilter) ([]stockcount.StockCount, error) {
	query := r.applyPredicates(
		r.db.WithContext(ctx).Model(&models.StockCountModel{}),
		filter,
	)
	query = r.applyPaging(query, filter.Filter)
	return r.findMany(query)
}

// FindPendingApproval finds stock counts awaiting approval
func (r *GormStockCountRepository) FindPendingApproval(ctx context.Context, filter stockcount.ListFilter) ([]stockcount.StockCount, error) {
	status := stockcount.StatusSubmitted
	filter.Status = &status
	return r.FindAll(ctx, filter)
}

func (r *GormStockCountRepository) findMany(query *gorm.DB) ([]stockcount.StockCount, error) {
	var scModels []models.StockCountModel
	if err := query.Preload("Lines").Find(&scModels).Error; err != nil {
		return nil, err
	}
	scs := make([]stockcount.StockCount, len(scModels))
	for i, model := range scModels {
		scs[i] = *model.ToDomain()
	}
	return scs, nil
}

// SaveWithLines saves a stock count together with its lines in a
// transaction. Updates carry an optimistic version check against the
// version the aggregate was loaded with, so a batch of domain mutations
// still saves as one logical update.
func (r *GormStockCountRepository) SaveWithLines(ctx context.Context, sc *stockcount.StockCount) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.StockCountModelFromDomain(sc)

		var existing int64
		if err := tx.Model(&models.StockCountModel{}).
			Where("id = ?", sc.ID).
			Count(&existing).Error; err != nil {
			return err
		}

		if existing == 0 {
			if err := tx.Omit("Lines").Create(model).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(&models.StockCountModel{}).
				Where("id = ? AND version = ?", sc.ID, sc.LoadedVersion()).
				Select("*").
				Omit("id", "created_at", "Lines").
				Updates(model)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrConcurrencyConflict
			}
		}

		// Remove lines no longer on the aggregate
		lineIDs := make([]uuid.UUID, len(sc.Lines))
		for i, line := range sc.Lines {
			lineIDs[i] = line.ID
		}
		if len(lineIDs) > 0 {
			if err := tx.Where("stock_count_id = ? AND id NOT IN ?", sc.ID, lineIDs).
				Delete(&models.StockCountLineModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("stock_count_id = ?", sc.ID).
				Delete(&models.StockCountLineModel{}).Error; err != nil {
				return err
			}
		}

		for i := range sc.Lines {
			sc.Lines[i].StockCountID = sc.ID
			lineModel := models.StockCountLineModelFromDomain(&sc.Lines[i])
			if err := tx.Save(lineModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	sc.MarkLoaded()
	return nil
}

// Delete deletes a stock count and its lines
func (r *GormStockCountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stock_count_id = ?", id).
			Delete(&models.StockCountLineModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.StockCountModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts stock counts matching the filter's predicates
func (r *GormStockCountRepository) Count(ctx context.Context, filter stockcount.ListFilter) (int64, error) {
	var count int64
	query := r.applyPredicates(
		r.db.WithContext(ctx).Model(&models.StockCountModel{}),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateCountNumber generates a new unique count number
func (r *GormStockCountRepository) GenerateCountNumber(ctx context.Context) (string, error) {
	// Format: SC-YYYYMMDD-XXXX
	today := time.Now().Format("20060102")
	prefix := fmt.Sprintf("SC-%s-", today)

	var maxNumber string
	err := r.db.WithContext(ctx).Model(&models.StockCountModel{}).
		Select("count_number").
		Where("count_number LIKE ?", prefix+"%").
		Order("count_number DESC").
		Limit(1).
		Pluck("count_number", &maxNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) >= 3 {
			_, err := fmt.Sscanf(parts[len(parts)-1], "%04d", &seq)
			if err == nil {
				seq++
			}
		}
	}
	if seq == 0 {
		seq = 1
	}

	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// applyPredicates narrows a query by the filter's status, location,
// assignee, and search term. Shared by find and count so both see the
// same rows.
func (r *GormStockCountRepository) applyPredicates(query *gorm.DB, filter stockcount.ListFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.AssignedToID != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(count_number) LIKE ? OR LOWER(location_name) LIKE ? OR LOWER(assigned_to_name) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	return query
}

// applyPaging applies pagination and ordering to a query
func (r *GormStockCountRepository) applyPaging(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := "created_at"
	if filter.OrderBy != "" {
		// Validate order by field to prevent SQL injection
		validFields := map[string]bool{
			"count_number": true,
			"status":       true,
			"created_at":   true,
			"updated_at":   true,
		}
		if validFields[filter.OrderBy] {
			orderBy = filter.OrderBy
		}
	}

	orderDir := "DESC"
	if filter.OrderDir != "" && (filter.OrderDir == "asc" || filter.OrderDir == "ASC") {
		orderDir = "ASC"
	}

	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

// Ensure GormStockCountRepository implements stockcount.Repository
var _ stockcount.Repository = (*GormStockCountRepository)(nil)
