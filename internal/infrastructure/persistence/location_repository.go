package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/location"
	"github.com/stockops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLocationRepository implements location.Repository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location with its bins by ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	var loc location.Location
	if err := r.db.WithContext(ctx).
		Preload("Bins").
		First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindByCode finds a location with its bins by code
func (r *GormLocationRepository) FindByCode(ctx context.Context, code string) (*location.Location, error) {
	var loc location.Location
	if err := r.db.WithContext(ctx).
		Preload("Bins").
		Where("code = ?", strings.ToUpper(code)).
		First(&loc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindAll finds all locations matching the filter
func (r *GormLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.Location, error) {
	var locs []location.Location
	query := r.applyFilter(r.db.WithContext(ctx).Model(&location.Location{}), filter)
	if err := query.Preload("Bins").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

// Save creates or updates a location and its bins
func (r *GormLocationRepository) Save(ctx context.Context, loc *location.Location) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Bins").Save(loc).Error; err != nil {
			return err
		}

		binIDs := make([]uuid.UUID, len(loc.Bins))
		for i, bin := range loc.Bins {
			binIDs[i] = bin.ID
		}
		if len(binIDs) > 0 {
			if err := tx.Where("location_id = ? AND id NOT IN ?", loc.ID, binIDs).
				Delete(&location.Bin{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("location_id = ?", loc.ID).
				Delete(&location.Bin{}).Error; err != nil {
				return err
			}
		}

		for i := range loc.Bins {
			loc.Bins[i].LocationID = loc.ID
			if err := tx.Save(&loc.Bins[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a location and its bins
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", id).Delete(&location.Bin{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&location.Location{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts locations matching the filter
func (r *GormLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&location.Location{})
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", searchPattern, searchPattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLocationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := "code"
	if filter.OrderBy != "" {
		validFields := map[string]bool{
			"code":       true,
			"name":       true,
			"created_at": true,
		}
		if validFields[filter.OrderBy] {
			orderBy = filter.OrderBy
		}
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormLocationRepository implements location.Repository
var _ location.Repository = (*GormLocationRepository)(nil)
