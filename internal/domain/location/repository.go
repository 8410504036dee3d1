package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/shared"
)

// Repository defines the persistence interface for locations and their bins
type Repository interface {
	// FindByID finds a location with its bins by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindByCode finds a location with its bins by code
	FindByCode(ctx context.Context, code string) (*Location, error)

	// FindAll finds all locations
	FindAll(ctx context.Context, filter shared.Filter) ([]Location, error)

	// Save creates or updates a location and its bins
	Save(ctx context.Context, loc *Location) error

	// Delete deletes a location and its bins
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts locations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
