package stockcount

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/shared"
)

// ListFilter narrows list queries to a status, location, or assignee on
// top of the common paging filter. Find and count queries take the same
// filter so pagination totals always match the listed predicate.
type ListFilter struct {
	shared.Filter
	Status       *Status
	LocationID   *uuid.UUID
	AssignedToID *uuid.UUID
}

// Repository defines the persistence interface for stock counts
type Repository interface {
	// FindByID finds a stock count by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockCount, error)

	// FindByCountNumber finds a stock count by its number
	FindByCountNumber(ctx context.Context, countNumber string) (*StockCount, error)

	// FindAll finds stock counts matching the filter
	FindAll(ctx context.Context, filter ListFilter) ([]StockCount, error)

	// FindPendingApproval finds stock counts awaiting approval
	FindPendingApproval(ctx context.Context, filter ListFilter) ([]StockCount, error)

	// SaveWithLines saves a stock count together with its lines
	SaveWithLines(ctx context.Context, sc *StockCount) error

	// Delete deletes a stock count and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stock counts matching the filter's predicates
	Count(ctx context.Context, filter ListFilter) (int64, error)

	// GenerateCountNumber generates a new unique count number
	GenerateCountNumber(ctx context.Context) (string, error)
}
