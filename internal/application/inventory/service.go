package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/inventory"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/stockcount"
	"go.uber.org/zap"
)

// Service provides application services for stock levels and the
// adjustment ledger. It is the adjustment sink approvals write through.
type Service struct {
	repo   inventory.Repository
	logger *zap.Logger
}

// NewService creates a new inventory Service
func NewService(repo inventory.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Apply applies one stock count adjustment. The repository runs the level
// update and ledger insert in a single transaction and skips adjustments
// whose ledger row already exists, which is what makes approval retries
// safe.
func (s *Service) Apply(ctx context.Context, adjustment stockcount.Adjustment) error {
	if err := s.repo.ApplyAdjustment(ctx, adjustment); err != nil {
		s.logger.Error("failed to apply stock count adjustment",
			zap.String("stock_count_id", adjustment.StockCountID.String()),
			zap.String("line_id", adjustment.LineID.String()),
			zap.String("delta", adjustment.Delta.String()),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("stock count adjustment applied",
		zap.String("stock_count_id", adjustment.StockCountID.String()),
		zap.String("line_id", adjustment.LineID.String()),
		zap.String("item_id", adjustment.ItemID.String()),
		zap.String("delta", adjustment.Delta.String()),
	)
	return nil
}

// GetLevel retrieves the stock level for an item at a location/bin
func (s *Service) GetLevel(ctx context.Context, itemID, locationID uuid.UUID, binID *uuid.UUID) (*StockLevelResponse, error) {
	level, err := s.repo.FindLevel(ctx, itemID, locationID, binID)
	if err != nil {
		return nil, err
	}

	response := ToStockLevelResponse(level)
	return &response, nil
}

// ListLevelsByLocation retrieves stock levels at a location
func (s *Service) ListLevelsByLocation(ctx context.Context, locationID uuid.UUID, filter StockLevelListFilter) ([]StockLevelResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}

	levels, err := s.repo.FindLevelsByLocation(ctx, locationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountLevelsByLocation(ctx, locationID)
	if err != nil {
		return nil, 0, err
	}

	return ToStockLevelResponses(levels), total, nil
}

// ListLevelsByItem retrieves stock levels for an item across locations
func (s *Service) ListLevelsByItem(ctx context.Context, itemID uuid.UUID, filter StockLevelListFilter) ([]StockLevelResponse, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}

	levels, err := s.repo.FindLevelsByItem(ctx, itemID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToStockLevelResponses(levels), nil
}

// ListAdjustmentsByStockCount retrieves the ledger rows a stock count
// produced on approval
func (s *Service) ListAdjustmentsByStockCount(ctx context.Context, stockCountID uuid.UUID) ([]StockAdjustmentResponse, error) {
	adjs, err := s.repo.FindAdjustmentsByStockCount(ctx, stockCountID)
	if err != nil {
		return nil, err
	}

	return ToStockAdjustmentResponses(adjs), nil
}
