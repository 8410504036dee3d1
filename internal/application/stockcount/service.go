package stockcount

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/catalog"
	"github.com/stockops/backend/internal/domain/inventory"
	"github.com/stockops/backend/internal/domain/location"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/stockcount"
)

// Service provides application services for the stock count lifecycle
type Service struct {
	stockCountRepo stockcount.Repository
	itemRepo       catalog.ItemRepository
	locationRepo   location.Repository
	inventoryRepo  inventory.Repository
	adjustments    stockcount.AdjustmentSink
	eventBus       shared.EventBus
}

// NewService creates a new stock count Service
func NewService(
	stockCountRepo stockcount.Repository,
	itemRepo catalog.ItemRepository,
	locationRepo location.Repository,
	inventoryRepo inventory.Repository,
	adjustments stockcount.AdjustmentSink,
	eventBus shared.EventBus,
) *Service {
	return &Service{
		stockCountRepo: stockCountRepo,
		itemRepo:       itemRepo,
		locationRepo:   locationRepo,
		inventoryRepo:  inventoryRepo,
		adjustments:    adjustments,
		eventBus:       eventBus,
	}
}

// ===================== Query Methods =====================

// GetByID retrieves a stock count by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToStockCountResponse(sc)
	return &response, nil
}

// GetByCountNumber retrieves a stock count by its number
func (s *Service) GetByCountNumber(ctx context.Context, countNumber string) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByCountNumber(ctx, countNumber)
	if err != nil {
		return nil, err
	}

	response := ToStockCountResponse(sc)
	return &response, nil
}

// List retrieves a paginated list of stock counts. The same filter
// feeds the page query and the total count.
func (s *Service) List(ctx context.Context, filter StockCountListFilter) ([]StockCountListResponse, int64, error) {
	domainFilter := stockcount.ListFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		Status:       filter.Status,
		LocationID:   filter.LocationID,
		AssignedToID: filter.AssignedToID,
	}

	scs, err := s.stockCountRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.stockCountRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockCountListResponses(scs), total, nil
}

// ListPendingApproval retrieves stock counts awaiting approval
func (s *Service) ListPendingApproval(ctx context.Context, filter StockCountListFilter) ([]StockCountListResponse, int64, error) {
	status := stockcount.StatusSubmitted
	domainFilter := stockcount.ListFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		Status: &status,
	}

	scs, err := s.stockCountRepo.FindPendingApproval(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.stockCountRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockCountListResponses(scs), total, nil
}

// GetProgress reports counting progress for a stock count
func (s *Service) GetProgress(ctx context.Context, id uuid.UUID) (*ProgressResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProgressResponse(sc)
	return &response, nil
}

// ===================== Command Methods =====================

// Create creates a stock count in draft status against an active location
func (s *Service) Create(ctx context.Context, req CreateStockCountRequest) (*StockCountResponse, error) {
	loc, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !loc.Active {
		return nil, stockcount.NewValidationError("Cannot create a stock count for an inactive location")
	}

	countNumber, err := s.stockCountRepo.GenerateCountNumber(ctx)
	if err != nil {
		return nil, err
	}

	sc, err := stockcount.NewStockCount(loc.ID, loc.Name, countNumber, req.AssignedToID, req.AssignedToName)
	if err != nil {
		return nil, err
	}
	sc.Notes = req.Notes

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sc)

	response := ToStockCountResponse(sc)
	return &response, nil
}

// AddLine adds a line to a draft stock count, snapshotting the item's
// current book quantity as the expected quantity
func (s *Service) AddLine(ctx context.Context, stockCountID uuid.UUID, req AddLineRequest) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, stockCountID)
	if err != nil {
		return nil, err
	}

	if err := s.addLine(ctx, sc, req); err != nil {
		return nil, err
	}

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	response := ToStockCountResponse(sc)
	return &response, nil
}

// AddLines adds multiple lines in one call. Validation failures on any
// line abort the whole batch before saving.
func (s *Service) AddLines(ctx context.Context, stockCountID uuid.UUID, req AddLinesRequest) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, stockCountID)
	if err != nil {
		return nil, err
	}

	for _, lineReq := range req.Lines {
		if err := s.addLine(ctx, sc, lineReq); err != nil {
			return nil, err
		}
	}

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	response := ToStockCountResponse(sc)
	return &response, nil
}

func (s *Service) addLine(ctx context.Context, sc *stockcount.StockCount, req AddLineRequest) error {
	item, err := s.itemRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		return err
	}
	if !item.IsActive() {
		return stockcount.NewValidationError(fmt.Sprintf("Item %s is inactive and cannot be counted", item.SKU))
	}

	binCode := ""
	if req.BinID != nil {
		loc, err := s.locationRepo.FindByID(ctx, sc.LocationID)
		if err != nil {
			return err
		}
		bin, ok := loc.FindBin(*req.BinID)
		if !ok {
			return stockcount.NewValidationError("Bin does not belong to the stock count's location")
		}
		binCode = bin.Code
	}

	expected, err := s.expectedQuantity(ctx, item.ID, sc.LocationID, req.BinID)
	if err != nil {
		return err
	}

	return sc.AddLine(item.ID, item.Name, item.SKU, req.BinID, binCode, expected)
}

// expectedQuantity reads the current book quantity, treating a missing
// stock level as zero
func (s *Service) expectedQuantity(ctx context.Context, itemID, locationID uuid.UUID, binID *uuid.UUID) (decimal.Decimal, error) {
	level, err := s.inventoryRepo.FindLevel(ctx, itemID, locationID, binID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return level.Quantity, nil
}

// RemoveLine removes a line from a draft stock count
func (s *Service) RemoveLine(ctx context.Context, stockCountID, lineID uuid.UUID) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, stockCountID)
	if err != nil {
		return nil, err
	}

	if err := sc.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	response := ToStockCountResponse(sc)
	return &response, nil
}

// Start begins counting
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sc.Start(); err != nil {
		return nil, err
	}

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sc)

	response := ToStockCountResponse(sc)
	return &response, nil
}

// SaveCounts records a batch of counted quantities
func (s *Service) SaveCounts(ctx context.Context, id uuid.UUID, req SaveCountsRequest) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts := make([]stockcount.LineCount, len(req.Counts))
	for i, c := range req.Counts {
		counts[i] = stockcount.LineCount{LineID: c.LineID, Quantity: c.Quantity}
	}

	if err := sc.SaveCounts(counts); err != nil {
		return nil, err
	}

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	response := ToStockCountResponse(sc)
	return &response, nil
}

// Submit submits a stock count for approval. Uncounted lines do not block
// submission but are called out in the response warning.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*SubmitResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sc.Submit(); err != nil {
		return nil, err
	}

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sc)

	response := &SubmitResponse{StockCount: ToStockCountResponse(sc)}
	if uncounted := len(sc.UncountedLines()); uncounted > 0 {
		response.Warning = fmt.Sprintf("%d of %d lines were never counted", uncounted, len(sc.Lines))
	}
	return response, nil
}

// Approve applies the count's inventory adjustments and marks it approved.
// Adjustments land before the approved status is persisted, so a crash in
// between leaves the count submitted with already-applied adjustments that
// the ledger will skip on retry. Approving an already-approved count is a
// no-op.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, req ApproveStockCountRequest) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sc.Status == stockcount.StatusApproved {
		response := ToStockCountResponse(sc)
		return &response, nil
	}

	if !sc.Status.CanTransitionTo(stockcount.StatusApproved) {
		return nil, stockcount.NewInvalidTransitionError(sc.Status, stockcount.StatusApproved)
	}

	applied := make([]uuid.UUID, 0)
	for _, adj := range sc.PendingAdjustments() {
		if err := s.adjustments.Apply(ctx, adj); err != nil {
			return nil, &stockcount.PartialAdjustmentError{
				StockCountID:   sc.ID,
				AppliedLineIDs: applied,
				FailedLineID:   adj.LineID,
				Cause:          err,
			}
		}
		applied = append(applied, adj.LineID)
	}

	if err := sc.Approve(req.ApproverID, req.ApproverName, req.Note); err != nil {
		return nil, err
	}

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sc)

	response := ToStockCountResponse(sc)
	return &response, nil
}

// Reject sends a submitted stock count back for recounting
func (s *Service) Reject(ctx context.Context, id uuid.UUID, req RejectStockCountRequest) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sc.Reject(req.RejectorID, req.RejectorName, req.Reason); err != nil {
		return nil, err
	}

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sc)

	response := ToStockCountResponse(sc)
	return &response, nil
}

// Recount resumes counting on a rejected stock count
func (s *Service) Recount(ctx context.Context, id uuid.UUID) (*StockCountResponse, error) {
	sc, err := s.stockCountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sc.Recount(); err != nil {
		return nil, err
	}

	if err := s.stockCountRepo.SaveWithLines(ctx, sc); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sc)

	response := ToStockCountResponse(sc)
	return &response, nil
}

// Delete deletes a stock count that has not started counting
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	sc, err := s.stockCountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !sc.CanDelete() {
		return stockcount.NewDeletionNotAllowedError(sc.Status)
	}

	return s.stockCountRepo.Delete(ctx, id)
}

// publishEvents publishes domain events from the aggregate
func (s *Service) publishEvents(ctx context.Context, sc *stockcount.StockCount) {
	if s.eventBus == nil {
		return
	}

	for _, event := range sc.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	sc.ClearDomainEvents()
}
