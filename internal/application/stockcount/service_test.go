package stockcount

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/catalog"
	"github.com/stockops/backend/internal/domain/inventory"
	"github.com/stockops/backend/internal/domain/location"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/stockcount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===================== Mocks =====================

type mockStockCountRepo struct {
	mock.Mock
}

func (m *mockStockCountRepo) FindByID(ctx context.Context, id uuid.UUID) (*stockcount.StockCount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stockcount.StockCount), args.Error(1)
}

func (m *mockStockCountRepo) FindByCountNumber(ctx context.Context, countNumber string) (*stockcount.StockCount, error) {
	args := m.Called(ctx, countNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stockcount.StockCount), args.Error(1)
}

func (m *mockStockCountRepo) FindAll(ctx context.Context, filter stockcount.ListFilter) ([]stockcount.StockCount, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]stockcount.StockCount), args.Error(1)
}

func (m *mockStockCountRepo) FindPendingApproval(ctx context.Context, filter stockcount.ListFilter) ([]stockcount.StockCount, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]stockcount.StockCount), args.Error(1)
}

func (m *mockStockCountRepo) SaveWithLines(ctx context.Context, sc *stockcount.StockCount) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}

func (m *mockStockCountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStockCountRepo) Count(ctx context.Context, filter stockcount.ListFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStockCountRepo) GenerateCountNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockItemRepo struct {
	mock.Mock
}

func (m *mockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *mockItemRepo) FindBySKU(ctx context.Context, sku string) (*catalog.Item, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *mockItemRepo) FindByBarcode(ctx context.Context, barcode string) (*catalog.Item, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *mockItemRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *mockItemRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *mockItemRepo) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockItemRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockItemRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

type mockLocationRepo struct {
	mock.Mock
}

func (m *mockLocationRepo) FindByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Location), args.Error(1)
}

func (m *mockLocationRepo) FindByCode(ctx context.Context, code string) (*location.Location, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Location), args.Error(1)
}

func (m *mockLocationRepo) FindAll(ctx context.Context, filter shared.Filter) ([]location.Location, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]location.Location), args.Error(1)
}

func (m *mockLocationRepo) Save(ctx context.Context, loc *location.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *mockLocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLocationRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockInventoryRepo struct {
	mock.Mock
}

func (m *mockInventoryRepo) FindLevel(ctx context.Context, itemID, locationID uuid.UUID, binID *uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, itemID, locationID, binID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *mockInventoryRepo) FindLevelsByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, locationID, filter)
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *mockInventoryRepo) FindLevelsByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, itemID, filter)
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *mockInventoryRepo) SaveLevel(ctx context.Context, level *inventory.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *mockInventoryRepo) CountLevelsByLocation(ctx context.Context, locationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInventoryRepo) ApplyAdjustment(ctx context.Context, adjustment stockcount.Adjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *mockInventoryRepo) FindAdjustmentsByStockCount(ctx context.Context, stockCountID uuid.UUID) ([]inventory.StockAdjustment, error) {
	args := m.Called(ctx, stockCountID)
	return args.Get(0).([]inventory.StockAdjustment), args.Error(1)
}

type mockAdjustmentSink struct {
	mock.Mock
}

func (m *mockAdjustmentSink) Apply(ctx context.Context, adjustment stockcount.Adjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *mockEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	m.Called(handler, eventTypes)
}

func (m *mockEventBus) Unsubscribe(handler shared.EventHandler) {
	m.Called(handler)
}

func (m *mockEventBus) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockEventBus) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ===================== Fixtures =====================

type serviceFixture struct {
	service       *Service
	stockCounts   *mockStockCountRepo
	items         *mockItemRepo
	locations     *mockLocationRepo
	inventoryRepo *mockInventoryRepo
	sink          *mockAdjustmentSink
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		stockCounts:   &mockStockCountRepo{},
		items:         &mockItemRepo{},
		locations:     &mockLocationRepo{},
		inventoryRepo: &mockInventoryRepo{},
		sink:          &mockAdjustmentSink{},
	}
	f.service = NewService(f.stockCounts, f.items, f.locations, f.inventoryRepo, f.sink, nil)
	return f
}

func draftCount(t *testing.T) *stockcount.StockCount {
	t.Helper()
	sc, err := stockcount.NewStockCount(uuid.New(), "Main Warehouse", "SC-20260830-0001", uuid.New(), "Alex Chen")
	require.NoError(t, err)
	sc.ClearDomainEvents()
	return sc
}

func submittedCountWithVariance(t *testing.T) (*stockcount.StockCount, []uuid.UUID) {
	t.Helper()
	sc := draftCount(t)
	require.NoError(t, sc.AddLine(uuid.New(), "Widget", "WID-001", nil, "", decimal.NewFromInt(10)))
	require.NoError(t, sc.AddLine(uuid.New(), "Gadget", "GAD-001", nil, "", decimal.NewFromInt(5)))
	require.NoError(t, sc.Start())

	counts := make([]stockcount.LineCount, 0, len(sc.Lines))
	quantities := []int64{8, 9}
	lineIDs := make([]uuid.UUID, len(sc.Lines))
	for i := range sc.Lines {
		lineIDs[i] = sc.Lines[i].ID
		counts = append(counts, stockcount.LineCount{LineID: sc.Lines[i].ID, Quantity: decimal.NewFromInt(quantities[i])})
	}
	require.NoError(t, sc.SaveCounts(counts))
	require.NoError(t, sc.Submit())
	sc.ClearDomainEvents()
	return sc, lineIDs
}

// ===================== Tests =====================

func TestServiceCreate(t *testing.T) {
	t.Run("creates count against active location", func(t *testing.T) {
		f := newFixture(t)
		loc, err := location.NewLocation("WH-MAIN", "Main Warehouse")
		require.NoError(t, err)

		f.locations.On("FindByID", mock.Anything, loc.ID).Return(loc, nil)
		f.stockCounts.On("GenerateCountNumber", mock.Anything).Return("SC-20260830-0001", nil)
		f.stockCounts.On("SaveWithLines", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.Create(context.Background(), CreateStockCountRequest{
			LocationID:     loc.ID,
			AssignedToID:   uuid.New(),
			AssignedToName: "Alex Chen",
			Notes:          "monthly count",
		})
		require.NoError(t, err)

		assert.Equal(t, "SC-20260830-0001", resp.CountNumber)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "Main Warehouse", resp.LocationName)
		f.stockCounts.AssertExpectations(t)
	})

	t.Run("rejects inactive location", func(t *testing.T) {
		f := newFixture(t)
		loc, err := location.NewLocation("WH-OLD", "Old Warehouse")
		require.NoError(t, err)
		loc.Deactivate()

		f.locations.On("FindByID", mock.Anything, loc.ID).Return(loc, nil)

		_, err = f.service.Create(context.Background(), CreateStockCountRequest{
			LocationID:     loc.ID,
			AssignedToID:   uuid.New(),
			AssignedToName: "Alex Chen",
		})
		require.Error(t, err)
		f.stockCounts.AssertNotCalled(t, "SaveWithLines", mock.Anything, mock.Anything)
	})

	t.Run("propagates unknown location", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		f.locations.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(context.Background(), CreateStockCountRequest{
			LocationID:     id,
			AssignedToID:   uuid.New(),
			AssignedToName: "Alex Chen",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestServiceList(t *testing.T) {
	t.Run("find and count share the same predicates", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)
		status := stockcount.StatusDraft
		assigneeID := uuid.New()

		var foundWith, countedWith stockcount.ListFilter
		f.stockCounts.On("FindAll", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { foundWith = args.Get(1).(stockcount.ListFilter) }).
			Return([]stockcount.StockCount{*sc}, nil)
		f.stockCounts.On("Count", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { countedWith = args.Get(1).(stockcount.ListFilter) }).
			Return(int64(1), nil)

		items, total, err := f.service.List(context.Background(), StockCountListFilter{
			Status:       &status,
			AssignedToID: &assigneeID,
			Page:         1,
			PageSize:     20,
		})
		require.NoError(t, err)

		assert.Len(t, items, 1)
		assert.Equal(t, int64(1), total)
		require.NotNil(t, countedWith.Status)
		assert.Equal(t, stockcount.StatusDraft, *countedWith.Status)
		require.NotNil(t, countedWith.AssignedToID)
		assert.Equal(t, assigneeID, *countedWith.AssignedToID)
		assert.Equal(t, foundWith.Status, countedWith.Status)
		assert.Equal(t, foundWith.AssignedToID, countedWith.AssignedToID)
	})

	t.Run("pending approval total honors the search term", func(t *testing.T) {
		f := newFixture(t)
		sc, _ := submittedCountWithVariance(t)

		var countedWith stockcount.ListFilter
		f.stockCounts.On("FindPendingApproval", mock.Anything, mock.Anything).
			Return([]stockcount.StockCount{*sc}, nil)
		f.stockCounts.On("Count", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { countedWith = args.Get(1).(stockcount.ListFilter) }).
			Return(int64(1), nil)

		_, total, err := f.service.ListPendingApproval(context.Background(), StockCountListFilter{
			Search:   "SC-2026",
			Page:     1,
			PageSize: 20,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), total)
		require.NotNil(t, countedWith.Status)
		assert.Equal(t, stockcount.StatusSubmitted, *countedWith.Status)
		assert.Equal(t, "SC-2026", countedWith.Search)
	})
}

func TestServiceAddLine(t *testing.T) {
	t.Run("snapshots book quantity as expected", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)
		item, err := catalog.NewItem("WID-001", "Widget", "pcs")
		require.NoError(t, err)

		level, err := inventory.NewStockLevel(item.ID, sc.LocationID, nil)
		require.NoError(t, err)
		level.Adjust(decimal.NewFromInt(42))

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
		f.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		f.inventoryRepo.On("FindLevel", mock.Anything, item.ID, sc.LocationID, (*uuid.UUID)(nil)).Return(level, nil)
		f.stockCounts.On("SaveWithLines", mock.Anything, sc).Return(nil)

		resp, err := f.service.AddLine(context.Background(), sc.ID, AddLineRequest{ItemID: item.ID})
		require.NoError(t, err)

		require.Len(t, resp.Lines, 1)
		assert.Equal(t, decimal.NewFromInt(42), resp.Lines[0].ExpectedQuantity)
		assert.Equal(t, "WID-001", resp.Lines[0].SKU)
	})

	t.Run("missing stock level defaults expected to zero", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)
		item, err := catalog.NewItem("WID-001", "Widget", "pcs")
		require.NoError(t, err)

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
		f.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		f.inventoryRepo.On("FindLevel", mock.Anything, item.ID, sc.LocationID, (*uuid.UUID)(nil)).Return(nil, shared.ErrNotFound)
		f.stockCounts.On("SaveWithLines", mock.Anything, sc).Return(nil)

		resp, err := f.service.AddLine(context.Background(), sc.ID, AddLineRequest{ItemID: item.ID})
		require.NoError(t, err)
		assert.True(t, resp.Lines[0].ExpectedQuantity.IsZero())
	})

	t.Run("rejects inactive item", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)
		item, err := catalog.NewItem("WID-001", "Widget", "pcs")
		require.NoError(t, err)
		item.Deactivate()

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
		f.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)

		_, err = f.service.AddLine(context.Background(), sc.ID, AddLineRequest{ItemID: item.ID})
		assert.Error(t, err)
	})

	t.Run("rejects bin from another location", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)
		item, err := catalog.NewItem("WID-001", "Widget", "pcs")
		require.NoError(t, err)

		loc, err := location.NewLocation("WH-MAIN", "Main Warehouse")
		require.NoError(t, err)
		foreignBin := uuid.New()

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
		f.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		f.locations.On("FindByID", mock.Anything, sc.LocationID).Return(loc, nil)

		_, err = f.service.AddLine(context.Background(), sc.ID, AddLineRequest{ItemID: item.ID, BinID: &foreignBin})
		assert.Error(t, err)
	})
}

func TestServiceSaveCounts(t *testing.T) {
	f := newFixture(t)
	sc := draftCount(t)
	require.NoError(t, sc.AddLine(uuid.New(), "Widget", "WID-001", nil, "", decimal.NewFromInt(10)))
	require.NoError(t, sc.Start())
	lineID := sc.Lines[0].ID

	f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
	f.stockCounts.On("SaveWithLines", mock.Anything, sc).Return(nil)

	resp, err := f.service.SaveCounts(context.Background(), sc.ID, SaveCountsRequest{
		Counts: []LineCountRequest{{LineID: lineID, Quantity: decimal.NewFromInt(7)}},
	})
	require.NoError(t, err)
	assert.Equal(t, decimal.NewFromInt(-3), resp.Lines[0].Variance)
	assert.Equal(t, 1, resp.CountedLines)
}

func TestServiceSubmit(t *testing.T) {
	t.Run("warns about uncounted lines", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)
		require.NoError(t, sc.AddLine(uuid.New(), "Widget", "WID-001", nil, "", decimal.NewFromInt(10)))
		require.NoError(t, sc.AddLine(uuid.New(), "Gadget", "GAD-001", nil, "", decimal.NewFromInt(5)))
		require.NoError(t, sc.Start())
		require.NoError(t, sc.SaveCounts([]stockcount.LineCount{
			{LineID: sc.Lines[0].ID, Quantity: decimal.NewFromInt(10)},
		}))

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
		f.stockCounts.On("SaveWithLines", mock.Anything, sc).Return(nil)

		resp, err := f.service.Submit(context.Background(), sc.ID)
		require.NoError(t, err)
		assert.Equal(t, "submitted", resp.StockCount.Status)
		assert.Contains(t, resp.Warning, "1 of 2")
	})

	t.Run("fully counted submit carries no warning", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)
		require.NoError(t, sc.AddLine(uuid.New(), "Widget", "WID-001", nil, "", decimal.NewFromInt(10)))
		require.NoError(t, sc.Start())
		require.NoError(t, sc.SaveCounts([]stockcount.LineCount{
			{LineID: sc.Lines[0].ID, Quantity: decimal.NewFromInt(10)},
		}))

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
		f.stockCounts.On("SaveWithLines", mock.Anything, sc).Return(nil)

		resp, err := f.service.Submit(context.Background(), sc.ID)
		require.NoError(t, err)
		assert.Empty(t, resp.Warning)
	})
}

func TestServiceApprove(t *testing.T) {
	approveReq := ApproveStockCountRequest{
		ApproverID:   uuid.New(),
		ApproverName: "Dana Kim",
	}

	t.Run("applies adjustments before persisting approval", func(t *testing.T) {
		f := newFixture(t)
		sc, _ := submittedCountWithVariance(t)

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
		f.sink.On("Apply", mock.Anything, mock.MatchedBy(func(adj stockcount.Adjustment) bool {
			return adj.StockCountID == sc.ID && !adj.Delta.IsZero()
		})).Return(nil).Twice()
		f.stockCounts.On("SaveWithLines", mock.Anything, sc).Return(nil)

		resp, err := f.service.Approve(context.Background(), sc.ID, approveReq)
		require.NoError(t, err)

		assert.Equal(t, "approved", resp.Status)
		assert.NotNil(t, resp.ApprovedAt)
		f.sink.AssertExpectations(t)
		f.stockCounts.AssertExpectations(t)
	})

	t.Run("re-approving an approved count is a no-op", func(t *testing.T) {
		f := newFixture(t)
		sc, _ := submittedCountWithVariance(t)
		require.NoError(t, sc.Approve(uuid.New(), "Dana Kim", ""))
		sc.ClearDomainEvents()

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)

		resp, err := f.service.Approve(context.Background(), sc.ID, approveReq)
		require.NoError(t, err)

		assert.Equal(t, "approved", resp.Status)
		f.sink.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
		f.stockCounts.AssertNotCalled(t, "SaveWithLines", mock.Anything, mock.Anything)
	})

	t.Run("sink failure leaves count submitted", func(t *testing.T) {
		f := newFixture(t)
		sc, _ := submittedCountWithVariance(t)
		sinkErr := errors.New("stock level locked")

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
		f.sink.On("Apply", mock.Anything, mock.Anything).Return(nil).Once()
		f.sink.On("Apply", mock.Anything, mock.Anything).Return(sinkErr).Once()

		_, err := f.service.Approve(context.Background(), sc.ID, approveReq)
		require.Error(t, err)

		var partial *stockcount.PartialAdjustmentError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, sc.ID, partial.StockCountID)
		assert.Len(t, partial.AppliedLineIDs, 1)
		assert.ErrorIs(t, err, sinkErr)

		assert.Equal(t, stockcount.StatusSubmitted, sc.Status)
		f.stockCounts.AssertNotCalled(t, "SaveWithLines", mock.Anything, mock.Anything)
	})

	t.Run("approve from in_progress is rejected", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)
		require.NoError(t, sc.AddLine(uuid.New(), "Widget", "WID-001", nil, "", decimal.NewFromInt(10)))
		require.NoError(t, sc.Start())

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)

		_, err := f.service.Approve(context.Background(), sc.ID, approveReq)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, stockcount.CodeInvalidTransition, derr.Code)
		f.sink.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	})
}

func TestServiceReject(t *testing.T) {
	f := newFixture(t)
	sc, _ := submittedCountWithVariance(t)

	f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
	f.stockCounts.On("SaveWithLines", mock.Anything, sc).Return(nil)

	resp, err := f.service.Reject(context.Background(), sc.ID, RejectStockCountRequest{
		RejectorID:   uuid.New(),
		RejectorName: "Dana Kim",
		Reason:       "variance too large",
	})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, 0, resp.CountedLines)
	for _, l := range resp.Lines {
		assert.False(t, l.Counted)
		assert.True(t, l.Variance.IsZero())
	}
}

func TestServiceRecount(t *testing.T) {
	f := newFixture(t)
	sc, _ := submittedCountWithVariance(t)
	require.NoError(t, sc.Reject(uuid.New(), "Dana Kim", "recount"))
	sc.ClearDomainEvents()

	f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
	f.stockCounts.On("SaveWithLines", mock.Anything, sc).Return(nil)

	resp, err := f.service.Recount(context.Background(), sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", resp.Status)
}

func TestServiceDelete(t *testing.T) {
	t.Run("deletes draft count", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)
		f.stockCounts.On("Delete", mock.Anything, sc.ID).Return(nil)

		require.NoError(t, f.service.Delete(context.Background(), sc.ID))
		f.stockCounts.AssertExpectations(t)
	})

	t.Run("refuses to delete a started count", func(t *testing.T) {
		f := newFixture(t)
		sc := draftCount(t)
		require.NoError(t, sc.AddLine(uuid.New(), "Widget", "WID-001", nil, "", decimal.NewFromInt(10)))
		require.NoError(t, sc.Start())

		f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)

		err := f.service.Delete(context.Background(), sc.ID)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, stockcount.CodeDeletionNotAllowed, derr.Code)
		f.stockCounts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestServiceGetProgress(t *testing.T) {
	f := newFixture(t)
	sc := draftCount(t)
	require.NoError(t, sc.AddLine(uuid.New(), "Widget", "WID-001", nil, "", decimal.NewFromInt(10)))
	require.NoError(t, sc.AddLine(uuid.New(), "Gadget", "GAD-001", nil, "", decimal.NewFromInt(5)))
	require.NoError(t, sc.Start())
	require.NoError(t, sc.SaveCounts([]stockcount.LineCount{
		{LineID: sc.Lines[0].ID, Quantity: decimal.NewFromInt(12)},
	}))

	f.stockCounts.On("FindByID", mock.Anything, sc.ID).Return(sc, nil)

	resp, err := f.service.GetProgress(context.Background(), sc.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalLines)
	assert.Equal(t, 1, resp.CountedLines)
	assert.Equal(t, 1, resp.UncountedLines)
	assert.Equal(t, 1, resp.VarianceLines)
	assert.InDelta(t, 50, resp.ProgressPercent, 0.001)
}
