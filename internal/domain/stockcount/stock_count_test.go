package stockcount

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCount(t *testing.T) *StockCount {
	t.Helper()
	sc, err := NewStockCount(uuid.New(), "Main Warehouse", "SC-20260830-0001", uuid.New(), "Alex Chen")
	require.NoError(t, err)
	return sc
}

func addTestLine(t *testing.T, sc *StockCount, expected int64) uuid.UUID {
	t.Helper()
	itemID := uuid.New()
	err := sc.AddLine(itemID, "Widget", "WID-001", nil, "", decimal.NewFromInt(expected))
	require.NoError(t, err)
	for i := range sc.Lines {
		if sc.Lines[i].ItemID == itemID {
			return sc.Lines[i].ID
		}
	}
	t.Fatal("line not found after AddLine")
	return uuid.Nil
}

func lineByID(t *testing.T, sc *StockCount, id uuid.UUID) *Line {
	t.Helper()
	for i := range sc.Lines {
		if sc.Lines[i].ID == id {
			return &sc.Lines[i]
		}
	}
	t.Fatalf("line %s not found", id)
	return nil
}

func TestNewStockCount(t *testing.T) {
	t.Run("creates draft count with event", func(t *testing.T) {
		sc := newTestCount(t)

		assert.Equal(t, StatusDraft, sc.Status)
		assert.Equal(t, "SC-20260830-0001", sc.CountNumber)
		assert.Empty(t, sc.Lines)
		assert.Nil(t, sc.ApprovedByID)

		events := sc.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventCreated, events[0].EventType())
	})

	t.Run("rejects empty location", func(t *testing.T) {
		_, err := NewStockCount(uuid.Nil, "Main", "SC-20260830-0001", uuid.New(), "Alex")
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, CodeValidationError, derr.Code)
	})

	t.Run("rejects empty assignee", func(t *testing.T) {
		_, err := NewStockCount(uuid.New(), "Main", "SC-20260830-0001", uuid.Nil, "")
		assert.Error(t, err)
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusInProgress, true},
		{StatusDraft, StatusSubmitted, false},
		{StatusDraft, StatusApproved, false},
		{StatusInProgress, StatusSubmitted, true},
		{StatusInProgress, StatusApproved, false},
		{StatusInProgress, StatusDraft, false},
		{StatusSubmitted, StatusApproved, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusSubmitted, StatusInProgress, false},
		{StatusRejected, StatusInProgress, true},
		{StatusRejected, StatusApproved, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusInProgress, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}

	t.Run("approved is terminal", func(t *testing.T) {
		assert.True(t, StatusApproved.IsTerminal())
		assert.False(t, StatusSubmitted.IsTerminal())
	})
}

func TestAddLine(t *testing.T) {
	t.Run("adds line in draft", func(t *testing.T) {
		sc := newTestCount(t)
		line := lineByID(t, sc, addTestLine(t, sc, 10))

		assert.Equal(t, decimal.NewFromInt(10), line.ExpectedQuantity)
		assert.False(t, line.Counted)
		assert.True(t, line.Variance.IsZero())
	})

	t.Run("rejects duplicate item and bin pair", func(t *testing.T) {
		sc := newTestCount(t)
		itemID := uuid.New()
		binID := uuid.New()

		require.NoError(t, sc.AddLine(itemID, "Widget", "WID-001", &binID, "A-01", decimal.NewFromInt(5)))
		err := sc.AddLine(itemID, "Widget", "WID-001", &binID, "A-01", decimal.NewFromInt(5))
		assert.Error(t, err)
	})

	t.Run("allows same item in different bins", func(t *testing.T) {
		sc := newTestCount(t)
		itemID := uuid.New()
		binA := uuid.New()
		binB := uuid.New()

		require.NoError(t, sc.AddLine(itemID, "Widget", "WID-001", &binA, "A-01", decimal.NewFromInt(5)))
		require.NoError(t, sc.AddLine(itemID, "Widget", "WID-001", &binB, "B-02", decimal.NewFromInt(3)))
		assert.Len(t, sc.Lines, 2)
	})

	t.Run("rejects negative expected quantity", func(t *testing.T) {
		sc := newTestCount(t)
		err := sc.AddLine(uuid.New(), "Widget", "WID-001", nil, "", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("rejected after start", func(t *testing.T) {
		sc := newTestCount(t)
		addTestLine(t, sc, 10)
		require.NoError(t, sc.Start())

		err := sc.AddLine(uuid.New(), "Gadget", "GAD-001", nil, "", decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}

func TestRemoveLine(t *testing.T) {
	t.Run("removes line in draft", func(t *testing.T) {
		sc := newTestCount(t)
		lineID := addTestLine(t, sc, 10)

		require.NoError(t, sc.RemoveLine(lineID))
		assert.Empty(t, sc.Lines)
	})

	t.Run("unknown line returns not found", func(t *testing.T) {
		sc := newTestCount(t)
		err := sc.RemoveLine(uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejected after start", func(t *testing.T) {
		sc := newTestCount(t)
		lineID := addTestLine(t, sc, 10)
		require.NoError(t, sc.Start())

		assert.Error(t, sc.RemoveLine(lineID))
	})
}

func TestStart(t *testing.T) {
	t.Run("starts with lines", func(t *testing.T) {
		sc := newTestCount(t)
		addTestLine(t, sc, 10)

		require.NoError(t, sc.Start())
		assert.Equal(t, StatusInProgress, sc.Status)
	})

	t.Run("rejects empty count", func(t *testing.T) {
		sc := newTestCount(t)
		err := sc.Start()
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, CodeValidationError, derr.Code)
	})

	t.Run("rejects start from in_progress", func(t *testing.T) {
		sc := newTestCount(t)
		addTestLine(t, sc, 10)
		require.NoError(t, sc.Start())

		err := sc.Start()
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, CodeInvalidTransition, derr.Code)
	})
}

func TestSaveCounts(t *testing.T) {
	setup := func(t *testing.T) (*StockCount, uuid.UUID, uuid.UUID) {
		sc := newTestCount(t)
		a := addTestLine(t, sc, 10)
		b := addTestLine(t, sc, 20)
		require.NoError(t, sc.Start())
		return sc, a, b
	}

	t.Run("records counts and derives variance", func(t *testing.T) {
		sc, a, b := setup(t)

		err := sc.SaveCounts([]LineCount{
			{LineID: a, Quantity: decimal.NewFromInt(8)},
			{LineID: b, Quantity: decimal.NewFromInt(25)},
		})
		require.NoError(t, err)

		assert.True(t, lineByID(t, sc, a).Counted)
		assert.Equal(t, decimal.NewFromInt(-2), lineByID(t, sc, a).Variance)
		assert.Equal(t, decimal.NewFromInt(5), lineByID(t, sc, b).Variance)
		assert.Equal(t, 2, sc.CountedLines())
	})

	t.Run("zero count yields negative variance of full expected", func(t *testing.T) {
		sc, a, _ := setup(t)

		require.NoError(t, sc.SaveCounts([]LineCount{{LineID: a, Quantity: decimal.Zero}}))
		line := lineByID(t, sc, a)
		assert.True(t, line.Counted)
		assert.Equal(t, decimal.NewFromInt(-10), line.Variance)
		assert.True(t, line.HasVariance())
	})

	t.Run("exact count has no variance", func(t *testing.T) {
		sc, a, _ := setup(t)

		require.NoError(t, sc.SaveCounts([]LineCount{{LineID: a, Quantity: decimal.NewFromInt(10)}}))
		line := lineByID(t, sc, a)
		assert.True(t, line.Counted)
		assert.False(t, line.HasVariance())
	})

	t.Run("recount overwrites prior count", func(t *testing.T) {
		sc, a, _ := setup(t)

		require.NoError(t, sc.SaveCounts([]LineCount{{LineID: a, Quantity: decimal.NewFromInt(7)}}))
		require.NoError(t, sc.SaveCounts([]LineCount{{LineID: a, Quantity: decimal.NewFromInt(12)}}))
		assert.Equal(t, decimal.NewFromInt(2), lineByID(t, sc, a).Variance)
	})

	t.Run("batch with unknown line mutates nothing", func(t *testing.T) {
		sc, a, _ := setup(t)

		err := sc.SaveCounts([]LineCount{
			{LineID: a, Quantity: decimal.NewFromInt(8)},
			{LineID: uuid.New(), Quantity: decimal.NewFromInt(1)},
		})
		require.Error(t, err)
		assert.False(t, lineByID(t, sc, a).Counted)
		assert.Equal(t, 0, sc.CountedLines())
	})

	t.Run("batch with negative quantity mutates nothing", func(t *testing.T) {
		sc, a, b := setup(t)

		err := sc.SaveCounts([]LineCount{
			{LineID: a, Quantity: decimal.NewFromInt(8)},
			{LineID: b, Quantity: decimal.NewFromInt(-3)},
		})
		require.Error(t, err)
		assert.False(t, lineByID(t, sc, a).Counted)
		assert.False(t, lineByID(t, sc, b).Counted)
	})

	t.Run("rejected outside in_progress", func(t *testing.T) {
		sc := newTestCount(t)
		a := addTestLine(t, sc, 10)

		err := sc.SaveCounts([]LineCount{{LineID: a, Quantity: decimal.NewFromInt(8)}})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, CodeInvalidTransition, derr.Code)
	})
}

func TestSubmit(t *testing.T) {
	t.Run("submits with at least one counted line", func(t *testing.T) {
		sc := newTestCount(t)
		a := addTestLine(t, sc, 10)
		addTestLine(t, sc, 20)
		require.NoError(t, sc.Start())
		require.NoError(t, sc.SaveCounts([]LineCount{{LineID: a, Quantity: decimal.NewFromInt(8)}}))

		require.NoError(t, sc.Submit())
		assert.Equal(t, StatusSubmitted, sc.Status)
		assert.Len(t, sc.UncountedLines(), 1)
	})

	t.Run("rejects submit with no counted lines", func(t *testing.T) {
		sc := newTestCount(t)
		addTestLine(t, sc, 10)
		require.NoError(t, sc.Start())

		err := sc.Submit()
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, CodeValidationError, derr.Code)
	})

	t.Run("rejects submit from draft", func(t *testing.T) {
		sc := newTestCount(t)
		addTestLine(t, sc, 10)

		err := sc.Submit()
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, CodeInvalidTransition, derr.Code)
	})
}

func submittedCount(t *testing.T) (*StockCount, uuid.UUID, uuid.UUID) {
	t.Helper()
	sc := newTestCount(t)
	a := addTestLine(t, sc, 10)
	b := addTestLine(t, sc, 20)
	require.NoError(t, sc.Start())
	require.NoError(t, sc.SaveCounts([]LineCount{
		{LineID: a, Quantity: decimal.NewFromInt(8)},
		{LineID: b, Quantity: decimal.NewFromInt(20)},
	}))
	require.NoError(t, sc.Submit())
	sc.ClearDomainEvents()
	return sc, a, b
}

func TestApprove(t *testing.T) {
	t.Run("approves submitted count", func(t *testing.T) {
		sc, _, _ := submittedCount(t)
		approverID := uuid.New()

		require.NoError(t, sc.Approve(approverID, "Dana Kim", "looks good"))
		assert.Equal(t, StatusApproved, sc.Status)
		require.NotNil(t, sc.ApprovedByID)
		assert.Equal(t, approverID, *sc.ApprovedByID)
		assert.NotNil(t, sc.ApprovedAt)
		assert.Equal(t, "looks good", sc.Notes)

		events := sc.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventApproved, events[0].EventType())
	})

	t.Run("rejects approve from in_progress", func(t *testing.T) {
		sc := newTestCount(t)
		addTestLine(t, sc, 10)
		require.NoError(t, sc.Start())

		err := sc.Approve(uuid.New(), "Dana Kim", "")
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, CodeInvalidTransition, derr.Code)
	})

	t.Run("rejects empty approver", func(t *testing.T) {
		sc, _, _ := submittedCount(t)
		assert.Error(t, sc.Approve(uuid.Nil, "", ""))
	})
}

func TestReject(t *testing.T) {
	t.Run("clears all counts and variances", func(t *testing.T) {
		sc, a, b := submittedCount(t)

		require.NoError(t, sc.Reject(uuid.New(), "Dana Kim", "variance too large"))
		assert.Equal(t, StatusRejected, sc.Status)
		assert.Equal(t, "variance too large", sc.Notes)

		assert.False(t, lineByID(t, sc, a).Counted)
		assert.True(t, lineByID(t, sc, a).Variance.IsZero())
		assert.False(t, lineByID(t, sc, b).Counted)
		assert.Equal(t, 0, sc.CountedLines())
	})

	t.Run("requires a reason", func(t *testing.T) {
		sc, _, _ := submittedCount(t)
		assert.Error(t, sc.Reject(uuid.New(), "Dana Kim", ""))
	})

	t.Run("rejects reject from draft", func(t *testing.T) {
		sc := newTestCount(t)
		err := sc.Reject(uuid.New(), "Dana Kim", "nope")
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, CodeInvalidTransition, derr.Code)
	})
}

func TestRecount(t *testing.T) {
	t.Run("resumes counting after rejection", func(t *testing.T) {
		sc, a, _ := submittedCount(t)
		require.NoError(t, sc.Reject(uuid.New(), "Dana Kim", "recount aisle A"))

		require.NoError(t, sc.Recount())
		assert.Equal(t, StatusInProgress, sc.Status)

		// fresh counts go through the normal path again
		require.NoError(t, sc.SaveCounts([]LineCount{{LineID: a, Quantity: decimal.NewFromInt(10)}}))
		assert.False(t, lineByID(t, sc, a).HasVariance())
	})

	t.Run("rejects recount from submitted", func(t *testing.T) {
		sc, _, _ := submittedCount(t)
		err := sc.Recount()
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, CodeInvalidTransition, derr.Code)
	})
}

func TestPendingAdjustments(t *testing.T) {
	t.Run("one adjustment per non-zero variance line", func(t *testing.T) {
		sc := newTestCount(t)
		short := addTestLine(t, sc, 10)
		exact := addTestLine(t, sc, 20)
		over := addTestLine(t, sc, 5)
		addTestLine(t, sc, 7) // never counted
		require.NoError(t, sc.Start())
		require.NoError(t, sc.SaveCounts([]LineCount{
			{LineID: short, Quantity: decimal.NewFromInt(8)},
			{LineID: exact, Quantity: decimal.NewFromInt(20)},
			{LineID: over, Quantity: decimal.NewFromInt(9)},
		}))

		adjustments := sc.PendingAdjustments()
		require.Len(t, adjustments, 2)

		byLine := make(map[uuid.UUID]Adjustment)
		for _, adj := range adjustments {
			byLine[adj.LineID] = adj
		}
		assert.Equal(t, decimal.NewFromInt(-2), byLine[short].Delta)
		assert.Equal(t, decimal.NewFromInt(4), byLine[over].Delta)
		assert.Equal(t, sc.ID, byLine[short].StockCountID)
		assert.Equal(t, sc.LocationID, byLine[short].LocationID)
	})

	t.Run("idempotency key is stable per count and line", func(t *testing.T) {
		adj := Adjustment{StockCountID: uuid.New(), LineID: uuid.New()}
		assert.Equal(t, adj.StockCountID.String()+":"+adj.LineID.String(), adj.IdempotencyKey())
		assert.Equal(t, adj.IdempotencyKey(), adj.IdempotencyKey())
	})
}

func TestProgress(t *testing.T) {
	sc := newTestCount(t)
	a := addTestLine(t, sc, 10)
	addTestLine(t, sc, 20)
	addTestLine(t, sc, 30)
	addTestLine(t, sc, 40)
	require.NoError(t, sc.Start())

	assert.InDelta(t, 0, sc.Progress(), 0.001)

	require.NoError(t, sc.SaveCounts([]LineCount{{LineID: a, Quantity: decimal.NewFromInt(10)}}))
	assert.InDelta(t, 25, sc.Progress(), 0.001)
}

func TestCanDelete(t *testing.T) {
	sc := newTestCount(t)
	assert.True(t, sc.CanDelete())

	addTestLine(t, sc, 10)
	require.NoError(t, sc.Start())
	assert.False(t, sc.CanDelete())
}
