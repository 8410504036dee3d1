package stockcount

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/shared"
)

// Status represents the lifecycle status of a stock count document
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status allows no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusApproved
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusInProgress
	case StatusInProgress:
		return target == StatusSubmitted
	case StatusSubmitted:
		return target == StatusApproved || target == StatusRejected
	case StatusRejected:
		return target == StatusInProgress
	case StatusApproved:
		return false
	}
	return false
}

// Line represents a single counted line in a stock count document.
// ExpectedQuantity is the baseline captured at creation and never changes;
// Variance is derived from the counted quantity and never set by callers.
type Line struct {
	ID               uuid.UUID
	StockCountID     uuid.UUID
	ItemID           uuid.UUID
	ItemName         string
	SKU              string
	BinID            *uuid.UUID
	BinCode          string
	ExpectedQuantity decimal.Decimal
	CountedQuantity  decimal.Decimal
	Variance         decimal.Decimal
	Counted          bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewLine creates a new stock count line with an uncounted quantity
func NewLine(stockCountID, itemID uuid.UUID, itemName, sku string, binID *uuid.UUID, binCode string, expectedQty decimal.Decimal) (*Line, error) {
	if itemID == uuid.Nil {
		return nil, NewValidationError("Item ID cannot be empty")
	}
	if expectedQty.IsNegative() {
		return nil, NewValidationError("Expected quantity cannot be negative")
	}
	now := time.Now()
	return &Line{
		ID:               uuid.New(),
		StockCountID:     stockCountID,
		ItemID:           itemID,
		ItemName:         itemName,
		SKU:              sku,
		BinID:            binID,
		BinCode:          binCode,
		ExpectedQuantity: expectedQty,
		Counted:          false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// recordCount sets the counted quantity and derives the variance
func (l *Line) recordCount(qty decimal.Decimal) {
	l.CountedQuantity = qty
	l.Variance = qty.Sub(l.ExpectedQuantity)
	l.Counted = true
	l.UpdatedAt = time.Now()
}

// clearCount resets the line to the uncounted state
func (l *Line) clearCount() {
	l.CountedQuantity = decimal.Zero
	l.Variance = decimal.Zero
	l.Counted = false
	l.UpdatedAt = time.Now()
}

// HasVariance reports whether the line was counted and the count differs
// from the expected quantity
func (l *Line) HasVariance() bool {
	return l.Counted && !l.Variance.IsZero()
}

// sameTarget reports whether the line counts the same item/bin pair
func (l *Line) sameTarget(itemID uuid.UUID, binID *uuid.UUID) bool {
	if l.ItemID != itemID {
		return false
	}
	if l.BinID == nil || binID == nil {
		return l.BinID == binID
	}
	return *l.BinID == *binID
}

// LineCount is one entry of a save-counts batch
type LineCount struct {
	LineID   uuid.UUID
	Quantity decimal.Decimal
}

// StockCount is the aggregate root for the stock count approval workflow.
// All status guards and variance derivation live here so the state machine
// holds regardless of which interface drives it.
type StockCount struct {
	shared.BaseAggregateRoot
	CountNumber    string
	LocationID     uuid.UUID
	LocationName   string
	Status         Status
	AssignedToID   uuid.UUID
	AssignedToName string
	Notes          string
	ApprovedByID   *uuid.UUID
	ApprovedByName string
	ApprovedAt     *time.Time
	Lines          []Line
}

// NewStockCount creates a stock count document in draft status
func NewStockCount(locationID uuid.UUID, locationName, countNumber string, assignedToID uuid.UUID, assignedToName string) (*StockCount, error) {
	if locationID == uuid.Nil {
		return nil, NewValidationError("Location ID cannot be empty")
	}
	if locationName == "" {
		return nil, NewValidationError("Location name cannot be empty")
	}
	if countNumber == "" {
		return nil, NewValidationError("Count number cannot be empty")
	}
	if assignedToID == uuid.Nil {
		return nil, NewValidationError("Assignee ID cannot be empty")
	}

	sc := &StockCount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CountNumber:       countNumber,
		LocationID:        locationID,
		LocationName:      locationName,
		Status:            StatusDraft,
		AssignedToID:      assignedToID,
		AssignedToName:    assignedToName,
		Lines:             make([]Line, 0),
	}

	sc.AddDomainEvent(NewCreatedEvent(sc))

	return sc, nil
}

// AddLine adds a line to the document. Only allowed in draft status;
// duplicate (item, bin) targets are rejected.
func (sc *StockCount) AddLine(itemID uuid.UUID, itemName, sku string, binID *uuid.UUID, binCode string, expectedQty decimal.Decimal) error {
	if sc.Status != StatusDraft {
		return NewValidationError("Lines can only be added while the count is in draft")
	}
	for _, l := range sc.Lines {
		if l.sameTarget(itemID, binID) {
			return NewValidationError("Item is already part of this stock count")
		}
	}

	line, err := NewLine(sc.ID, itemID, itemName, sku, binID, binCode, expectedQty)
	if err != nil {
		return err
	}
	sc.Lines = append(sc.Lines, *line)
	sc.touch()
	return nil
}

// RemoveLine removes a line from the document. Only allowed in draft status.
func (sc *StockCount) RemoveLine(lineID uuid.UUID) error {
	if sc.Status != StatusDraft {
		return NewValidationError("Lines can only be removed while the count is in draft")
	}
	for i, l := range sc.Lines {
		if l.ID == lineID {
			sc.Lines = append(sc.Lines[:i], sc.Lines[i+1:]...)
			sc.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Start transitions the count from draft to in_progress
func (sc *StockCount) Start() error {
	if !sc.Status.CanTransitionTo(StatusInProgress) || sc.Status != StatusDraft {
		return NewInvalidTransitionError(sc.Status, StatusInProgress)
	}
	if len(sc.Lines) == 0 {
		return NewValidationError("Cannot start a stock count with no lines")
	}

	sc.Status = StatusInProgress
	sc.touch()
	sc.AddDomainEvent(NewStartedEvent(sc))
	return nil
}

// SaveCounts records counted quantities for the named lines and derives
// their variances. The batch is all-or-nothing: every entry is validated
// before any line mutates, so a bad entry leaves the document untouched.
// Lines not named in the batch keep their current state.
func (sc *StockCount) SaveCounts(counts []LineCount) error {
	if sc.Status != StatusInProgress {
		return NewInvalidTransitionError(sc.Status, StatusInProgress)
	}
	if len(counts) == 0 {
		return NewValidationError("Counts batch cannot be empty")
	}

	indexes := make([]int, len(counts))
	for i, c := range counts {
		if c.Quantity.IsNegative() {
			return NewValidationError(fmt.Sprintf("Counted quantity for line %s cannot be negative", c.LineID))
		}
		idx := sc.lineIndex(c.LineID)
		if idx < 0 {
			return NewValidationError(fmt.Sprintf("Line %s does not belong to this stock count", c.LineID))
		}
		indexes[i] = idx
	}

	for i, c := range counts {
		sc.Lines[indexes[i]].recordCount(c.Quantity)
	}
	sc.touch()
	return nil
}

// Submit transitions the count to submitted. At least one line must have
// been counted; incomplete coverage is reported by UncountedLines, not
// blocked here.
func (sc *StockCount) Submit() error {
	if !sc.Status.CanTransitionTo(StatusSubmitted) {
		return NewInvalidTransitionError(sc.Status, StatusSubmitted)
	}
	if sc.CountedLines() == 0 {
		return NewValidationError("Cannot submit a stock count with no counted lines")
	}

	sc.Status = StatusSubmitted
	sc.touch()
	sc.AddDomainEvent(NewSubmittedEvent(sc))
	return nil
}

// Approve marks the count approved and records the approver. Callers must
// apply the pending inventory adjustments before persisting this state; see
// PendingAdjustments.
func (sc *StockCount) Approve(approverID uuid.UUID, approverName, note string) error {
	if !sc.Status.CanTransitionTo(StatusApproved) {
		return NewInvalidTransitionError(sc.Status, StatusApproved)
	}
	if approverID == uuid.Nil {
		return NewValidationError("Approver ID cannot be empty")
	}

	now := time.Now()
	sc.Status = StatusApproved
	sc.ApprovedByID = &approverID
	sc.ApprovedByName = approverName
	sc.ApprovedAt = &now
	if note != "" {
		sc.Notes = note
	}
	sc.touch()
	sc.AddDomainEvent(NewApprovedEvent(sc))
	return nil
}

// Reject sends the count back for recounting: every line's counted quantity
// and variance are cleared so stale counts never resurface.
func (sc *StockCount) Reject(rejectorID uuid.UUID, rejectorName, reason string) error {
	if !sc.Status.CanTransitionTo(StatusRejected) {
		return NewInvalidTransitionError(sc.Status, StatusRejected)
	}
	if rejectorID == uuid.Nil {
		return NewValidationError("Rejector ID cannot be empty")
	}
	if reason == "" {
		return NewValidationError("Rejection reason is required")
	}

	for i := range sc.Lines {
		sc.Lines[i].clearCount()
	}
	sc.Status = StatusRejected
	sc.Notes = reason
	sc.touch()
	sc.AddDomainEvent(NewRejectedEvent(sc, rejectorID, rejectorName, reason))
	return nil
}

// Recount moves a rejected count back to in_progress. Counts were already
// cleared on rejection.
func (sc *StockCount) Recount() error {
	if sc.Status != StatusRejected {
		return NewInvalidTransitionError(sc.Status, StatusInProgress)
	}

	sc.Status = StatusInProgress
	sc.touch()
	sc.AddDomainEvent(NewRecountStartedEvent(sc))
	return nil
}

// CanDelete reports whether the document may be deleted. Deletion is only
// allowed before counting starts, to preserve the audit trail.
func (sc *StockCount) CanDelete() bool {
	return sc.Status == StatusDraft
}

// PendingAdjustments returns one inventory adjustment per counted line with
// a non-zero variance. Zero-variance and uncounted lines produce none.
func (sc *StockCount) PendingAdjustments() []Adjustment {
	adjustments := make([]Adjustment, 0)
	for _, l := range sc.Lines {
		if !l.HasVariance() {
			continue
		}
		adjustments = append(adjustments, Adjustment{
			StockCountID: sc.ID,
			LineID:       l.ID,
			ItemID:       l.ItemID,
			LocationID:   sc.LocationID,
			BinID:        l.BinID,
			Delta:        l.Variance,
		})
	}
	return adjustments
}

// CountedLines returns the number of lines that have been counted
func (sc *StockCount) CountedLines() int {
	n := 0
	for _, l := range sc.Lines {
		if l.Counted {
			n++
		}
	}
	return n
}

// UncountedLines returns the lines that have not been counted yet
func (sc *StockCount) UncountedLines() []Line {
	result := make([]Line, 0)
	for _, l := range sc.Lines {
		if !l.Counted {
			result = append(result, l)
		}
	}
	return result
}

// VarianceLines returns the counted lines whose count differs from the
// expected quantity
func (sc *StockCount) VarianceLines() []Line {
	result := make([]Line, 0)
	for _, l := range sc.Lines {
		if l.HasVariance() {
			result = append(result, l)
		}
	}
	return result
}

// Progress returns the counting progress as a percentage
func (sc *StockCount) Progress() float64 {
	if len(sc.Lines) == 0 {
		return 0
	}
	return float64(sc.CountedLines()) / float64(len(sc.Lines)) * 100
}

// lineIndex returns the index of the line with the given ID, or -1
func (sc *StockCount) lineIndex(lineID uuid.UUID) int {
	for i := range sc.Lines {
		if sc.Lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func (sc *StockCount) touch() {
	sc.UpdatedAt = time.Now()
	sc.IncrementVersion()
}
