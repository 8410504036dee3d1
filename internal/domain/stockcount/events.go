package stockcount

import (
	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/shared"
)

// Domain event types for stock counts
const (
	EventCreated        = "stockcount.created"
	EventStarted        = "stockcount.started"
	EventSubmitted      = "stockcount.submitted"
	EventApproved       = "stockcount.approved"
	EventRejected       = "stockcount.rejected"
	EventRecountStarted = "stockcount.recount_started"
)

const aggregateType = "StockCount"

// CreatedEvent is raised when a stock count document is created
type CreatedEvent struct {
	shared.BaseDomainEvent
	CountNumber  string    `json:"count_number"`
	LocationID   uuid.UUID `json:"location_id"`
	AssignedToID uuid.UUID `json:"assigned_to_id"`
}

// NewCreatedEvent creates a CreatedEvent
func NewCreatedEvent(sc *StockCount) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCreated, aggregateType, sc.ID),
		CountNumber:     sc.CountNumber,
		LocationID:      sc.LocationID,
		AssignedToID:    sc.AssignedToID,
	}
}

// StartedEvent is raised when counting begins
type StartedEvent struct {
	shared.BaseDomainEvent
	CountNumber string `json:"count_number"`
	LineCount   int    `json:"line_count"`
}

// NewStartedEvent creates a StartedEvent
func NewStartedEvent(sc *StockCount) *StartedEvent {
	return &StartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStarted, aggregateType, sc.ID),
		CountNumber:     sc.CountNumber,
		LineCount:       len(sc.Lines),
	}
}

// SubmittedEvent is raised when a count is submitted for approval
type SubmittedEvent struct {
	shared.BaseDomainEvent
	CountNumber    string `json:"count_number"`
	CountedLines   int    `json:"counted_lines"`
	UncountedLines int    `json:"uncounted_lines"`
	VarianceLines  int    `json:"variance_lines"`
}

// NewSubmittedEvent creates a SubmittedEvent
func NewSubmittedEvent(sc *StockCount) *SubmittedEvent {
	return &SubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSubmitted, aggregateType, sc.ID),
		CountNumber:     sc.CountNumber,
		CountedLines:    sc.CountedLines(),
		UncountedLines:  len(sc.UncountedLines()),
		VarianceLines:   len(sc.VarianceLines()),
	}
}

// ApprovedEvent is raised after adjustments are applied and the count is
// approved
type ApprovedEvent struct {
	shared.BaseDomainEvent
	CountNumber   string    `json:"count_number"`
	LocationID    uuid.UUID `json:"location_id"`
	ApprovedByID  uuid.UUID `json:"approved_by_id"`
	VarianceLines int       `json:"variance_lines"`
}

// NewApprovedEvent creates an ApprovedEvent
func NewApprovedEvent(sc *StockCount) *ApprovedEvent {
	var approvedBy uuid.UUID
	if sc.ApprovedByID != nil {
		approvedBy = *sc.ApprovedByID
	}
	return &ApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventApproved, aggregateType, sc.ID),
		CountNumber:     sc.CountNumber,
		LocationID:      sc.LocationID,
		ApprovedByID:    approvedBy,
		VarianceLines:   len(sc.VarianceLines()),
	}
}

// RejectedEvent is raised when a submitted count is sent back for recounting
type RejectedEvent struct {
	shared.BaseDomainEvent
	CountNumber    string    `json:"count_number"`
	RejectedByID   uuid.UUID `json:"rejected_by_id"`
	RejectedByName string    `json:"rejected_by_name"`
	Reason         string    `json:"reason"`
}

// NewRejectedEvent creates a RejectedEvent
func NewRejectedEvent(sc *StockCount, rejectorID uuid.UUID, rejectorName, reason string) *RejectedEvent {
	return &RejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRejected, aggregateType, sc.ID),
		CountNumber:     sc.CountNumber,
		RejectedByID:    rejectorID,
		RejectedByName:  rejectorName,
		Reason:          reason,
	}
}

// RecountStartedEvent is raised when a rejected count resumes counting
type RecountStartedEvent struct {
	shared.BaseDomainEvent
	CountNumber string `json:"count_number"`
}

// NewRecountStartedEvent creates a RecountStartedEvent
func NewRecountStartedEvent(sc *StockCount) *RecountStartedEvent {
	return &RecountStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRecountStarted, aggregateType, sc.ID),
		CountNumber:     sc.CountNumber,
	}
}
