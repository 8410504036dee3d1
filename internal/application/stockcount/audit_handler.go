package stockcount

import (
	"context"

	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/stockcount"
	"go.uber.org/zap"
)

// AuditHandler logs every stock count lifecycle event. Approvals and
// rejections of inventory-affecting documents need a trail even when no
// external audit system is attached.
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(logger *zap.Logger) *AuditHandler {
	return &AuditHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *AuditHandler) EventTypes() []string {
	return []string{
		stockcount.EventCreated,
		stockcount.EventStarted,
		stockcount.EventSubmitted,
		stockcount.EventApproved,
		stockcount.EventRejected,
		stockcount.EventRecountStarted,
	}
}

// Handle logs the lifecycle event with its payload
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("stock_count_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *stockcount.CreatedEvent:
		fields = append(fields,
			zap.String("count_number", e.CountNumber),
			zap.String("location_id", e.LocationID.String()),
			zap.String("assigned_to_id", e.AssignedToID.String()),
		)
	case *stockcount.StartedEvent:
		fields = append(fields,
			zap.String("count_number", e.CountNumber),
			zap.Int("line_count", e.LineCount),
		)
	case *stockcount.SubmittedEvent:
		fields = append(fields,
			zap.String("count_number", e.CountNumber),
			zap.Int("counted_lines", e.CountedLines),
			zap.Int("uncounted_lines", e.UncountedLines),
			zap.Int("variance_lines", e.VarianceLines),
		)
	case *stockcount.ApprovedEvent:
		fields = append(fields,
			zap.String("count_number", e.CountNumber),
			zap.String("approved_by_id", e.ApprovedByID.String()),
			zap.Int("variance_lines", e.VarianceLines),
		)
	case *stockcount.RejectedEvent:
		fields = append(fields,
			zap.String("count_number", e.CountNumber),
			zap.String("rejected_by_id", e.RejectedByID.String()),
			zap.String("reason", e.Reason),
		)
	case *stockcount.RecountStartedEvent:
		fields = append(fields, zap.String("count_number", e.CountNumber))
	}

	h.logger.Info(event.EventType(), fields...)
	return nil
}
