package stockcount

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/shared"
)

// Error codes for stock count operations
const (
	CodeValidationError          = "VALIDATION_ERROR"
	CodeInvalidTransition        = "INVALID_TRANSITION"
	CodeDeletionNotAllowed       = "DELETION_NOT_ALLOWED"
	CodePartialAdjustmentFailure = "PARTIAL_ADJUSTMENT_FAILURE"
)

// NewValidationError creates a validation error
func NewValidationError(message string) *shared.DomainError {
	return shared.NewDomainError(CodeValidationError, message)
}

// NewInvalidTransitionError creates an error for a disallowed status transition
func NewInvalidTransitionError(from, to Status) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidTransition,
		fmt.Sprintf("Cannot transition stock count from %s to %s", from, to))
}

// NewDeletionNotAllowedError creates an error for deleting a count past draft
func NewDeletionNotAllowedError(status Status) *shared.DomainError {
	return shared.NewDomainError(CodeDeletionNotAllowed,
		fmt.Sprintf("Cannot delete a stock count in %s status", status))
}

// PartialAdjustmentError reports an approval that failed partway through
// applying inventory adjustments. The count stays submitted; AppliedLineIDs
// names the lines whose adjustments already landed so a retry can account
// for them (the adjustment ledger makes retries idempotent regardless).
type PartialAdjustmentError struct {
	StockCountID   uuid.UUID
	AppliedLineIDs []uuid.UUID
	FailedLineID   uuid.UUID
	Cause          error
}

// Error implements the error interface
func (e *PartialAdjustmentError) Error() string {
	applied := make([]string, len(e.AppliedLineIDs))
	for i, id := range e.AppliedLineIDs {
		applied[i] = id.String()
	}
	return fmt.Sprintf("adjustment for line %s of stock count %s failed after %d applied [%s]: %v",
		e.FailedLineID, e.StockCountID, len(e.AppliedLineIDs), strings.Join(applied, ", "), e.Cause)
}

// Unwrap returns the underlying adjustment failure
func (e *PartialAdjustmentError) Unwrap() error {
	return e.Cause
}

// DomainError renders the failure as a domain error for transport mapping
func (e *PartialAdjustmentError) DomainError() *shared.DomainError {
	return shared.NewDomainError(CodePartialAdjustmentFailure,
		fmt.Sprintf("Inventory adjustment failed for line %s; %d of the count's adjustments were applied and the count remains submitted",
			e.FailedLineID, len(e.AppliedLineIDs)))
}
