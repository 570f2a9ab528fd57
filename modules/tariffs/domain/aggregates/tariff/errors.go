package tariff

import (
	"fmt"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound         = gerrors.New("tariff not found")
	ErrMissingValidFrom = gerrors.New("valid_from is required")
	ErrInvalidWindow    = gerrors.New("valid_until is before valid_from")
	ErrNoApplicable     = gerrors.New("no applicable tariff for date")
)

// ConflictError blocks a write whose window collides with an existing record.
type ConflictError struct {
	ConflictingID uuid.UUID
	Description   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tariff conflict with %s: %s", e.ConflictingID, e.Description)
}

// InvariantViolationError means resolution found more than one applicable
// record for a key and date. The insert/update gate is supposed to make this
// impossible; it is surfaced loudly instead of picking an arbitrary match.
type InvariantViolationError struct {
	Key      Key
	Date     time.Time
	MatchIDs []uuid.UUID
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf(
		"tariff invariant violated: %d overlapping records for route %s (%s/%s) on %s",
		len(e.MatchIDs), e.Key.RouteID, e.Key.RateType, e.Key.Method, e.Date.Format("2006-01-02"),
	)
}
