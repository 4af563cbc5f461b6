package sync

import "github.com/google/uuid"

// NoReference is recorded when the remote order response carries no
// pos_reference.
const NoReference = "N/A"

// Outcome is the terminal result of one sync attempt.
type Outcome string

const (
	// OutcomeSuccess indicates the order was submitted to the remote ERP.
	OutcomeSuccess Outcome = "SUCCESS"
	// OutcomeFailed indicates the attempt stopped at a terminal failure.
	OutcomeFailed Outcome = "FAILED"
)

// Attempt is the ephemeral state of one order-sync attempt. It lives only
// for the duration of the triggering event; the outcome survives solely as
// an order note and a log entry. A failed attempt carries no resumable
// state; recovery is a fresh trigger.
type Attempt struct {
	OrderID   uuid.UUID
	BranchID  int
	SessionID int
	PartnerID int
	Lines     []OrderLine
	Outcome   Outcome
	// Reason is the human-readable failure reason attached to the order.
	Reason string
	// Reference is the remote pos_reference on success.
	Reference string
}
