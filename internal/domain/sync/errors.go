package sync

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Sync Errors
// ---------------------------------------------------------------------------

var (
	// Remote client errors
	ErrCredentialsMissing = errors.New("sync: ERP credentials are not configured")
	ErrTransport          = errors.New("sync: transport failure")

	// Routing errors
	ErrNoBranchMapping = errors.New("sync: no branch mapping for shipping city or zone")

	// Branch configuration errors
	ErrNoSessionConfigured = errors.New("sync: no session template configured for branch")
	ErrNoPaymentMapping    = errors.New("sync: payment method is not mapped for branch")

	// Partner errors
	ErrPartnerUnresolvable       = errors.New("sync: could not find or create a remote partner")
	ErrCreateResponseUnparseable = errors.New("sync: could not extract partner id from create response")
)

// RemoteError is returned when the remote ERP answers with status >= 400.
// The decoded response body is kept for the audit log.
type RemoteError struct {
	Status int
	Body   string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	return fmt.Sprintf("sync: remote rejected request with status %d", e.Status)
}

// MissingSKUError is returned when an order line references a product
// without an SKU. Mapping cannot proceed without an identifier.
type MissingSKUError struct {
	ProductID string
}

// Error implements the error interface
func (e *MissingSKUError) Error() string {
	return fmt.Sprintf("sync: product %s is missing an SKU", e.ProductID)
}

// ProductNotFoundError is returned when no remote product's code exactly
// equals the queried SKU.
type ProductNotFoundError struct {
	SKU string
}

// Error implements the error interface
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("sync: no remote product with code %q", e.SKU)
}
