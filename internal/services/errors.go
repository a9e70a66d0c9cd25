package services

import "errors"

// Sentinel errors for the service layer. Handlers map these to HTTP
// statuses with errors.Is; services wrap them with fmt.Errorf("...: %w").
var (
	ErrUnauthenticated    = errors.New("you must be signed in to do that")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("you do not have permission to do that")
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty, nothing to check out")
	ErrPaymentFailed      = errors.New("payment failed")

	// ErrPersistenceFailed means the charge succeeded but the order could
	// not be written. The wrapped message carries the charge id so the
	// orphaned charge can be reconciled.
	ErrPersistenceFailed = errors.New("order could not be persisted")
)
