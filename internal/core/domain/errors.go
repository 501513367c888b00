package domain

import "errors"

// Data-level failures raised inside the sale transactions. Handlers map
// these to 400 responses; anything else is treated as infrastructure.
var (
	ErrInvalidCustomer       = errors.New("invalid customer")
	ErrEmptyCart             = errors.New("empty cart")
	ErrRevisionFieldsMissing = errors.New("model and chassis required for revision")
	ErrPartNotFound          = errors.New("part not found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrMotorcycleUnavailable = errors.New("motorcycle unavailable")
	ErrFinalizeSale          = errors.New("failed to finalize sale")
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)
